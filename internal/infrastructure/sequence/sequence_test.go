package sequence

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	latest int64
	err    error
}

func (f *fakeSource) LatestBillNo(context.Context) (int64, error) {
	return f.latest, f.err
}

func TestStoreSequence(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		source *fakeSource
		want   int64
	}{
		{"empty collection", &fakeSource{}, 1},
		{"existing bills", &fakeSource{latest: 41}, 42},
		{"lookup error", &fakeSource{latest: 41, err: errors.New("store down")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewStoreSequence(tt.source, zap.NewNop()).Next(ctx))
		})
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSequenceSeedsFromStore(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	source := &fakeSource{latest: 10}

	seq := NewRedisSequence(client, "bill:orders", source, zap.NewNop())
	assert.Equal(t, int64(11), seq.Next(ctx))
	assert.Equal(t, int64(12), seq.Next(ctx))

	// a later store maximum does not move an already seeded counter
	source.latest = 50
	assert.Equal(t, int64(13), seq.Next(ctx))

	seq.Resync(ctx)
	assert.Equal(t, int64(51), seq.Next(ctx))
}

func TestRedisSequenceFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	mr.Close()

	seq := NewRedisSequence(client, "bill:orders", &fakeSource{latest: 7}, zap.NewNop())
	assert.Equal(t, int64(8), seq.Next(ctx))
}

func TestResyncNeverLowersCounter(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("bill:stitching", "90"))

	seq := NewRedisSequence(client, "bill:stitching", &fakeSource{latest: 5}, zap.NewNop())
	seq.Resync(ctx)
	assert.Equal(t, int64(91), seq.Next(ctx))
}
