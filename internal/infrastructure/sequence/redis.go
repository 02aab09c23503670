package sequence

import (
	"context"
	"sync/atomic"

	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// raiseTo sets KEYS[1] to ARGV[1] unless it already holds a larger value.
var raiseTo = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if cur < floor then
	redis.call('SET', KEYS[1], floor)
	return floor
end
return cur
`)

// RedisSequence hands out bill numbers with INCR on a per-kind key. The key
// is seeded from the store maximum on first use. Any Redis error falls back
// to the store sequence.
type RedisSequence struct {
	client   redis.UniversalClient
	key      string
	source   domainRepo.BillNumberSource
	fallback *StoreSequence
	seeded   atomic.Bool
	log      *zap.Logger
}

// NewRedisSequence creates a sequence stored under key
func NewRedisSequence(client redis.UniversalClient, key string, source domainRepo.BillNumberSource, log *zap.Logger) *RedisSequence {
	return &RedisSequence{
		client:   client,
		key:      key,
		source:   source,
		fallback: NewStoreSequence(source, log),
		log:      log.With(zap.String("sequence", key)),
	}
}

func (s *RedisSequence) seed(ctx context.Context) error {
	latest, err := s.source.LatestBillNo(ctx)
	if err != nil {
		return err
	}
	if err := s.client.SetNX(ctx, s.key, latest, 0).Err(); err != nil {
		return err
	}
	s.seeded.Store(true)
	return nil
}

func (s *RedisSequence) Next(ctx context.Context) int64 {
	if !s.seeded.Load() {
		if err := s.seed(ctx); err != nil {
			s.log.Warn("seeding bill counter failed, using store", zap.Error(err))
			return s.fallback.Next(ctx)
		}
	}

	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		s.log.Warn("bill counter increment failed, using store", zap.Error(err))
		return s.fallback.Next(ctx)
	}
	return n
}

// Resync raises the counter to the store maximum, for when bills were written
// while Redis was unreachable.
func (s *RedisSequence) Resync(ctx context.Context) {
	latest, err := s.source.LatestBillNo(ctx)
	if err != nil {
		s.log.Warn("bill counter resync failed", zap.Error(err))
		return
	}
	if err := raiseTo.Run(ctx, s.client, []string{s.key}, latest).Err(); err != nil {
		s.log.Warn("bill counter resync failed", zap.Error(err))
		return
	}
	s.seeded.Store(true)
}
