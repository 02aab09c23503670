package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/sangkips/boutique-api/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishKeysByBillNumber(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig("test"))
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		body, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var e event.Event
		if err := json.Unmarshal(body, &e); err != nil {
			return err
		}
		if e.Type != event.OrderCreated {
			return errors.New("unexpected type " + e.Type)
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "boutique.events", zap.NewNop())
	require.NoError(t, pub.Publish(context.Background(), event.Event{Type: event.OrderCreated, BillNo: 42}))
	require.NoError(t, pub.Close())
}

func TestPublishReturnsProducerError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig("test"))
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "boutique.events", zap.NewNop())
	err := pub.Publish(context.Background(), event.Event{Type: event.OrderPaymentRecorded, BillNo: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestNopPublisher(t *testing.T) {
	var p event.Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), event.Event{}))
	assert.NoError(t, p.Close())
}
