package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQP_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQP{ch: ch, exchange: "publication.events"}

	err := p.Publish(context.Background(), RoutingImportCompleted, map[string]any{"rowsImported": 12})
	require.NoError(t, err)

	assert.Equal(t, "publication.events", ch.exchange)
	assert.Equal(t, RoutingImportCompleted, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var body map[string]int
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, 12, body["rowsImported"])
}

func TestAMQP_PublishErrors(t *testing.T) {
	t.Run("канал вернул ошибку", func(t *testing.T) {
		p := &AMQP{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}
		assert.Error(t, p.Publish(context.Background(), RoutingAccessUpdated, struct{}{}))
	})

	t.Run("отменённый контекст", func(t *testing.T) {
		ch := &fakeChannel{}
		p := &AMQP{ch: ch, exchange: "x"}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, p.Publish(ctx, RoutingAccessUpdated, struct{}{}), context.Canceled)
		assert.Empty(t, ch.key)
	})

	t.Run("несериализуемое сообщение", func(t *testing.T) {
		p := &AMQP{ch: &fakeChannel{}, exchange: "x"}
		assert.Error(t, p.Publish(context.Background(), RoutingAccessUpdated, make(chan int)))
	})
}

func TestAMQP_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQP{ch: ch}

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), RoutingSubscriberDeleted, nil))
}
