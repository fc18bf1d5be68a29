package mq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProgrammerShajib/fullstack/config"
)

type recordingBackend struct {
	published []Message
	closed    bool
}

func (b *recordingBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	b.published = append(b.published, Message{ID: channel, Data: data, Attributes: attrs})
	return "msg-1", nil
}

func (b *recordingBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	for _, msg := range b.published {
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (b *recordingBackend) Close() error {
	b.closed = true
	return nil
}

func TestMQDelegatesToBackend(t *testing.T) {
	backend := &recordingBackend{}
	queue := New(backend)
	ctx := context.Background()

	id, err := queue.Publish(ctx, "users", []byte(`{}`), map[string]string{"event": "user.created"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	var seen []Message
	err = queue.Subscribe(ctx, "users", func(ctx context.Context, msg Message) error {
		seen = append(seen, msg)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "user.created", seen[0].Attributes["event"])

	require.NoError(t, queue.Close())
	assert.True(t, backend.closed)
}

func TestOpenDisabled(t *testing.T) {
	queue, err := Open(context.Background(), config.MQConfig{Backend: config.MQBackendNone})
	require.NoError(t, err)
	assert.Nil(t, queue)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(context.Background(), config.MQConfig{Backend: "kafka"})
	assert.Error(t, err)

	_, err = Open(context.Background(), config.MQConfig{Backend: config.MQBackendRabbitMQ})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq url is required")

	_, err = Open(context.Background(), config.MQConfig{Backend: config.MQBackendPubSub})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pubsub project id is required")
}

func TestHeadersToAttributes(t *testing.T) {
	assert.Nil(t, headersToAttributes(nil))

	attrs := headersToAttributes(amqp.Table{
		"event": "user.deleted",
		"raw":   []byte("bytes"),
		"count": int32(3),
	})
	assert.Equal(t, map[string]string{
		"event": "user.deleted",
		"raw":   "bytes",
		"count": "3",
	}, attrs)
}
