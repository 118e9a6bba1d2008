package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rpggio/showbill/internal/invoice"
	"github.com/stretchr/testify/require"
)

type published struct {
	key string
	msg amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	publishErr error
	closed     bool
}

func (c *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, published{key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func newFakePublisher(channels ...*fakeChannel) (*Publisher, *int) {
	dials := 0
	p := NewPublisher("amqp://test", "", nil)
	p.dial = func(string) (channel, func() error, error) {
		if dials >= len(channels) {
			return nil, nil, errors.New("connection refused")
		}
		ch := channels[dials]
		dials++
		return ch, func() error { return nil }, nil
	}
	return p, &dials
}

func sampleEvent() invoice.SyncedEvent {
	return invoice.SyncedEvent{
		ShowID:      "show-1",
		Mode:        invoice.ModeDocument,
		DocumentID:  "doc-1",
		TimeEntries: 2,
		Expenses:    1,
		GrandTotal:  "259.90",
		SyncedAt:    time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Notify(t *testing.T) {
	ch := &fakeChannel{}
	p, dials := newFakePublisher(ch)

	require.NoError(t, p.Notify(context.Background(), sampleEvent()))
	require.NoError(t, p.Notify(context.Background(), sampleEvent()))

	require.Equal(t, 1, *dials)
	require.Equal(t, []string{DefaultQueue}, ch.declared)
	require.Len(t, ch.published, 2)

	msg := ch.published[0]
	require.Equal(t, DefaultQueue, msg.key)
	require.Equal(t, "application/json", msg.msg.ContentType)
	require.Equal(t, amqp.Persistent, msg.msg.DeliveryMode)

	var got invoice.SyncedEvent
	require.NoError(t, json.Unmarshal(msg.msg.Body, &got))
	require.Equal(t, sampleEvent(), got)
}

func TestPublisher_RedialsAfterFailure(t *testing.T) {
	broken := &fakeChannel{publishErr: amqp.ErrClosed}
	healthy := &fakeChannel{}
	p, dials := newFakePublisher(broken, healthy)

	err := p.Notify(context.Background(), sampleEvent())
	require.ErrorIs(t, err, amqp.ErrClosed)
	require.True(t, broken.closed)

	require.NoError(t, p.Notify(context.Background(), sampleEvent()))
	require.Equal(t, 2, *dials)
	require.Len(t, healthy.published, 1)
}

func TestPublisher_DialError(t *testing.T) {
	p, _ := newFakePublisher()

	err := p.Notify(context.Background(), sampleEvent())
	require.ErrorContains(t, err, "rabbitmq dial: connection refused")
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, _ := newFakePublisher(ch)
	require.NoError(t, p.Notify(context.Background(), sampleEvent()))

	require.NoError(t, p.Close())
	require.True(t, ch.closed)
}
