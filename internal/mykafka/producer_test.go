package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishEvent_WritesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	event := map[string]any{"type": "product_created", "productID": "p-1"}
	require.NoError(t, p.PublishEvent(context.Background(), TopicProductEvents, "p-1", event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, TopicProductEvents, msg.Topic)
	assert.Equal(t, []byte("p-1"), msg.Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "product_created", got["type"])
	assert.Equal(t, "p-1", got["productID"])
}

func TestProducer_PublishEvent_WrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Producer{writer: &fakeWriter{err: boom}}

	err := p.PublishEvent(context.Background(), TopicOrderEvents, "o-1", map[string]any{"type": "order_created"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestProducer_PublishEvent_RejectsUnmarshalable(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	err := p.PublishEvent(context.Background(), TopicUserEvents, "u-1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, (&Producer{writer: w}).Close())
	assert.True(t, w.closed)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)

	p, err := NewProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestNewProducer_FlushesSingleMessages(t *testing.T) {
	p, err := NewProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, 1, w.BatchSize)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.Equal(t, 5*time.Second, w.WriteTimeout)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicUserEvents, "k", nil))
	assert.NoError(t, p.Close())
}
