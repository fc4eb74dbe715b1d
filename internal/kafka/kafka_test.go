package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

type queueReader struct {
	msgs []kafka.Message
}

func (r *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *queueReader) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter([]string{"localhost:9092"}, w, logger.NewNop())

	event := BookingEvent{Type: EventBookingCreated, BookingID: "b-1", FlightID: "f-1", Price: 2750, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, p.Publish(context.Background(), "notifications", "b-1", event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "notifications", w.msgs[0].Topic)
	assert.Equal(t, []byte("b-1"), w.msgs[0].Key)

	decoded, err := DecodeBookingEvent(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestProducer_PublishError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(nil, w, logger.NewNop())

	err := p.Publish(context.Background(), "t", "k", BookingEvent{})
	assert.ErrorContains(t, err, "broker down")
}

func TestDecodeBookingEvent_Invalid(t *testing.T) {
	_, err := DecodeBookingEvent([]byte("not json"))
	assert.Error(t, err)

	data, _ := json.Marshal(BookingEvent{Type: EventBookingCreated})
	_, err = DecodeBookingEvent(data)
	assert.ErrorContains(t, err, "missing booking id")
}

func TestConsumer_SkipsFailedMessagesAndStopsOnCancel(t *testing.T) {
	r := &queueReader{msgs: []kafka.Message{
		{Key: []byte("a"), Value: []byte("bad")},
		{Key: []byte("b"), Value: []byte("good")},
	}}
	c := NewConsumerWithReader(r, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	var seen []string
	err := c.Consume(ctx, func(_ context.Context, msg kafka.Message) error {
		seen = append(seen, string(msg.Key))
		if string(msg.Value) == "bad" {
			return errors.New("undecodable")
		}
		cancel()
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}
