package kafka_test

import (
	"testing"

	"hotel/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "room-1",
		Value:   payload{BookingID: "b1", Status: "Confirmed"},
		Headers: map[string]string{"event": "booking.confirmed"},
	}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("room-1"), out.Key)
	assert.JSONEq(t, `{"booking_id":"b1","status":"Confirmed"}`, string(out.Value))
	require.Len(t, out.Headers, 1)
	assert.Equal(t, "event", out.Headers[0].Key)
	assert.Equal(t, []byte("booking.confirmed"), out.Headers[0].Value)
}

func TestMessage_ToKafkaMessageMarshalError(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	got, err := kafka.DecodeKafkaMessage[payload](kafkaGo.Message{
		Key:   []byte("room-1"),
		Value: []byte(`{"booking_id":"b1","status":"Cancelled"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, payload{BookingID: "b1", Status: "Cancelled"}, got)

	_, err = kafka.DecodeKafkaMessage[payload](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}
