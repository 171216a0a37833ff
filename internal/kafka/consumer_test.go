package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConsumer(t *testing.T) {
	consumer := NewConsumer([]string{"localhost:9092"}, "carbooking-audit", "booking-events")

	assert.NotNil(t, consumer)
	assert.NoError(t, consumer.Close())
}

func TestDecodeBookingEvent(t *testing.T) {
	payload := []byte(`{"type":"booking_created","reference":"ref-1","booking_id":5,"car_id":7,"email":"u@x.com","status":"Confirmed","at":"2024-02-01T10:00:00Z"}`)

	event, err := decodeBookingEvent(payload)

	assert.NoError(t, err)
	assert.Equal(t, "booking_created", event.Type)
	assert.Equal(t, "ref-1", event.Reference)
	assert.Equal(t, int64(5), event.BookingID)
	assert.Equal(t, int64(7), event.CarID)
	assert.Equal(t, "u@x.com", event.Email)
	assert.Equal(t, "Confirmed", event.Status)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), event.At)
}

func TestDecodeBookingEvent_Malformed(t *testing.T) {
	_, err := decodeBookingEvent([]byte("not json"))

	assert.Error(t, err)
}
