package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/booking/model"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from   string
		action string
		want   string
		ok     bool
	}{
		{from: model.StatusPending, action: model.ActionConfirm, want: model.StatusConfirmed, ok: true},
		{from: model.StatusPending, action: model.ActionCancel, want: model.StatusCancelled, ok: true},
		{from: model.StatusConfirmed, action: model.ActionCancel, want: model.StatusCancelled, ok: true},
		{from: model.StatusConfirmed, action: model.ActionCheckIn, want: model.StatusCheckedIn, ok: true},
		{from: model.StatusCheckedIn, action: model.ActionCheckOut, want: model.StatusCheckedOut, ok: true},
		{from: model.StatusConfirmed, action: model.ActionConfirm},
		{from: model.StatusPending, action: model.ActionCheckIn},
		{from: model.StatusPending, action: model.ActionCheckOut},
		{from: model.StatusCheckedIn, action: model.ActionCancel},
		{from: model.StatusCheckedOut, action: model.ActionCheckIn},
		{from: model.StatusCancelled, action: model.ActionConfirm},
		{from: model.StatusPending, action: "refund"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"/"+tt.action, func(t *testing.T) {
			got, ok := model.Next(tt.from, tt.action)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusClasses(t *testing.T) {
	for _, status := range model.ActiveStatuses {
		assert.True(t, model.IsActive(status), status)
		assert.False(t, model.IsTerminal(status), status)
	}

	assert.True(t, model.IsTerminal(model.StatusCheckedOut))
	assert.True(t, model.IsTerminal(model.StatusCancelled))
	assert.False(t, model.IsActive(model.StatusCancelled))
}

func TestTotalAmount(t *testing.T) {
	assert.InDelta(t, 200.0, model.TotalAmount(100, 2, 0), 0.0001)
	assert.InDelta(t, 350.0, model.TotalAmount(100, 2, 150), 0.0001)
	assert.InDelta(t, 0.3, model.TotalAmount(0.1, 3, 0), 0.0001)
	assert.InDelta(t, 33.33, model.TotalAmount(33.333, 1, 0), 0.0001)
}

func TestBooking_Nights(t *testing.T) {
	b := model.Booking{
		CheckIn:  time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, b.Nights())

	b.CheckIn = time.Date(2025, 3, 29, 0, 0, 0, 0, time.FixedZone("CET", 3600))
	b.CheckOut = time.Date(2025, 3, 31, 0, 0, 0, 0, time.FixedZone("CEST", 7200))
	assert.Equal(t, 2, b.Nights())
}
