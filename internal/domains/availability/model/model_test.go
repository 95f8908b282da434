package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/availability/model"
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
)

func stay(t *testing.T, in, out string) model.Stay {
	t.Helper()

	s, err := model.ParseStay(in, out)
	require.NoError(t, err)

	return s
}

func booking(t *testing.T, id, status, in, out string) bookingModel.Booking {
	t.Helper()

	s := stay(t, in, out)

	return bookingModel.Booking{ID: id, Status: status, CheckIn: s.CheckIn, CheckOut: s.CheckOut}
}

func TestParseStay(t *testing.T) {
	tests := []struct {
		name       string
		in, out    string
		wantNights int
		wantErr    error
	}{
		{name: "two nights", in: "2025-09-10", out: "2025-09-12", wantNights: 2},
		{name: "across month", in: "2025-01-30", out: "2025-02-02", wantNights: 3},
		{name: "zero nights", in: "2025-09-10", out: "2025-09-10", wantErr: model.ErrEmptyStay},
		{name: "reversed", in: "2025-09-12", out: "2025-09-10", wantErr: model.ErrEmptyStay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := model.ParseStay(tt.in, tt.out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, s.Nights())
		})
	}

	_, err := model.ParseStay("2025/09/10", "2025-09-12")
	assert.Error(t, err)
}

func TestNewStay_IgnoresZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	s, err := model.NewStay(
		time.Date(2025, 9, 10, 0, 0, 0, 0, jakarta),
		time.Date(2025, 9, 12, 23, 59, 0, 0, jakarta),
	)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), s.CheckIn)
	assert.Equal(t, 2, s.Nights())
}

func TestStay_Overlaps(t *testing.T) {
	base := stay(t, "2025-09-10", "2025-09-12")

	tests := []struct {
		name    string
		in, out string
		want    bool
	}{
		{name: "identical", in: "2025-09-10", out: "2025-09-12", want: true},
		{name: "tail overlap", in: "2025-09-11", out: "2025-09-13", want: true},
		{name: "head overlap", in: "2025-09-08", out: "2025-09-11", want: true},
		{name: "contains", in: "2025-09-01", out: "2025-09-30", want: true},
		{name: "back to back after", in: "2025-09-12", out: "2025-09-14", want: false},
		{name: "back to back before", in: "2025-09-08", out: "2025-09-10", want: false},
		{name: "disjoint", in: "2025-10-01", out: "2025-10-02", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := stay(t, tt.in, tt.out)

			assert.Equal(t, tt.want, base.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(base))
		})
	}
}

func TestConflicts(t *testing.T) {
	requested := stay(t, "2025-09-11", "2025-09-13")

	tests := []struct {
		name     string
		bookings []bookingModel.Booking
		exclude  string
		want     bool
	}{
		{
			name:     "pending blocks",
			bookings: []bookingModel.Booking{booking(t, "b1", bookingModel.StatusPending, "2025-09-10", "2025-09-12")},
			want:     true,
		},
		{
			name:     "checked in blocks",
			bookings: []bookingModel.Booking{booking(t, "b1", bookingModel.StatusCheckedIn, "2025-09-12", "2025-09-15")},
			want:     true,
		},
		{
			name: "cancelled and checked out never block",
			bookings: []bookingModel.Booking{
				booking(t, "b1", bookingModel.StatusCancelled, "2025-09-10", "2025-09-12"),
				booking(t, "b2", bookingModel.StatusCheckedOut, "2025-09-11", "2025-09-12"),
			},
			want: false,
		},
		{
			name:     "excluded booking ignored",
			bookings: []bookingModel.Booking{booking(t, "b1", bookingModel.StatusConfirmed, "2025-09-10", "2025-09-12")},
			exclude:  "b1",
			want:     false,
		},
		{
			name:     "no bookings",
			bookings: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Conflicts(requested, tt.bookings, tt.exclude))
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2025, 9, 11, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		maintenance bool
		bookings    []bookingModel.Booking
		want        string
	}{
		{name: "empty", want: roomModel.StatusAvailable},
		{
			name:        "maintenance overrides occupancy",
			maintenance: true,
			bookings:    []bookingModel.Booking{booking(t, "b1", bookingModel.StatusCheckedIn, "2025-09-10", "2025-09-12")},
			want:        roomModel.StatusMaintenance,
		},
		{
			name: "checked in wins over reserved",
			bookings: []bookingModel.Booking{
				booking(t, "b1", bookingModel.StatusConfirmed, "2025-09-20", "2025-09-22"),
				booking(t, "b2", bookingModel.StatusCheckedIn, "2025-09-10", "2025-09-12"),
			},
			want: roomModel.StatusOccupied,
		},
		{
			name:     "upcoming confirmed",
			bookings: []bookingModel.Booking{booking(t, "b1", bookingModel.StatusConfirmed, "2025-09-20", "2025-09-22")},
			want:     roomModel.StatusReserved,
		},
		{
			name:     "pending ending today no longer reserves",
			bookings: []bookingModel.Booking{booking(t, "b1", bookingModel.StatusPending, "2025-09-09", "2025-09-11")},
			want:     roomModel.StatusAvailable,
		},
		{
			name:     "checked out frees the room",
			bookings: []bookingModel.Booking{booking(t, "b1", bookingModel.StatusCheckedOut, "2025-09-10", "2025-09-12")},
			want:     roomModel.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.DeriveStatus(today, tt.maintenance, tt.bookings))
		})
	}
}

func TestApply(t *testing.T) {
	b1 := booking(t, "b1", bookingModel.StatusPending, "2025-09-10", "2025-09-12")
	b2 := booking(t, "b2", bookingModel.StatusPending, "2025-09-14", "2025-09-15")

	list := []bookingModel.Booking{b1}

	added := model.Apply(list, b2)
	assert.Len(t, added, 2)
	assert.Len(t, list, 1)

	b1.Status = bookingModel.StatusCheckedIn
	replaced := model.Apply(added, b1)
	require.Len(t, replaced, 2)
	assert.Equal(t, bookingModel.StatusCheckedIn, replaced[0].Status)
}

func TestOccupancy(t *testing.T) {
	today := time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)
	held := booking(t, "b1", bookingModel.StatusConfirmed, "2025-09-10", "2025-09-12")

	occ := model.Occupancy{
		Room:     roomModel.Room{ID: "r1"},
		Bookings: []bookingModel.Booking{held},
	}

	assert.False(t, occ.Admits(stay(t, "2025-09-11", "2025-09-13"), ""))
	assert.True(t, occ.Admits(stay(t, "2025-09-12", "2025-09-14"), ""))
	assert.True(t, occ.Admits(stay(t, "2025-09-11", "2025-09-13"), "b1"))
	assert.Equal(t, roomModel.StatusReserved, occ.Status(today))

	held.Status = bookingModel.StatusCheckedIn
	checkedIn := occ.With(held)
	assert.Equal(t, roomModel.StatusOccupied, checkedIn.Status(today))
	assert.Equal(t, bookingModel.StatusConfirmed, occ.Bookings[0].Status)

	held.Status = bookingModel.StatusCheckedOut
	checkedOut := checkedIn.With(held)
	assert.Empty(t, checkedOut.Bookings)
	assert.Equal(t, roomModel.StatusAvailable, checkedOut.Status(today))

	occ.Room.Maintenance = true
	assert.False(t, occ.Admits(stay(t, "2025-10-01", "2025-10-02"), ""))
	assert.Equal(t, roomModel.StatusMaintenance, occ.Status(today))
}
