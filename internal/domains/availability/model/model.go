package model

import (
	"errors"
	"fmt"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
)

var ErrEmptyStay = errors.New("check-out must be after check-in")

// Day reduces t to its own calendar date at UTC midnight, ignoring t's zone offset.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Stay is the half-open date range [CheckIn, CheckOut).
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	stay := Stay{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if !stay.CheckOut.After(stay.CheckIn) {
		return Stay{}, ErrEmptyStay
	}

	return stay, nil
}

// ParseStay reads two YYYY-MM-DD dates.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := time.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return Stay{}, fmt.Errorf("invalid check-in date: %w", err)
	}

	out, err := time.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return Stay{}, fmt.Errorf("invalid check-out date: %w", err)
	}

	return NewStay(in, out)
}

func StayOf(booking bookingModel.Booking) Stay {
	return Stay{CheckIn: Day(booking.CheckIn), CheckOut: Day(booking.CheckOut)}
}

func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / constant.HoursPerDay)
}

// Overlaps reports a conflict. A check-out and a check-in on the same day do not overlap.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// Conflicts reports whether any active booking other than excludeID overlaps stay.
func Conflicts(stay Stay, bookings []bookingModel.Booking, excludeID string) bool {
	for _, b := range bookings {
		if b.ID == excludeID || !bookingModel.IsActive(b.Status) {
			continue
		}

		if stay.Overlaps(StayOf(b)) {
			return true
		}
	}

	return false
}

// DeriveStatus computes a room's status from its bookings as of today.
// Maintenance wins, then a checked-in guest, then any upcoming held stay.
func DeriveStatus(today time.Time, maintenance bool, bookings []bookingModel.Booking) string {
	if maintenance {
		return roomModel.StatusMaintenance
	}

	today = Day(today)
	reserved := false

	for _, b := range bookings {
		switch b.Status {
		case bookingModel.StatusCheckedIn:
			return roomModel.StatusOccupied
		case bookingModel.StatusPending, bookingModel.StatusConfirmed:
			if Day(b.CheckOut).After(today) {
				reserved = true
			}
		}
	}

	if reserved {
		return roomModel.StatusReserved
	}

	return roomModel.StatusAvailable
}

// Apply returns bookings with b inserted or replacing the entry of the same id.
func Apply(bookings []bookingModel.Booking, b bookingModel.Booking) []bookingModel.Booking {
	out := make([]bookingModel.Booking, 0, len(bookings)+1)

	replaced := false

	for _, existing := range bookings {
		if existing.ID == b.ID {
			out = append(out, b)
			replaced = true

			continue
		}

		out = append(out, existing)
	}

	if !replaced {
		out = append(out, b)
	}

	return out
}

// Occupancy is a room together with the active bookings holding it.
type Occupancy struct {
	Room     roomModel.Room
	Bookings []bookingModel.Booking
}

// Admits reports whether stay can be booked, ignoring excludeID. A room under maintenance admits nothing.
func (o Occupancy) Admits(stay Stay, excludeID string) bool {
	return !o.Room.Maintenance && !Conflicts(stay, o.Bookings, excludeID)
}

func (o Occupancy) Status(today time.Time) string {
	return DeriveStatus(today, o.Room.Maintenance, o.Bookings)
}

// With returns a copy of o that reflects b. Bookings leaving the active set are dropped.
func (o Occupancy) With(b bookingModel.Booking) Occupancy {
	bookings := Apply(o.Bookings, b)

	active := bookings[:0]
	for _, existing := range bookings {
		if bookingModel.IsActive(existing.Status) {
			active = append(active, existing)
		}
	}

	return Occupancy{Room: o.Room, Bookings: active}
}
