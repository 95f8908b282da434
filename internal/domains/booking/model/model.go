package model

import (
	"math"
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldGuestID     = "guest_id"
	FieldRoomID      = "room_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldAdults      = "adults"
	FieldChildren    = "children"
	FieldStatus      = "status"
	FieldNightlyRate = "nightly_rate"
	FieldTotalAmount = "total_amount"
)

const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "CheckedIn"
	StatusCheckedOut = "CheckedOut"
	StatusCancelled  = "Cancelled"
)

const (
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

const hoursPerDay = 24

// ActiveStatuses are the statuses that hold a room for their stay.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn}

type edge struct {
	from string
	to   string
}

var transitions = map[string][]edge{
	ActionConfirm:  {{from: StatusPending, to: StatusConfirmed}},
	ActionCancel:   {{from: StatusPending, to: StatusCancelled}, {from: StatusConfirmed, to: StatusCancelled}},
	ActionCheckIn:  {{from: StatusConfirmed, to: StatusCheckedIn}},
	ActionCheckOut: {{from: StatusCheckedIn, to: StatusCheckedOut}},
}

// Next returns the status reached by applying action to status.
func Next(status, action string) (string, bool) {
	for _, e := range transitions[action] {
		if e.from == status {
			return e.to, true
		}
	}

	return "", false
}

func IsTerminal(status string) bool {
	return status == StatusCheckedOut || status == StatusCancelled
}

func IsActive(status string) bool {
	return status == StatusPending || status == StatusConfirmed || status == StatusCheckedIn
}

// TotalAmount is the room charge for nights plus attached service charges, rounded to cents.
func TotalAmount(nightlyRate float64, nights int, charges float64) float64 {
	return math.Round((nightlyRate*float64(nights)+charges)*100) / 100
}

// Booking check-in and check-out are calendar dates stored as UTC midnight.
type Booking struct {
	ID          string    `db:"id"`
	GuestID     string    `db:"guest_id"`
	RoomID      string    `db:"room_id"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Adults      int       `db:"adults"`
	Children    int       `db:"children"`
	Status      string    `db:"status"`
	NightlyRate float64   `db:"nightly_rate"`
	TotalAmount float64   `db:"total_amount"`
	GuestName   string    `db:"guest_name"   table:"guests" column:"full_name"`
	RoomNumber  string    `db:"room_number"  table:"rooms"  column:"number"`
	model.Metadata
}

// Nights counts calendar days between check-in and check-out.
func (b Booking) Nights() int {
	in := time.Date(b.CheckIn.Year(), b.CheckIn.Month(), b.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(b.CheckOut.Year(), b.CheckOut.Month(), b.CheckOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / hoursPerDay)
}

func (Booking) GetJoinQuery() string {
	return "JOIN guests ON guests.id = bookings.guest_id JOIN rooms ON rooms.id = bookings.room_id"
}
