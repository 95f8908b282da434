package dto

import (
	"net/http"
	"time"

	availabilityModel "hotel/internal/domains/availability/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

const (
	RequestParamFrom = "from"
	RequestParamTo   = "to"
)

// PeriodQuery is a half-open date range. Both ends default to the current month.
type PeriodQuery struct {
	From string `json:"from" validate:"omitempty,dateonly"`
	To   string `json:"to"   validate:"omitempty,dateonly"`
}

func (q *PeriodQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.From = query.Get(RequestParamFrom)
	q.To = query.Get(RequestParamTo)
}

func (q PeriodQuery) Period() (availabilityModel.Stay, error) {
	today := availabilityModel.Day(timezone.Now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	from, to := q.From, q.To
	if from == constant.Empty {
		from = monthStart.Format(constant.DateOnlyFormat)
	}

	if to == constant.Empty {
		to = monthStart.AddDate(0, 1, 0).Format(constant.DateOnlyFormat)
	}

	period, err := availabilityModel.ParseStay(from, to)
	if err != nil {
		return period, failure.InvalidInput("report period: " + err.Error()) // nolint:wrapcheck
	}

	return period, nil
}

type OccupancyReportResponse struct {
	From             string         `json:"from"`
	To               string         `json:"to"`
	TotalRooms       int            `json:"total_rooms"`
	RoomsByStatus    map[string]int `json:"rooms_by_status"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	TotalBookings    int            `json:"total_bookings"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	Revenue          float64        `json:"revenue"`
}
