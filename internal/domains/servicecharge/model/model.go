package model

import (
	"math"

	"hotel/shared/model"
)

const (
	TableName  = "booking_services"
	EntityName = "service_charge"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldServiceID = "service_id"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
	FieldLineTotal = "line_total"
)

// ServiceCharge freezes the service price at the time it was attached.
type ServiceCharge struct {
	ID          string  `db:"id"`
	BookingID   string  `db:"booking_id"`
	ServiceID   string  `db:"service_id"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
	LineTotal   float64 `db:"line_total"`
	ServiceName string  `db:"service_name" table:"services" column:"name"`
	Unit        string  `db:"unit"         table:"services" column:"unit"`
	model.Metadata
}

func (ServiceCharge) GetJoinQuery() string {
	return "JOIN services ON services.id = booking_services.service_id"
}

func LineTotal(quantity int, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}
