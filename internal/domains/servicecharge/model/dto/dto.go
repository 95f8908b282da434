package dto

import (
	"hotel/internal/domains/servicecharge/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
)

type AttachServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gte=1"`
}

type ServiceChargeResponse struct {
	ID          string  `json:"id"`
	BookingID   string  `json:"booking_id"`
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Unit        string  `json:"unit"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
	gDto.Metadata
}

func (s *ServiceChargeResponse) FromModel(model model.ServiceCharge) {
	s.ID = model.ID
	s.BookingID = model.BookingID
	s.ServiceID = model.ServiceID
	s.ServiceName = model.ServiceName
	s.Unit = model.Unit
	s.Quantity = model.Quantity
	s.UnitPrice = model.UnitPrice
	s.LineTotal = model.LineTotal
	s.Metadata.FromModel(model.Metadata)
}

type AttachServiceResponse struct {
	ServiceChargeResponse
	BookingTotal float64 `json:"booking_total"`
}

type DetachServiceResponse struct {
	BookingID    string  `json:"booking_id"`
	ChargeID     string  `json:"charge_id"`
	BookingTotal float64 `json:"booking_total"`
}

type GetServiceChargesResponse struct {
	Charges      []ServiceChargeResponse `json:"charges"`
	ChargesTotal float64                 `json:"charges_total"`
	TotalPage    int                     `json:"total_page"`
	TotalData    int                     `json:"total_data"`
}

func (g *GetServiceChargesResponse) FromModels(models []model.ServiceCharge, chargesTotal float64, totalData, limit int) {
	g.ChargesTotal = chargesTotal
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Charges = make([]ServiceChargeResponse, len(models))
	for i, mod := range models {
		g.Charges[i].FromModel(mod)
	}
}
