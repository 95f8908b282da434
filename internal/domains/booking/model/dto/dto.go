package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
)

const (
	RequestParamStatus  = "status"
	RequestParamRoomID  = "room_id"
	RequestParamGuestID = "guest_id"
)

type CreateBookingRequest struct {
	GuestID  string `json:"guest_id"  validate:"required,uuid"`
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	CheckOut string `json:"check_out" validate:"required,dateonly"`
	Adults   int    `json:"adults"    validate:"gte=1"`
	Children int    `json:"children"  validate:"gte=0"`
}

type TransitionRequest struct {
	Action string `json:"action" validate:"required,oneof=confirm cancel check_in check_out"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	GuestID     string  `json:"guest_id"`
	GuestName   string  `json:"guest_name"`
	RoomID      string  `json:"room_id"`
	RoomNumber  string  `json:"room_number"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	Adults      int     `json:"adults"`
	Children    int     `json:"children"`
	Status      string  `json:"status"`
	NightlyRate float64 `json:"nightly_rate"`
	TotalAmount float64 `json:"total_amount"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.GuestID = model.GuestID
	b.GuestName = model.GuestName
	b.RoomID = model.RoomID
	b.RoomNumber = model.RoomNumber
	b.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	b.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	b.Nights = model.Nights()
	b.Adults = model.Adults
	b.Children = model.Children
	b.Status = model.Status
	b.NightlyRate = model.NightlyRate
	b.TotalAmount = model.TotalAmount
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}
