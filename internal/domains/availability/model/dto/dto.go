package dto

import (
	"net/http"

	"hotel/internal/domains/availability/model"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

const (
	RequestParamCheckIn  = "check_in"
	RequestParamCheckOut = "check_out"
	RequestParamTypeID   = "type_id"
)

type StayQuery struct {
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	CheckOut string `json:"check_out" validate:"required,dateonly"`
}

func (q *StayQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.CheckIn = query.Get(RequestParamCheckIn)
	q.CheckOut = query.Get(RequestParamCheckOut)
}

// Stay parses the query. An empty or reversed range is InvalidInput.
func (q StayQuery) Stay() (model.Stay, error) {
	stay, err := model.ParseStay(q.CheckIn, q.CheckOut)
	if err != nil {
		return stay, failure.InvalidInput(err.Error()) // nolint:wrapcheck
	}

	return stay, nil
}

type RoomAvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Nights    int    `json:"nights"`
	Available bool   `json:"available"`
}

func (r *RoomAvailabilityResponse) From(roomID string, stay model.Stay, available bool) {
	r.RoomID = roomID
	r.CheckIn = stay.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = stay.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = stay.Nights()
	r.Available = available
}

type FreeRoomsResponse struct {
	TypeID   string                 `json:"type_id"`
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Nights   int                    `json:"nights"`
	Rooms    []roomDto.RoomResponse `json:"rooms"`
}

func (r *FreeRoomsResponse) From(typeID string, stay model.Stay, rooms []roomModel.Room) {
	r.TypeID = typeID
	r.CheckIn = stay.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = stay.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = stay.Nights()

	r.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}
