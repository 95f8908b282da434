package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number string `json:"number"  validate:"required,max=20"`
	TypeID string `json:"type_id" validate:"required,uuid"`
	Floor  int    `json:"floor"   validate:"gte=0,lte=200"`
}

// ToModel starts every room Available. Status is derived from bookings afterwards.
func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:       uuid.NewString(),
		Number:   c.Number,
		TypeID:   c.TypeID,
		Floor:    c.Floor,
		Status:   model.StatusAvailable,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Number string `db:"number"  json:"number"  validate:"omitempty,max=20"`
	TypeID string `db:"type_id" json:"type_id" validate:"omitempty,uuid"`
	Floor  *int   `db:"floor"   json:"floor"   validate:"omitempty,gte=0,lte=200"`
}

type SetMaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" validate:"required"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	TypeID      string  `json:"type_id"`
	TypeName    string  `json:"type_name"`
	BasePrice   float64 `json:"base_price"`
	Capacity    int     `json:"capacity"`
	Floor       int     `json:"floor"`
	Status      string  `json:"status"`
	Maintenance bool    `json:"maintenance"`
	Image       string  `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.TypeID = model.TypeID
	r.TypeName = model.TypeName
	r.BasePrice = model.BasePrice
	r.Capacity = model.Capacity
	r.Floor = model.Floor
	r.Status = model.Status
	r.Maintenance = model.Maintenance
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
