package dto

import (
	"hotel/internal/domains/guest/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type UpsertGuestRequest struct {
	FullName  string `json:"full_name"  validate:"required,max=100"`
	IDNumber  string `json:"id_number"  validate:"required,max=50"`
	Email     string `json:"email"      validate:"omitempty,email,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=30"`
	Address   string `json:"address"    validate:"omitempty,max=500"`
	GuestType string `json:"guest_type" validate:"omitempty,oneof=Regular VIP Corporate"`
}

func (u *UpsertGuestRequest) ToModel(user string) model.Guest {
	guestType := u.GuestType
	if guestType == "" {
		guestType = model.TypeRegular
	}

	return model.Guest{
		ID:        uuid.NewString(),
		FullName:  u.FullName,
		IDNumber:  u.IDNumber,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		GuestType: guestType,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

// Contact keeps only the fields an existing guest may have changed by an upsert.
func (u *UpsertGuestRequest) Contact() UpdateContactRequest {
	return UpdateContactRequest{
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
	}
}

type UpdateContactRequest struct {
	Email   string `db:"email"   json:"email"   validate:"omitempty,email,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=30"`
	Address string `db:"address" json:"address" validate:"omitempty,max=500"`
}

func (u UpdateContactRequest) Apply(guest *model.Guest) {
	if u.Email != "" {
		guest.Email = u.Email
	}

	if u.Phone != "" {
		guest.Phone = u.Phone
	}

	if u.Address != "" {
		guest.Address = u.Address
	}
}

type GuestResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	IDNumber  string `json:"id_number"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	GuestType string `json:"guest_type"`
	gDto.Metadata
}

func (g *GuestResponse) FromModel(model model.Guest) {
	g.ID = model.ID
	g.FullName = model.FullName
	g.IDNumber = model.IDNumber
	g.Email = model.Email
	g.Phone = model.Phone
	g.Address = model.Address
	g.GuestType = model.GuestType
	g.Metadata.FromModel(model.Metadata)
}

type UpsertGuestResponse struct {
	GuestResponse
	Created bool `json:"created"`
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		g.Guests[i].FromModel(mod)
	}
}
