package model

import "hotel/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID        = "id"
	FieldFullName  = "full_name"
	FieldIDNumber  = "id_number"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldGuestType = "guest_type"
)

const (
	TypeRegular   = "Regular"
	TypeVIP       = "VIP"
	TypeCorporate = "Corporate"
)

// Guest is identified by IDNumber, the number on the guest's identity document.
type Guest struct {
	ID        string `db:"id"`
	FullName  string `db:"full_name"`
	IDNumber  string `db:"id_number"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	GuestType string `db:"guest_type"`
	model.Metadata
}
