package model

import "hotel/shared/model"

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldBasePrice   = "base_price"
	FieldCapacity    = "capacity"
)

// RoomType is the nightly rate source for every room of the type.
type RoomType struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	BasePrice   float64 `db:"base_price"`
	Capacity    int     `db:"capacity"`
	model.Metadata
}
