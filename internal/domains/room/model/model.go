package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldTypeID      = "type_id"
	FieldFloor       = "floor"
	FieldStatus      = "status"
	FieldMaintenance = "maintenance"
	FieldImage       = "image"
)

const (
	StatusAvailable   = "Available"
	StatusOccupied    = "Occupied"
	StatusMaintenance = "Maintenance"
	StatusReserved    = "Reserved"
)

// Room carries its type's name, rate and capacity through the room_types join.
type Room struct {
	ID          string  `db:"id"`
	Number      string  `db:"number"`
	TypeID      string  `db:"type_id"`
	Floor       int     `db:"floor"`
	Status      string  `db:"status"`
	Maintenance bool    `db:"maintenance"`
	Image       string  `db:"image"`
	TypeName    string  `db:"type_name"  table:"room_types" column:"name"`
	BasePrice   float64 `db:"base_price" table:"room_types" column:"base_price"`
	Capacity    int     `db:"capacity"   table:"room_types" column:"capacity"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN room_types ON room_types.id = rooms.type_id"
}
