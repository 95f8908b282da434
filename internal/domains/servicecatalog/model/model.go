package model

import "hotel/shared/model"

const (
	CategoryTableName  = "service_categories"
	CategoryEntityName = "service_category"

	TableName  = "services"
	EntityName = "service"

	FieldID         = "id"
	FieldName       = "name"
	FieldCategoryID = "category_id"
	FieldPrice      = "price"
	FieldUnit       = "unit"
	FieldActive     = "active"
)

type Category struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

// Service is a chargeable extra. Inactive services cannot be attached to bookings.
type Service struct {
	ID           string  `db:"id"`
	CategoryID   string  `db:"category_id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	Unit         string  `db:"unit"`
	Active       bool    `db:"active"`
	CategoryName string  `db:"category_name" table:"service_categories" column:"name"`
	model.Metadata
}

func (Service) GetJoinQuery() string {
	return "JOIN service_categories ON service_categories.id = services.category_id"
}
