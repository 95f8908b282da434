package dto

import (
	"hotel/internal/domains/servicecatalog/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	QueryCategoryID = "category_id"
	QueryActive     = "active"
	QueryName       = "name"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCategoryRequest struct {
	Name string `db:"name" json:"name" validate:"required,max=100"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (c *CategoryResponse) FromModel(model model.Category) {
	c.ID = model.ID
	c.Name = model.Name
	c.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (g *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		g.Categories[i].FromModel(mod)
	}
}

type CreateServiceRequest struct {
	CategoryID string  `json:"category_id" validate:"required,uuid"`
	Name       string  `json:"name"        validate:"required,max=100"`
	Price      float64 `json:"price"       validate:"gte=0"`
	Unit       string  `json:"unit"        validate:"required,max=30"`
	Active     *bool   `json:"active"`
}

// ToModel creates an active service unless the request says otherwise.
func (c *CreateServiceRequest) ToModel(user string) model.Service {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Service{
		ID:         uuid.NewString(),
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Price:      c.Price,
		Unit:       c.Unit,
		Active:     active,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateServiceRequest struct {
	CategoryID string   `db:"category_id" json:"category_id" validate:"omitempty,uuid"`
	Name       string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Price      *float64 `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Unit       string   `db:"unit"        json:"unit"        validate:"omitempty,max=30"`
	Active     *bool    `db:"active"      json:"active"`
}

type ServiceResponse struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Unit         string  `json:"unit"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (s *ServiceResponse) FromModel(model model.Service) {
	s.ID = model.ID
	s.CategoryID = model.CategoryID
	s.CategoryName = model.CategoryName
	s.Name = model.Name
	s.Price = model.Price
	s.Unit = model.Unit
	s.Active = model.Active
	s.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		g.Services[i].FromModel(mod)
	}
}

// CategoryServicesResponse groups the active services under their category.
type CategoryServicesResponse struct {
	Category CategoryResponse  `json:"category"`
	Services []ServiceResponse `json:"services"`
}
