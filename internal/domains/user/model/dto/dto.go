package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	QueryRole   = "role"
	QueryStatus = "status"
	QuerySearch = "search"
)

type CreateUserRequest struct {
	Username string  `json:"username"  validate:"required,min=3,max=50,alphanum"`
	Password string  `json:"password"  validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"     validate:"omitempty,max=30"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin staff"`
	Status   string  `json:"status"    validate:"omitempty,oneof=Active Inactive"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleStaff
	}

	status := r.Status
	if status == "" {
		status = model.StatusActive
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     role,
		Status:   status,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateUserRequest changes a staff account. A non-empty Password is rehashed by the service.
type UpdateUserRequest struct {
	FullName string  `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Email    *string `db:"email"     json:"email"     validate:"omitempty,email"`
	Phone    *string `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
	Role     string  `db:"role"      json:"role"      validate:"omitempty,oneof=admin staff"`
	Status   string  `db:"status"    json:"status"    validate:"omitempty,oneof=Active Inactive"`
	Password string  `json:"password"                 validate:"omitempty,min=8"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role
	r.Status = model.Status
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := model.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type StatsResponse struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	AdminCount    int `json:"admin_count"`
	NewLast30Days int `json:"new_last_30_days"`
}
