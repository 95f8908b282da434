package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldStatus    = "status"
	FieldLastLogin = "last_login"
	FieldCreatedAt = "created_at"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User is a staff account. Password holds the bcrypt hash.
type User struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	Email     *string    `db:"email"`
	Phone     *string    `db:"phone"`
	Role      string     `db:"role"`
	Status    string     `db:"status"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}
