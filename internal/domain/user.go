package domain

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name" validate:"required"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
