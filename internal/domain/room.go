package domain

import "time"

type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	Floor       int       `json:"floor"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
