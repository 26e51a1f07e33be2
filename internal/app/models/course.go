package models

import (
	"time"
)

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Introduction to Go"`
	Description string    `json:"description" db:"description" example:"A first course on Go"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`

	// Relations, populated on detail reads only
	Modules []*Module `json:"modules,omitempty"`
}
