package models

import (
	"time"
)

// Module defines the module model based on the 'modules' table.
// Position determines display order within a course and is assigned by the
// database at insert time, never by the client.
type Module struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	CourseID  int64     `json:"courseId" db:"course_id" example:"1"`
	Title     string    `json:"title" db:"title" example:"Getting Started"`
	Position  int       `json:"position" db:"position" example:"1"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`

	// Relation, populated on detail reads only
	Videos []*Video `json:"videos,omitempty"`
}
