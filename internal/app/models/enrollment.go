package models

import (
	"time"
)

// Enrollment defines the many-to-many link between a student profile and a
// course, based on the 'enrollments' table. Rows are cascade-deleted with
// the profile.
type Enrollment struct {
	ProfileID int64     `json:"profileId" db:"profile_id" example:"1"`
	CourseID  int64     `json:"courseId" db:"course_id" example:"1"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`

	// Relations, populated on joined reads only
	Profile *Profile `json:"profile,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
