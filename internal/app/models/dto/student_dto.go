package dto

import (
	"github.com/selimc/akademi/internal/app/models"
)

// CreateStudentRequest represents student account creation input.
// CourseIDs are optional initial enrollments.
type CreateStudentRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=200" example:"Ayşe Yılmaz"`
	Email     string  `json:"email" binding:"required,email" example:"ayse@akademi.app"`
	Password  string  `json:"password" binding:"required,min=6" example:"secret123"`
	CourseIDs []int64 `json:"courseIds,omitempty"`
}

// UpdateStudentRequest represents student profile update input.
// Role is immutable and intentionally not accepted here.
type UpdateStudentRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200" example:"Ayşe Yılmaz"`
	Email string `json:"email" binding:"required,email" example:"ayse@akademi.app"`
}

// StudentResponse carries the created profile plus the outcome of the
// optional enrollment step. Enrollment failures do not fail the creation.
type StudentResponse struct {
	Profile           *models.Profile     `json:"profile"`
	EnrolledCourseIDs []int64             `json:"enrolledCourseIds,omitempty"`
	FailedEnrollments []EnrollmentFailure `json:"failedEnrollments,omitempty"`
}

// EnrollmentFailure reports a single non-fatal enrollment error
type EnrollmentFailure struct {
	CourseID int64  `json:"courseId" example:"3"`
	Message  string `json:"message" example:"course not found"`
}
