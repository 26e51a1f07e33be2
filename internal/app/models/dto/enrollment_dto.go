package dto

// EnrollRequest enrolls a student profile in a course
type EnrollRequest struct {
	ProfileID int64 `json:"profileId" binding:"required,min=1" example:"1"`
	CourseID  int64 `json:"courseId" binding:"required,min=1" example:"1"`
}
