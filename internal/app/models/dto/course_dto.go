package dto

// CreateCourseRequest represents course creation input
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200" example:"Introduction to Go"`
	Description string `json:"description" binding:"max=2000" example:"A first course on Go"`
}

// UpdateCourseRequest represents course update input
type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200" example:"Introduction to Go"`
	Description string `json:"description" binding:"max=2000" example:"A first course on Go"`
}
