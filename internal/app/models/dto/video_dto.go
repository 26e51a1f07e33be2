package dto

// CreateVideoRequest represents video creation input
type CreateVideoRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200" example:"Installing the toolchain"`
	BunnyVideoID string `json:"bunnyVideoId" binding:"required" example:"4f2d7a9c-1b3e-4d5f"`
}

// UpdateVideoRequest represents video update input
type UpdateVideoRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=200" example:"Installing the toolchain"`
	BunnyVideoID string `json:"bunnyVideoId" binding:"required" example:"4f2d7a9c-1b3e-4d5f"`
	Position     *int   `json:"position,omitempty" binding:"omitempty,min=1" example:"2"`
}
