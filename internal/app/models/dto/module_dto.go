package dto

// CreateModuleRequest represents module creation input.
// Position is intentionally absent: the database assigns it.
type CreateModuleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200" example:"Getting Started"`
}

// UpdateModuleRequest represents module update input
type UpdateModuleRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200" example:"Getting Started"`
	Position *int   `json:"position,omitempty" binding:"omitempty,min=1" example:"2"`
}
