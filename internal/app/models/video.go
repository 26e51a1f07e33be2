package models

import (
	"time"
)

// Video defines the video model based on the 'videos' table.
// BunnyVideoID is an opaque external stream reference; historic rows hold
// either a bare ID or a full URL, so it is never parsed server-side.
type Video struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	ModuleID     int64     `json:"moduleId" db:"module_id" example:"1"`
	Title        string    `json:"title" db:"title" example:"Installing the toolchain"`
	BunnyVideoID string    `json:"bunnyVideoId" db:"bunny_video_id" example:"4f2d7a9c-1b3e-4d5f"`
	Position     int       `json:"position" db:"position" example:"1"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
}
