package models

import (
	"time"
)

// User defines the identity record based on the 'users' table.
// It carries credentials only; application-level data lives on Profile.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"student@akademi.app"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`
}

// Profile defines the application-level user record based on the 'profiles'
// table. Its id is shared with the identity record (1:1).
type Profile struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Ayşe Yılmaz"`
	Email     string    `json:"email" db:"email" example:"student@akademi.app"`
	Role      Role      `json:"role" db:"role" example:"student"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
}
