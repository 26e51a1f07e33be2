package dto

import (
	"github.com/selimc/akademi/internal/app/models"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@akademi.app"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest represents a token refresh attempt
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes the supplied refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries the issued token pair and the caller's profile
type TokenResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	TokenType    string          `json:"tokenType" example:"Bearer"`
	ExpiresIn    int             `json:"expiresIn" example:"3600"`
	Profile      *models.Profile `json:"profile"`
}
