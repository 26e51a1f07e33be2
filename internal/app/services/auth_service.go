package services

import (
	"context"
	"errors"
	"strings"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/repositories"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/auth"
	"github.com/selimc/akademi/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. Invalid email and wrong
// password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("email", email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.userRepo.GetProfileByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// RefreshToken rotates a refresh token, revoking the old one
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// Logout revokes the supplied refresh token. A token that is already gone is
// treated as logged out.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// GetProfile returns the profile of the authenticated user
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.userRepo.GetProfileByID(ctx, userID)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, profile *models.Profile) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		logger.Error().Err(err).Int64("userID", profile.ID).Msg("Error generating token pair")
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		Profile:      profile,
	}, nil
}
