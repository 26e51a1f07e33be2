package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/services"
	"github.com/selimc/akademi/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService  services.AuthService
	cookieName   string
	cookieMaxAge int
}

// NewAuthController creates a new AuthController. cookieName is the session
// cookie the page gate reads; cookieMaxAge is its lifetime in seconds.
func NewAuthController(authService services.AuthService, cookieName string, cookieMaxAge int) *AuthController {
	return &AuthController{
		authService:  authService,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
	}
}

// Login handles user login
// @Summary Log in
// @Description Verifies credentials and returns a token pair. Also sets the session cookie used by the page routes.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	tokens, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, tokens.AccessToken)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokens))
}

// RefreshToken handles token refresh
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair. The old refresh token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Tokens refreshed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid, expired or revoked refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, tokens.AccessToken)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokens))
}

// Logout handles user logout
// @Summary Log out
// @Description Revokes the refresh token and clears the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest true "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(c.cookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.SuccessResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}

// Me returns the authenticated user's profile
// @Summary Get own profile
// @Description Returns the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	profile, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, accessToken string) {
	ctx.SetCookie(c.cookieName, accessToken, c.cookieMaxAge, "/", "", false, true)
}
