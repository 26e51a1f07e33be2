package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrModuleNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Module not found")
	case errors.Is(err, apperrors.ErrVideoNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Video not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrProfileNotFound), errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrPermissionDenied), errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondWithDetails(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err.Error())
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrEnrollmentAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student already enrolled")
	case errors.Is(err, apperrors.ErrUnknownRole):
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Inconsistent account data")
	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}

func respondWithDetails(c *gin.Context, status int, code dto.ErrorCode, message string, details interface{}) {
	errorDetail := dto.NewErrorDetail(code, message)
	errorDetail = errorDetail.WithDetails(details)
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	})
}
