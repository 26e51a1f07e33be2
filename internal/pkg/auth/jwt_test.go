package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimc/akademi/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func testProfile() *models.Profile {
	return &models.Profile{
		ID:    7,
		Name:  "Test User",
		Email: "test@akademi.app",
		Role:  models.RoleAdmin,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)

	accessToken, refreshToken, expiresIn, err := svc.GenerateTokenPair(testProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "test@akademi.app", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := newTestService(time.Hour)

	_, first, _, err := svc.GenerateTokenPair(testProfile())
	require.NoError(t, err)
	_, second, _, err := svc.GenerateTokenPair(testProfile())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	accessToken, _, _, err := svc.GenerateTokenPair(testProfile())
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	accessToken, _, _, err := newTestService(time.Hour).GenerateTokenPair(testProfile())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	_, err = other.ValidateAndExtractClaims(accessToken)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ValidateAndExtractClaims(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// Raw tokens without the scheme are accepted as-is
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
