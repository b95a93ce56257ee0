package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
)

func newTestJWTService() InterfaceJWTService {
	return NewJWTService(&config.Config{JWTSecretKey: "test-secret-key"}, nil)
}

func TestGenerateAndExtractClaims(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("admin-123", models.RoleEditor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-123", claims.AdminID)
	assert.Equal(t, models.RoleEditor, claims.Role)
	assert.Equal(t, "binreminder-http-service", claims.Issuer)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("admin-123", models.RoleSuperuser)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(&config.Config{JWTSecretKey: "different-secret"}, nil)

	token, err := svc.GenerateToken("admin-123", models.RoleSuperuser)
	require.NoError(t, err)

	_, err = other.ExtractClaims(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := models.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, models.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, models.CheckPasswordHash("wrong-pass", hash))
}
