package service_test

import (
	"context"
	"testing"

	"github.com/LeZelote01/stock-manager/internal/config"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authConfig() *config.Config {
	return &config.Config{
		AdminPassword:      "secret-test",
		JWTSecret:          "unit-test-secret",
		JWTExpirationHours: 8,
	}
}

func TestLoginMotDePasseCorrect(t *testing.T) {
	svc, err := service.NewAuthService(authConfig())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Password: "secret-test"})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)

	// Token must carry the admin role and verify against the configured secret
	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("unit-test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginMotDePasseIncorrect(t *testing.T) {
	svc, err := service.NewAuthService(authConfig())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Password: "wrong"})
	assert.Error(t, err)
}

func TestLoginUtiliseLeHashConfigure(t *testing.T) {
	cfg := authConfig()
	// Any valid bcrypt hash that does not match AdminPassword
	cfg.AdminPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	cfg.AdminPassword = "ignored-when-hash-present"

	svc, err := service.NewAuthService(cfg)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Password: "ignored-when-hash-present"})
	assert.Error(t, err)
}
