package service

import (
	"context"
	"errors"
	"time"

	"github.com/LeZelote01/stock-manager/internal/config"
	"github.com/LeZelote01/stock-manager/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements the legacy single-admin login: one shared password,
// checked against a bcrypt hash, exchanged for a short-lived JWT.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg          *config.Config
	passwordHash []byte
}

func NewAuthService(cfg *config.Config) (AuthService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		// Development fallback: hash the plain password once at startup so
		// login still goes through bcrypt comparison.
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}
	return &authService{cfg: cfg, passwordHash: hash}, nil
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, errors.New("mot de passe incorrect")
	}

	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(expiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Status:    "success",
		Role:      "admin",
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: s.cfg.JWTExpirationHours * 3600,
	}, nil
}
