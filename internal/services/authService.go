package services

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"easybooking/internal/apperrors"
	"easybooking/internal/config"
	"easybooking/internal/models"
)

// AuthService mints admin session tokens. There is exactly one admin,
// configured via the environment; this deliberately does not generalize to
// multi-tenant auth.
type AuthService interface {
	Login(ctx context.Context, creds *models.Login) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(_ context.Context, creds *models.Login) (string, error) {
	log.Debug().Str("email", creds.Email).Msg("Received admin login request")

	emailOK := s.cfg.AdminEmail != "" &&
		subtle.ConstantTimeCompare([]byte(creds.Email), []byte(s.cfg.AdminEmail)) == 1
	passwordOK := s.passwordMatches(creds.Password)

	if !emailOK || !passwordOK {
		log.Warn().Str("email", creds.Email).Msg("Admin login failed")
		// Never reveal which field was wrong.
		return "", apperrors.Unauthorized("Invalid email or password.")
	}

	if s.cfg.JWTSecret == "" {
		log.Error().Msg("JWT_SECRET is missing, cannot generate token")
		return "", apperrors.Internal("Server configuration error: JWT secret missing.")
	}

	now := time.Now()
	claims := &models.Claims{
		Email: creds.Email,
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		log.Error().Err(err).Msg("Could not sign admin session token")
		return "", apperrors.Internal("Could not generate token.").Wrap(err)
	}

	log.Info().Str("email", creds.Email).Msg("Admin login successful")
	return token, nil
}

// passwordMatches compares against the configured admin password. A value
// in bcrypt form is verified with bcrypt so deployments can avoid storing a
// plaintext secret; anything else is compared in constant time.
func (s *authService) passwordMatches(password string) bool {
	stored := s.cfg.AdminPassword
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
