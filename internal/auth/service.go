package auth

import (
	"errors"
	"strings"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")

const RoleAdmin = "ADMIN"

// Service authenticates the single admin account configured via the
// environment. There is no user table; the catalog has exactly one
// administrator.
type Service struct {
	secret     string
	adminEmail string
	adminHash  string
	tokenTTL   time.Duration
}

func NewService(secret, adminEmail, adminPasswordHash string, tokenTTL time.Duration) *Service {
	return &Service{
		secret:     secret,
		adminEmail: adminEmail,
		adminHash:  adminPasswordHash,
		tokenTTL:   tokenTTL,
	}
}

// Login verifies the admin credentials and returns a signed access token
// together with its lifetime in seconds.
func (s *Service) Login(email, password string) (string, int, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return "", 0, ErrUnauthorized
	}
	if !VerifyPassword(s.adminHash, password) {
		return "", 0, ErrUnauthorized
	}

	token, err := GenerateToken(s.secret, s.adminEmail, RoleAdmin, s.tokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.tokenTTL.Seconds()), nil
}
