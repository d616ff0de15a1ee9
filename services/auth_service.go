package services

import (
	"context"
	"time"

	"github.com/Nosajool/vct-manager-sub005/utils"
	"github.com/golang-jwt/jwt/v4"
)

// AuthService выдаёт токены администратора лиги. Учётная запись одна и
// задаётся конфигурацией: пользовательской базы у симуляции нет.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         []byte
	tokenTTL          time.Duration
}

func NewAuthService(adminEmail, adminPasswordHash, jwtSecret string) AuthService {
	return &authService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
		tokenTTL:          24 * time.Hour,
	}
}

func (s *authService) Login(_ context.Context, email, password string) (string, error) {
	if email != s.adminEmail || !utils.CheckPasswordHash(password, s.adminPasswordHash) {
		return "", ErrAuthInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
