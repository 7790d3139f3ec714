package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tariff-sync/internal/config"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/pkg/apiErrors"
	"github.com/vfg2006/tariff-sync/pkg/utils"
)

const issuer = "tariff-sync"

type Authenticator interface {
	GenerateToken(subject string, roleID int, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	if cfg.Secret == "" {
		logrus.Warn("AUTH_SECRET não configurado, rotas administrativas vão recusar todas as requisições")
	}

	return &Service{
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
}

// GenerateToken emite um JWT HS256 para o operador informado
func (s *Service) GenerateToken(subject string, roleID int, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrAuthDisabled
	}
	if subject == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "subject é obrigatório")
	}
	if ttl <= 0 {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, fmt.Sprintf("ttl deve ser positivo (recebido %s)", ttl))
	}

	tokenID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id do token: %w", err)
	}

	now := s.now()
	claims := domain.Claims{
		UserName:   subject,
		UserRoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if len(s.secret) == 0 {
		return nil, NewAuthError(ErrAuthDisabled, apiErrors.ErrInvalidToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
