package services

import (
	"context"
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/platform/config"
	"github.com/ptairone/logistica-flash-sub000/internal/utils"
)

// tokenService implements the TokenSvcFacade for issuing JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}
