package services

import (
	"context"
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the user along with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
