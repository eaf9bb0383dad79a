package services

import (
	"context"
	"time"

	"github.com/vendmach/vending_machine_api/internal/core/domain"
)

// TokenSvcFacade defines access token issuance.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the user and returns it with
	// its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
