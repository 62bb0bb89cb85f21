// Package devicetokens declares the store for per-device refresh tokens.
package devicetokens

import (
	"context"

	"github.com/arshan09/AuthenticationApp/internal/server/models"
)

// Repository keeps at most one token per (user, device).
type Repository interface {
	// Save stores token for the device, replacing any previous one.
	Save(ctx context.Context, userID, deviceID, token string) error

	// ListByUser returns every device token of the user, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.DeviceToken, error)
}
