// Package users declares the credential store contract for user accounts.
package users

import (
	"context"

	"github.com/arshan09/AuthenticationApp/internal/server/models"
)

// Repository persists user records. Lookups return common.ErrorNotFound when
// no row matches; Create returns common.ErrorAlreadyExists on a duplicate
// username or email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	// List returns up to limit users after skipping offset, in insertion order.
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
}
