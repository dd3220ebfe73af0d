package users

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// Repository is the user record store. Lookups miss with
// common.ErrorNotFound; Create on a taken email fails with
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns the record without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) error
}
