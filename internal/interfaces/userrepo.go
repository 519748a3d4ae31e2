package interfaces

import (
	"context"

	"github.com/haguru/filmdb/internal/models"
)

// UserRepository defines the contract for storing and retrieving User data.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	AddUser(ctx context.Context, user models.User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	EnsureIndices(ctx context.Context) error
}
