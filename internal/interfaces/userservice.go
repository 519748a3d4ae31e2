package interfaces

import (
	"context"

	"github.com/haguru/filmdb/internal/models"
)

type UserService interface {
	RegisterUser(ctx context.Context, username, password string) (string, error)
	ValidateLogin(ctx context.Context, username, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
