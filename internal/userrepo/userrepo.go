package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/filmdb/internal/interfaces"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/pkg/databases"

	"github.com/google/uuid"
)

// usersSpec is the users table: a UUID primary key and a unique username.
var usersSpec = databases.TableSpec{
	Columns: []databases.ColumnSpec{
		{Name: FieldID, Type: databases.Text, PrimaryKey: true},
		{Name: FieldUsername, Type: databases.Text, NotNull: true, Unique: true},
		{Name: FieldPassword, Type: databases.Text, NotNull: true},
	},
}

var _ interfaces.UserRepository = (*UserRepository)(nil)

// UserRepository implements interfaces.UserRepository on any DBClient.
type UserRepository struct {
	dbClient interfaces.DBClient
}

// NewUserRepository creates a repository backed by dbClient.
func NewUserRepository(dbClient interfaces.DBClient) (*UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &UserRepository{dbClient: dbClient}, nil
}

// AddUser stores user under a freshly generated UUID and returns it.
// user.HashedPassword must already be hashed.
func (r *UserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	if len(user.Username) == 0 || len(user.Username) > MAXLENGTH_USERNAME {
		return "", fmt.Errorf("%w: length must be 1 to %d", ErrInvalidUsername, MAXLENGTH_USERNAME)
	}

	id := uuid.NewString()
	doc := databases.Document{
		FieldID:       id,
		FieldUsername: user.Username,
		FieldPassword: user.HashedPassword,
	}

	if _, err := r.dbClient.InsertOne(ctx, UsersTable, doc); err != nil {
		if errors.Is(err, databases.ErrDuplicateKey) {
			return "", fmt.Errorf("%w: %s", ErrUsernameTaken, user.Username)
		}
		return "", fmt.Errorf("%s: %w", ErrFailedToAddUser, err)
	}
	return id, nil
}

// GetUserByUsername returns the user with that username, or nil if there is none.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if len(username) == 0 || len(username) > MAXLENGTH_USERNAME {
		return nil, nil
	}
	return r.findOne(ctx, databases.Document{FieldUsername: username})
}

// GetUserByID returns the user with that id, or nil if there is none.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}
	return r.findOne(ctx, databases.Document{FieldID: id})
}

// EnsureIndices creates the users table and its unique username index.
func (r *UserRepository) EnsureIndices(ctx context.Context) error {
	if err := r.dbClient.EnsureSchema(ctx, UsersTable, usersSpec); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToEnsureIndices, err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter databases.Document) (*models.User, error) {
	doc, err := r.dbClient.FindOne(ctx, UsersTable, filter)
	if errors.Is(err, databases.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToGetUser, err)
	}

	var user models.User
	if err := databases.Decode(doc, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToDecodeUser, err)
	}
	return &user, nil
}
