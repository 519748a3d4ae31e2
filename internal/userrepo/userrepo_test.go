package userrepo

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haguru/filmdb/internal/interfaces/mocks"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/pkg/databases"
	"github.com/haguru/filmdb/pkg/databases/sqldb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *UserRepository {
	t.Helper()
	ctx := context.Background()

	client := sqldb.NewSQLiteClient([]string{UsersTable}, []string{FieldID, FieldUsername, FieldPassword})
	require.NoError(t, client.Connect(ctx, filepath.Join(t.TempDir(), "users.db")))
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo, err := NewUserRepository(client)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(ctx))
	return repo
}

func TestNewUserRepository(t *testing.T) {
	_, err := NewUserRepository(nil)
	assert.Error(t, err)

	repo, err := NewUserRepository(mocks.NewMockDBClient(t))
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestUserRepository_AddAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	id, err := repo.AddUser(ctx, *models.NewUser("ripley", "$2a$10$hash"))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "id should be a UUID")

	byName, err := repo.GetUserByUsername(ctx, "ripley")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, models.User{ID: id, Username: "ripley", HashedPassword: "$2a$10$hash"}, *byName)

	byID, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, byName, byID)
}

func TestUserRepository_UsernameLength(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "at the limit", username: strings.Repeat("a", MAXLENGTH_USERNAME)},
		{name: "one over the limit", username: strings.Repeat("a", MAXLENGTH_USERNAME+1), wantErr: ErrInvalidUsername},
		{name: "empty", username: "", wantErr: ErrInvalidUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newSQLiteRepo(t)

			id, err := repo.AddUser(ctx, *models.NewUser(tt.username, "$2a$10$hash"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)

				// nothing was stored, so the name is still free at the limit
				_, err = repo.AddUser(ctx, *models.NewUser(strings.Repeat("b", MAXLENGTH_USERNAME), "$2a$10$hash"))
				assert.NoError(t, err)
				return
			}
			require.NoError(t, err)

			user, err := repo.GetUserByUsername(ctx, tt.username)
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, id, user.ID)
		})
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	_, err := repo.AddUser(ctx, *models.NewUser("ripley", "h1"))
	require.NoError(t, err)

	_, err = repo.AddUser(ctx, *models.NewUser("ripley", "h2"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserRepository_Absent(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	tests := []struct {
		name   string
		lookup func() (*models.User, error)
	}{
		{name: "unknown username", lookup: func() (*models.User, error) { return repo.GetUserByUsername(ctx, "nobody") }},
		{name: "empty username", lookup: func() (*models.User, error) { return repo.GetUserByUsername(ctx, "") }},
		{name: "unknown id", lookup: func() (*models.User, error) { return repo.GetUserByID(ctx, uuid.NewString()) }},
		{name: "empty id", lookup: func() (*models.User, error) { return repo.GetUserByID(ctx, "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := tt.lookup()
			assert.NoError(t, err)
			assert.Nil(t, user)
		})
	}
}

func TestUserRepository_StoreErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")

	tests := []struct {
		name      string
		mockSetup func(db *mocks.MockDBClient)
		call      func(r *UserRepository) error
	}{
		{
			name: "insert failure",
			mockSetup: func(db *mocks.MockDBClient) {
				db.On("InsertOne", mock.Anything, UsersTable, mock.Anything).Return(nil, storeErr)
			},
			call: func(r *UserRepository) error {
				_, err := r.AddUser(ctx, models.User{Username: "ann", HashedPassword: "h"})
				return err
			},
		},
		{
			name: "lookup failure",
			mockSetup: func(db *mocks.MockDBClient) {
				db.On("FindOne", mock.Anything, UsersTable, databases.Document{FieldUsername: "ann"}).Return(nil, storeErr)
			},
			call: func(r *UserRepository) error {
				_, err := r.GetUserByUsername(ctx, "ann")
				return err
			},
		},
		{
			name: "schema failure",
			mockSetup: func(db *mocks.MockDBClient) {
				db.On("EnsureSchema", mock.Anything, UsersTable, usersSpec).Return(storeErr)
			},
			call: func(r *UserRepository) error {
				return r.EnsureIndices(ctx)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := mocks.NewMockDBClient(t)
			tt.mockSetup(db)
			repo, err := NewUserRepository(db)
			require.NoError(t, err)

			err = tt.call(repo)
			assert.ErrorIs(t, err, storeErr)
			assert.NotErrorIs(t, err, ErrUsernameTaken)
		})
	}
}

func TestUserRepository_InsertsHashUnderPasswordColumn(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("InsertOne", mock.Anything, UsersTable, mock.MatchedBy(func(doc databases.Document) bool {
		_, hasID := doc[FieldID]
		return hasID && doc[FieldUsername] == "ann" && doc[FieldPassword] == "$2a$hash"
	})).Return("ignored", nil)

	repo, err := NewUserRepository(db)
	require.NoError(t, err)

	id, err := repo.AddUser(context.Background(), models.User{Username: "ann", HashedPassword: "$2a$hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
