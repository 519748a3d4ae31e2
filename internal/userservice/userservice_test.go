package userservice

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haguru/filmdb/internal/interfaces/mocks"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/internal/userrepo"
	"github.com/haguru/filmdb/pkg/databases/sqldb"
	"github.com/haguru/filmdb/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()
	ctx := context.Background()

	client := sqldb.NewSQLiteClient(
		[]string{userrepo.UsersTable},
		[]string{userrepo.FieldID, userrepo.FieldUsername, userrepo.FieldPassword},
	)
	require.NoError(t, client.Connect(ctx, filepath.Join(t.TempDir(), "users.db")))
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo, err := userrepo.NewUserRepository(client)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(ctx))

	return NewUserService(repo, zerolog.NewLogger(io.Discard, "test"))
}

func TestUserService_RegisterThenValidate(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	id, err := s.RegisterUser(ctx, "ripley", "nostromo1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	tests := []struct {
		name     string
		username string
		password string
		wantUser bool
	}{
		{name: "correct credentials", username: "ripley", password: "nostromo1", wantUser: true},
		{name: "wrong password", username: "ripley", password: "sulaco", wantUser: false},
		{name: "unknown user", username: "dallas", password: "nostromo1", wantUser: false},
		{name: "empty password", username: "ripley", password: "", wantUser: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.ValidateLogin(ctx, tt.username, tt.password)
			require.NoError(t, err)
			if !tt.wantUser {
				assert.Nil(t, user)
				return
			}
			require.NotNil(t, user)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, id, user.ID)
		})
	}
}

func TestUserService_UsernameLength(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	longest := strings.Repeat("a", userrepo.MAXLENGTH_USERNAME)
	id, err := s.RegisterUser(ctx, longest, "nostromo1")
	require.NoError(t, err)

	user, err := s.ValidateLogin(ctx, longest, "nostromo1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)

	tooLong := strings.Repeat("a", userrepo.MAXLENGTH_USERNAME+1)
	id, err = s.RegisterUser(ctx, tooLong, "nostromo1")
	assert.ErrorIs(t, err, userrepo.ErrInvalidUsername)
	assert.Empty(t, id)

	user, err = s.ValidateLogin(ctx, tooLong, "nostromo1")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_PasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.RegisterUser(ctx, "ripley", "nostromo1")
	require.NoError(t, err)

	user, err := s.GetUserByUsername(ctx, "ripley")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "nostromo1", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("nostromo1")))
}

func TestUserService_DuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.RegisterUser(ctx, "ripley", "nostromo1")
	require.NoError(t, err)

	_, err = s.RegisterUser(ctx, "ripley", "another1")
	assert.ErrorIs(t, err, userrepo.ErrUsernameTaken)
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	id, err := s.RegisterUser(ctx, "ripley", "nostromo1")
	require.NoError(t, err)

	byID, err := s.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ripley", byID.Username)

	missing, err := s.GetUserByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = s.GetUserByUsername(ctx, "dallas")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserService_RegisterUser_EmptyCredentials(t *testing.T) {
	repo := mocks.NewMockUserRepository(t)
	s := NewUserService(repo, zerolog.NewLogger(io.Discard, "test"))

	_, err := s.RegisterUser(context.Background(), "", "secret123")
	assert.Error(t, err)
	_, err = s.RegisterUser(context.Background(), "ripley", "")
	assert.Error(t, err)
}

func TestUserService_StoreErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")

	tests := []struct {
		name      string
		mockSetup func(repo *mocks.MockUserRepository)
		call      func(s *UserService) error
	}{
		{
			name: "register",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("AddUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "ripley" && u.HashedPassword != "nostromo1"
				})).Return("", storeErr)
			},
			call: func(s *UserService) error {
				_, err := s.RegisterUser(ctx, "ripley", "nostromo1")
				return err
			},
		},
		{
			name: "validate login",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "ripley").Return(nil, storeErr)
			},
			call: func(s *UserService) error {
				_, err := s.ValidateLogin(ctx, "ripley", "nostromo1")
				return err
			},
		},
		{
			name: "get by id",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByID", mock.Anything, "u-1").Return(nil, storeErr)
			},
			call: func(s *UserService) error {
				_, err := s.GetUserByID(ctx, "u-1")
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository(t)
			tt.mockSetup(repo)
			s := NewUserService(repo, zerolog.NewLogger(io.Discard, "test"))

			assert.ErrorIs(t, tt.call(s), storeErr)
		})
	}
}
