// userservice.go
package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/filmdb/internal/interfaces"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/pkg/helper"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo interfaces.UserRepository
	Logger   interfaces.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Logger:   logger,
	}
}

// RegisterUser hashes the password and adds the user via the repository.
// A taken username surfaces as userrepo.ErrUsernameTaken, an overlong one as
// userrepo.ErrInvalidUsername.
func (s *UserService) RegisterUser(ctx context.Context, username, password string) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if username == "" || password == "" {
		s.Logger.Error(ErrEmptyCredentials, "func", funcName)
		return "", errors.New(ErrEmptyCredentials)
	}

	s.Logger.Info("Registering user", "func", funcName, "user", username)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	user := models.NewUser(username, string(hashedPassword))

	userID, err := s.UserRepo.AddUser(ctx, *user)
	if err != nil {
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	s.Logger.Info("User registered successfully", "func", funcName, "user", username, "ID", userID)
	return userID, nil
}

// ValidateLogin checks the credentials and returns the matching user. An unknown
// username or a wrong password yields (nil, nil); only store failures are errors.
func (s *UserService) ValidateLogin(ctx context.Context, username, password string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrUserNotFound, "func", funcName, "user", username)
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		s.Logger.Warn(ErrInvalidPassword, "func", funcName, "user", username)
		return nil, nil
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	return user, nil
}

// GetUserByUsername returns the user with that username, or nil if there is none.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	return user, nil
}

// GetUserByID returns the user with that id, or nil if there is none.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "id", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "id", id)

	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "id", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	return user, nil
}
