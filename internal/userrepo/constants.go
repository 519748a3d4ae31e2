package userrepo

import "errors"

const (
	// UsersTable is the table (or collection) holding user accounts.
	UsersTable = "users"

	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"

	MAXLENGTH_USERNAME = 64 // Maximum length for username

	// Error messages for user repository operations
	ErrFailedToAddUser       = "failed to add user"
	ErrFailedToGetUser       = "failed to get user"
	ErrFailedToDecodeUser    = "failed to decode user"
	ErrFailedToEnsureIndices = "failed to ensure users table"
)

var (
	// ErrUsernameTaken is returned by AddUser when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidUsername is returned by AddUser for an empty username or one
	// longer than MAXLENGTH_USERNAME, which lookups could never find.
	ErrInvalidUsername = errors.New("invalid username")
)
