package models

// User represents an internal user model for the application/database.
// HashedPassword holds the bcrypt hash stored in the password column; it is never serialized.
type User struct {
	ID             string `bson:"id" mapstructure:"id" json:"id"`
	Username       string `bson:"username" mapstructure:"username" json:"username"`
	HashedPassword string `bson:"password" mapstructure:"password" json:"-"`
}

// NewUser creates a new User instance with the given username and password hash.
// Note: No validation is performed here; the id is assigned by the repository.
func NewUser(username string, hashedPassword string) *User {
	return &User{
		Username:       username,
		HashedPassword: hashedPassword,
	}
}
