package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ISSUER   = "github.com/haguru/filmdb"
	SUBJECT  = "AUTHENTICATION"
	AUDIENCE = "api." + ISSUER

	// TokenTTL is how long a session token stays valid.
	TokenTTL = 15 * time.Minute
)

var ErrNilKey = errors.New("signing key is nil")

// CustomClaims identifies the logged in user by id, with the username for display.
type CustomClaims struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CreateToken signs an ES256 session token for the user.
func CreateToken(userID, username string, privateKey *ecdsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", ErrNilKey
	}

	now := time.Now()
	claims := CustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			Audience:  []string{AUDIENCE},
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", err
	}

	return signToken, nil
}

// VerifyToken checks the signature, issuer, audience and lifetime of tokenString.
func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*CustomClaims, error) {
	if publicKey == nil {
		return nil, ErrNilKey
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(ISSUER),
		jwt.WithAudience(AUDIENCE),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token or claims")
}
