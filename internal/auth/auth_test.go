package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// testJwtPrivateKey is generated in TestMain and shared by the tests.
var testJwtPrivateKey *ecdsa.PrivateKey

const (
	validKeyFile   = "test_valid_private.pem"
	invalidKeyFile = "test_invalid_private.pem"
)

func TestMain(m *testing.M) {
	validKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate ECDSA private key for tests: %v", err)
	}
	testJwtPrivateKey = validKey

	if err := writeKeyFile(validKeyFile, validKey); err != nil {
		log.Fatalf("Failed to write valid private key to PEM: %v", err)
	}

	invalidPEM := []byte("-----BEGIN INVALID KEY-----\nbm90LWEtcmVhbC1rZXk=\n-----END INVALID KEY-----\n")
	if err := os.WriteFile(invalidKeyFile, invalidPEM, 0600); err != nil {
		log.Fatalf("Failed to write invalid key: %v", err)
	}

	code := m.Run()

	_ = os.Remove(validKeyFile)
	_ = os.Remove(invalidKeyFile)

	os.Exit(code)
}

func writeKeyFile(path string, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}
	return os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), 0600)
}

// signClaims signs arbitrary claims, for building tokens CreateToken never would.
func signClaims(t *testing.T, claims CustomClaims, key *ecdsa.PrivateKey) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func TestCreateToken(t *testing.T) {
	type args struct {
		userID     string
		username   string
		privateKey *ecdsa.PrivateKey
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name:    "Successful token creation for valid user",
			args:    args{userID: uuid.NewString(), username: "testuser123", privateKey: testJwtPrivateKey},
			wantErr: false,
		},
		{
			name:    "Error with nil private key",
			args:    args{userID: uuid.NewString(), username: "someuser", privateKey: nil},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTokenString, err := CreateToken(tt.args.userID, tt.args.username, tt.args.privateKey)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			claims, err := VerifyToken(gotTokenString, &tt.args.privateKey.PublicKey)
			if err != nil {
				t.Fatalf("Failed to verify token: %v", err)
			}

			if claims.UserID != tt.args.userID {
				t.Errorf("Expected UserID to be %s, got %s", tt.args.userID, claims.UserID)
			}
			if claims.Username != tt.args.username {
				t.Errorf("Expected Username to be %s, got %s", tt.args.username, claims.Username)
			}

			now := time.Now()
			if claims.ExpiresAt == nil || claims.ExpiresAt.Before(now.Add(TokenTTL-time.Minute)) || claims.ExpiresAt.After(now.Add(TokenTTL+time.Minute)) {
				t.Errorf("ExpiresAt claim is not within expected range, got %v", claims.ExpiresAt)
			}
			if claims.Issuer != ISSUER {
				t.Errorf("Expected Issuer to be %s, got %s", ISSUER, claims.Issuer)
			}
			if claims.Subject != SUBJECT {
				t.Errorf("Expected Subject to be %s, got %s", SUBJECT, claims.Subject)
			}
			if _, err := uuid.Parse(claims.ID); err != nil {
				t.Errorf("ID (JTI) claim is not a valid UUID: %v", err)
			}
		})
	}
}

func TestVerifyToken(t *testing.T) {
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate second key: %v", err)
	}

	valid, err := CreateToken("user-1", "testuser123", testJwtPrivateKey)
	if err != nil {
		t.Fatalf("Failed to create token for test: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	expired := signClaims(t, CustomClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
			Issuer:    ISSUER,
			Audience:  []string{AUDIENCE},
		},
	}, testJwtPrivateKey)

	wrongIssuer := signClaims(t, CustomClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
			Audience:  []string{AUDIENCE},
		},
	}, testJwtPrivateKey)

	noUser := signClaims(t, CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    ISSUER,
			Audience:  []string{AUDIENCE},
		},
	}, testJwtPrivateKey)

	differentKey, err := CreateToken("user-1", "testuser123", otherKey)
	if err != nil {
		t.Fatalf("Failed to create token for test: %v", err)
	}

	tests := []struct {
		name        string
		tokenString string
		wantErr     bool
	}{
		{name: "Successful token verification with valid token", tokenString: valid, wantErr: false},
		{name: "Error with invalid token format", tokenString: "invalid-token-format", wantErr: true},
		{name: "Error with tampered token", tokenString: valid[:len(valid)-4] + "AAAA", wantErr: true},
		{name: "Error with expired token", tokenString: expired, wantErr: true},
		{name: "Error with wrong issuer", tokenString: wrongIssuer, wantErr: true},
		{name: "Error with token without user id", tokenString: noUser, wantErr: true},
		{name: "Error with token signed by different key", tokenString: differentKey, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims, err := VerifyToken(tt.tokenString, &testJwtPrivateKey.PublicKey)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && gotClaims.UserID != "user-1" {
				t.Errorf("Expected UserID to be 'user-1', got %s", gotClaims.UserID)
			}
		})
	}
}
