package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		expiration time.Duration
		secret     string
	}{
		{
			name:       "valid token generation",
			userID:     123,
			expiration: 1 * time.Hour,
			secret:     "test-secret-key-32-characters!",
		},
		{
			name:       "short expiration",
			userID:     456,
			expiration: 1 * time.Second,
			secret:     "test-secret",
		},
		{
			name:       "long expiration",
			userID:     789,
			expiration: 30 * 24 * time.Hour,
			secret:     "test-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.expiration, tt.secret)
			if err != nil {
				t.Errorf("GenerateToken() error = %v", err)
				return
			}

			if token == "" {
				t.Error("GenerateToken() returned empty token")
			}

			if len(token) < 100 {
				t.Errorf("GenerateToken() token too short, len = %d", len(token))
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "round-trip-secret-key"

	for _, userID := range []int64{1, 42, 999999, 9007199254740993} {
		token, err := GenerateToken(userID, 1*time.Hour, secret)
		if err != nil {
			t.Fatalf("GenerateToken(%d) error = %v", userID, err)
		}

		claims, err := ValidateToken(token, secret)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}

		id, err := claims.UserID()
		if err != nil {
			t.Fatalf("UserID() error = %v", err)
		}

		if id != userID {
			t.Errorf("UserID() = %d, want %d", id, userID)
		}

		if claims.TokenType != TokenTypeAccess {
			t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeAccess)
		}
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	secret := "refresh-secret-key"

	token, err := GenerateRefreshToken(77, 30*24*time.Hour, secret)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeRefresh)
	}

	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if id != 77 {
		t.Errorf("UserID() = %d, want 77", id)
	}
}

func TestValidateToken(t *testing.T) {
	secret := "validation-secret-key-32-chars"

	validToken, _ := GenerateToken(15, 1*time.Hour, secret)
	expiredToken, _ := GenerateToken(15, -1*time.Hour, secret)

	// Flip a character inside the signature segment.
	tampered := validToken[:len(validToken)-2]
	if strings.HasSuffix(validToken, "a") {
		tampered += "bb"
	} else {
		tampered += "aa"
	}

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   validToken,
			secret:  secret,
			wantErr: false,
		},
		{
			name:    "expired token",
			token:   expiredToken,
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   validToken,
			secret:  "wrong-secret",
			wantErr: true,
		},
		{
			name:    "tampered signature",
			token:   tampered,
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "invalid token format",
			token:   "invalid.token.format",
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			secret:  secret,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr {
				if err == nil {
					t.Error("ValidateToken() expected error but got none")
					return
				}
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateToken() error = %v", err)
				return
			}

			if claims == nil {
				t.Error("ValidateToken() returned nil claims")
			}
		})
	}
}

func TestClaimsUserID(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    int64
		wantErr bool
	}{
		{
			name:    "plain numeric subject",
			subject: "42",
			want:    42,
		},
		{
			name:    "empty subject",
			subject: "",
			wantErr: true,
		},
		{
			name:    "non-numeric subject",
			subject: "alice",
			wantErr: true,
		},
		{
			name:    "mixed subject",
			subject: "42abc",
			wantErr: true,
		},
		{
			name:    "negative subject",
			subject: "-42",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{}
			claims.Subject = tt.subject

			id, err := claims.UserID()

			if tt.wantErr {
				if err == nil {
					t.Error("UserID() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("UserID() error = %v", err)
				return
			}

			if id != tt.want {
				t.Errorf("UserID() = %d, want %d", id, tt.want)
			}
		})
	}
}

func TestTokenExpiration(t *testing.T) {
	secret := "expiration-test-secret"

	token, err := GenerateToken(5, 1*time.Second, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token, secret); err != nil {
		t.Fatalf("ValidateToken() immediate validation error = %v", err)
	}

	time.Sleep(2 * time.Second)

	if _, err := ValidateToken(token, secret); err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}
