package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"echo-server/pkg/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	secret := "middleware-test-secret"

	validToken, _ := jwt.GenerateToken(42, time.Hour, secret)
	expiredToken, _ := jwt.GenerateToken(42, -time.Hour, secret)
	refreshToken, _ := jwt.GenerateRefreshToken(42, time.Hour, secret)
	wrongSecretToken, _ := jwt.GenerateToken(42, time.Hour, "another-secret")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "scheme without token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected on protected route",
			authHeader: "Bearer " + refreshToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret",
			authHeader: "Bearer " + wrongSecretToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var called bool

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(secret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if !called {
					t.Error("wrapped handler was not invoked")
				}
				if gotUserID != tt.wantUserID {
					t.Errorf("resolved user id = %d, want %d", gotUserID, tt.wantUserID)
				}
			} else if called {
				t.Error("wrapped handler was invoked despite rejection")
			}
		})
	}
}

func TestGetUserIDWithoutGate(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := GetUserID(req); id != 0 {
		t.Errorf("GetUserID() = %d, want 0 for ungated request", id)
	}
}
