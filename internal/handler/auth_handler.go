package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"echo-server/internal/domain"
	"echo-server/internal/middleware"
	"echo-server/internal/service"
	"echo-server/pkg/response"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	validator   *validator.Validate
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Created(w, "Registration successful", map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"nickname": user.Nickname,
		"email":    user.Email,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Username and password required")
		return
	}

	loginResp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Login successful", loginResp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Refresh token required")
		return
	}

	tokenResp, err := h.authService.RefreshToken(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Token refreshed", tokenResp)
}

// Logout is a client-side discard; tokens are stateless and expire on
// their own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", profile)
}

func (h *AuthHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	isAdmin, err := h.authService.RequireAdmin(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", map[string]bool{"is_admin": isAdmin})
}
