package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"echo-server/internal/domain"
	"echo-server/internal/middleware"
	"echo-server/internal/service"
	"echo-server/pkg/response"
)

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
	uploadDir   string
	maxSizeMB   int
}

func NewUserHandler(userService *service.UserService, uploadDir string, maxSizeMB int) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		uploadDir:   uploadDir,
		maxSizeMB:   maxSizeMB,
	}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", profile)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Profile updated", user)
}

// UploadAvatar accepts a multipart form with an "avatar" file. The
// stored name is a fresh uuid plus the original extension, so client
// names never reach the filesystem.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	maxBytes := int64(h.maxSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		response.BadRequest(w, "Invalid upload, or file too large")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Missing avatar file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAvatarExts[ext] {
		response.BadRequest(w, "Unsupported image format")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondServiceError(w, err)
		return
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		respondServiceError(w, err)
		return
	}

	user, err := h.userService.UpdateAvatar(r.Context(), userID, filename)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Avatar updated", user)
}
