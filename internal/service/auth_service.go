package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"
	"unicode/utf8"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
	"echo-server/pkg/hash"
	"echo-server/pkg/jwt"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

type AuthService struct {
	userRepo          repository.UserRepository
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExp, refreshExp time.Duration) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExp,
		refreshExpiration: refreshExp,
	}
}

// ValidateRegistration runs the registration checks in a fixed order
// and returns the first failure, or "" when all pass. Length limits
// count characters, not bytes. It performs no I/O; uniqueness is
// checked separately against the store.
func ValidateRegistration(req *domain.RegisterRequest) string {
	if req.Username == "" {
		return "Missing required field: username"
	}
	if req.Email == "" {
		return "Missing required field: email"
	}
	if req.Password == "" {
		return "Missing required field: password"
	}

	if n := utf8.RuneCountInString(req.Username); n < 3 || n > 20 {
		return "Username must be between 3 and 20 characters"
	}

	if !usernameRegex.MatchString(req.Username) {
		return "Username can only contain letters, numbers, and underscores"
	}

	if req.Nickname != "" && utf8.RuneCountInString(req.Nickname) > 50 {
		return "Nickname cannot exceed 50 characters"
	}

	if !emailRegex.MatchString(req.Email) {
		return "Invalid email format"
	}

	if utf8.RuneCountInString(req.Password) < 6 {
		return "Password must be at least 6 characters"
	}

	if utf8.RuneCountInString(req.Bio) > 200 {
		return "Bio cannot exceed 200 characters"
	}

	return ""
}

// Register creates a new non-admin account. The privilege flag is not
// settable through this path.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if msg := ValidateRegistration(req); msg != "" {
		return nil, &ValidationError{Message: msg}
	}

	usernameExists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if usernameExists {
		return nil, ErrUsernameTaken
	}

	emailExists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailExists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := hash.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &domain.User{
		Username:     req.Username,
		Nickname:     nickname,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Bio:          req.Bio,
		Avatar:       domain.DefaultAvatar,
		IsAdmin:      false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraints are the backstop for the pre-checks
		// above; a race between them lands here.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates by username or email and issues an access and
// refresh token pair. All credential failures collapse into
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.userRepo.FindByEmail(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("login failed: unknown account")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash == "" {
		log.Printf("login failed: user %d has no credential hash", user.ID)
		return nil, ErrCorruptedAccount
	}

	if !hash.Verify(req.Password, user.PasswordHash) {
		log.Printf("login failed: verification failed for user %d", user.ID)
		return nil, ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateToken(user.ID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, s.refreshExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtExpiration.Seconds()),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (s *AuthService) RefreshToken(req *domain.RefreshTokenRequest) (*domain.TokenResponse, error) {
	claims, err := jwt.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	accessToken, err := jwt.GenerateToken(userID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtExpiration.Seconds()),
	}, nil
}

// RequireAdmin loads the identity behind id and returns its stored
// privilege flag. A missing identity is ErrNotFound, which means the
// token outlived the account.
func (s *AuthService) RequireAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return user.IsAdmin, nil
}
