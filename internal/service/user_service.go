package service

import (
	"context"
	"errors"
	"fmt"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
	"echo-server/pkg/hash"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	followers, err := s.followRepo.FollowerCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	following, err := s.followRepo.FollowingCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	return &domain.Profile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// UpdateProfile applies nickname, bio and optional credential changes.
// A password change requires the current password to verify first, and
// can never touch the privilege flag.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if req.Nickname != nil {
		nickname := *req.Nickname
		if nickname == "" {
			nickname = user.Username
		}
		user.Nickname = nickname
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if req.NewPassword != "" {
		if user.PasswordHash == "" {
			return nil, ErrCorruptedAccount
		}
		if !hash.Verify(req.CurrentPassword, user.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
		hashed, err := hash.Hash(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, filename string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user.Avatar = filename

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
