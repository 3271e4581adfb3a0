package service

import (
	"context"
	"errors"
	"fmt"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
)

type FollowService struct {
	followRepo       repository.FollowRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *FollowService {
	return &FollowService{
		followRepo:       followRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	if _, err := s.userRepo.FindByID(ctx, followedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.followRepo.Follow(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to follow: %w", err)
	}

	notification := &domain.Notification{
		UserID:   followedID,
		SenderID: followerID,
		Type:     domain.NotificationFollow,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if err := s.followRepo.Unfollow(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	return nil
}

func (s *FollowService) Followers(ctx context.Context, userID int64, limit, offset int) ([]*domain.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	users, err := s.followRepo.Followers(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

func (s *FollowService) Following(ctx context.Context, userID int64, limit, offset int) ([]*domain.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	users, err := s.followRepo.Following(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	following, err := s.followRepo.IsFollowing(ctx, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return following, nil
}
