package service

import (
	"context"
	"errors"
	"testing"

	"echo-server/internal/domain"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	followRepo := newMockFollowRepo()
	notificationRepo := newMockNotificationRepo()
	svc := NewFollowService(followRepo, userRepo, notificationRepo)

	alice := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	bob := &domain.User{Username: "bob", Email: "b@x.com", PasswordHash: "h"}
	userRepo.Create(ctx, alice)
	userRepo.Create(ctx, bob)

	if err := svc.Follow(ctx, alice.ID, alice.ID); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self follow error = %v, want ErrSelfFollow", err)
	}

	if err := svc.Follow(ctx, alice.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("follow missing user error = %v, want ErrNotFound", err)
	}

	if err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	if err := svc.Follow(ctx, alice.ID, bob.ID); !errors.Is(err, ErrAlreadyFollowing) {
		t.Errorf("repeat follow error = %v, want ErrAlreadyFollowing", err)
	}

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	if err != nil || !following {
		t.Errorf("IsFollowing() = (%v, %v), want (true, nil)", following, err)
	}

	notifications, _ := notificationRepo.ListByUser(ctx, bob.ID, 10, 0)
	if len(notifications) != 1 || notifications[0].Type != domain.NotificationFollow {
		t.Error("follow did not record a follow notification for the followed user")
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	followRepo := newMockFollowRepo()
	svc := NewFollowService(followRepo, userRepo, newMockNotificationRepo())

	alice := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	bob := &domain.User{Username: "bob", Email: "b@x.com", PasswordHash: "h"}
	userRepo.Create(ctx, alice)
	userRepo.Create(ctx, bob)

	if err := svc.Unfollow(ctx, alice.ID, bob.ID); !errors.Is(err, ErrNotFollowing) {
		t.Errorf("Unfollow() without follow error = %v, want ErrNotFollowing", err)
	}

	svc.Follow(ctx, alice.ID, bob.ID)

	if err := svc.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Errorf("Unfollow() error = %v", err)
	}

	following, _ := svc.IsFollowing(ctx, alice.ID, bob.ID)
	if following {
		t.Error("still following after unfollow")
	}
}
