package service

import (
	"context"
	"errors"
	"fmt"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
)

type CommentService struct {
	commentRepo      repository.CommentRepository
	tweetRepo        repository.TweetRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		tweetRepo:        tweetRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *CommentService) Create(ctx context.Context, userID, tweetID int64, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up tweet: %w", err)
	}

	comment := &domain.Comment{
		TweetID: tweetID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if tweet.UserID != userID {
		notification := &domain.Notification{
			UserID:    tweet.UserID,
			SenderID:  userID,
			Type:      domain.NotificationComment,
			TweetID:   &tweet.ID,
			CommentID: &comment.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to create notification: %w", err)
		}
	}

	return comment, nil
}

func (s *CommentService) ListByTweet(ctx context.Context, tweetID int64, limit, offset int) ([]*domain.Comment, error) {
	if _, err := s.tweetRepo.FindByID(ctx, tweetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up tweet: %w", err)
	}

	comments, err := s.commentRepo.ListByTweet(ctx, tweetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	for _, comment := range comments {
		author, err := s.userRepo.FindByID(ctx, comment.UserID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up author: %w", err)
		}
		comment.Author = author
	}

	return comments, nil
}

// Delete removes a comment. The comment author, the tweet author and
// admins are allowed.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID int64) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up comment: %w", err)
	}

	allowed := comment.UserID == actorID

	if !allowed {
		tweet, err := s.tweetRepo.FindByID(ctx, comment.TweetID)
		if err == nil && tweet.UserID == actorID {
			allowed = true
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to look up tweet: %w", err)
		}
	}

	if !allowed {
		actor, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}
		allowed = actor.IsAdmin
	}

	if !allowed {
		return ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
