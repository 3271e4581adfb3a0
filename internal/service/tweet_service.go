package service

import (
	"context"
	"errors"
	"fmt"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
)

type TweetService struct {
	tweetRepo        repository.TweetRepository
	userRepo         repository.UserRepository
	likeRepo         repository.LikeRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	notificationRepo repository.NotificationRepository,
) *TweetService {
	return &TweetService{
		tweetRepo:        tweetRepo,
		userRepo:         userRepo,
		likeRepo:         likeRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *TweetService) Create(ctx context.Context, userID int64, req *domain.CreateTweetRequest) (*domain.Tweet, error) {
	tweet := &domain.Tweet{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	return tweet, nil
}

func (s *TweetService) Get(ctx context.Context, tweetID, viewerID int64) (*domain.TweetDetail, error) {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up tweet: %w", err)
	}

	return s.enrich(ctx, tweet, viewerID)
}

// Feed returns tweets in reverse chronological order. There is no
// ranking.
func (s *TweetService) Feed(ctx context.Context, viewerID int64, limit, offset int) ([]*domain.TweetDetail, error) {
	tweets, err := s.tweetRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return s.enrichAll(ctx, tweets, viewerID)
}

func (s *TweetService) ListByUser(ctx context.Context, userID, viewerID int64, limit, offset int) ([]*domain.TweetDetail, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	tweets, err := s.tweetRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	return s.enrichAll(ctx, tweets, viewerID)
}

// Delete removes a tweet. Only the author or an admin may delete.
func (s *TweetService) Delete(ctx context.Context, tweetID, actorID int64) error {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up tweet: %w", err)
	}

	if tweet.UserID != actorID {
		actor, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}
		if !actor.IsAdmin {
			return ErrForbidden
		}
	}

	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	return nil
}

func (s *TweetService) Like(ctx context.Context, userID, tweetID int64) error {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up tweet: %w", err)
	}

	like := &domain.Like{UserID: userID, TweetID: tweetID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	if tweet.UserID != userID {
		notification := &domain.Notification{
			UserID:   tweet.UserID,
			SenderID: userID,
			Type:     domain.NotificationLike,
			TweetID:  &tweet.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
	}

	return nil
}

func (s *TweetService) Unlike(ctx context.Context, userID, tweetID int64) error {
	if err := s.likeRepo.Delete(ctx, userID, tweetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotLiked
		}
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

// enrichAll attaches authors, counters and the viewer's like state to
// a page of tweets with one query per concern instead of one per
// tweet.
func (s *TweetService) enrichAll(ctx context.Context, tweets []*domain.Tweet, viewerID int64) ([]*domain.TweetDetail, error) {
	details := make([]*domain.TweetDetail, 0, len(tweets))
	if len(tweets) == 0 {
		return details, nil
	}

	tweetIDs := make([]int64, 0, len(tweets))
	authorIDs := make([]int64, 0, len(tweets))
	seen := make(map[int64]bool, len(tweets))
	for _, tweet := range tweets {
		tweetIDs = append(tweetIDs, tweet.ID)
		if !seen[tweet.UserID] {
			seen[tweet.UserID] = true
			authorIDs = append(authorIDs, tweet.UserID)
		}
	}

	authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up authors: %w", err)
	}

	likeCounts, err := s.likeRepo.CountByTweetIDs(ctx, tweetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	commentCounts, err := s.commentRepo.CountByTweetIDs(ctx, tweetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	liked := map[int64]bool{}
	if viewerID > 0 {
		liked, err = s.likeRepo.ExistsForTweets(ctx, viewerID, tweetIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to check likes: %w", err)
		}
	}

	for _, tweet := range tweets {
		details = append(details, &domain.TweetDetail{
			Tweet:        *tweet,
			Author:       authors[tweet.UserID],
			LikeCount:    likeCounts[tweet.ID],
			CommentCount: commentCounts[tweet.ID],
			LikedByMe:    liked[tweet.ID],
		})
	}
	return details, nil
}

func (s *TweetService) enrich(ctx context.Context, tweet *domain.Tweet, viewerID int64) (*domain.TweetDetail, error) {
	author, err := s.userRepo.FindByID(ctx, tweet.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	likeCount, err := s.likeRepo.CountByTweet(ctx, tweet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	commentCount, err := s.commentRepo.CountByTweet(ctx, tweet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	likedByMe := false
	if viewerID > 0 {
		likedByMe, err = s.likeRepo.Exists(ctx, viewerID, tweet.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like: %w", err)
		}
	}

	return &domain.TweetDetail{
		Tweet:        *tweet,
		Author:       author,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		LikedByMe:    likedByMe,
	}, nil
}
