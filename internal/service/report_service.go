package service

import (
	"context"
	"errors"
	"fmt"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
)

type ReportService struct {
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	tweetRepo   repository.TweetRepository
	commentRepo repository.CommentRepository
}

func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	tweetRepo repository.TweetRepository,
	commentRepo repository.CommentRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		tweetRepo:   tweetRepo,
		commentRepo: commentRepo,
	}
}

// Create files a report against a user, a tweet or a comment. At least
// one target is required and every referenced target must exist.
func (s *ReportService) Create(ctx context.Context, reporterID int64, req *domain.CreateReportRequest) (*domain.Report, error) {
	if req.ReportedUserID == nil && req.TweetID == nil && req.CommentID == nil {
		return nil, &ValidationError{Message: "A report must target a user, tweet, or comment"}
	}

	if req.ReportedUserID != nil {
		if _, err := s.userRepo.FindByID(ctx, *req.ReportedUserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to look up reported user: %w", err)
		}
	}

	if req.TweetID != nil {
		if _, err := s.tweetRepo.FindByID(ctx, *req.TweetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to look up reported tweet: %w", err)
		}
	}

	if req.CommentID != nil {
		if _, err := s.commentRepo.FindByID(ctx, *req.CommentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to look up reported comment: %w", err)
		}
	}

	report := &domain.Report{
		ReporterID:     reporterID,
		ReportedUserID: req.ReportedUserID,
		TweetID:        req.TweetID,
		CommentID:      req.CommentID,
		Type:           req.Type,
		Details:        req.Details,
		Status:         domain.ReportStatusPending,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// List is restricted to admins by the route middleware.
func (s *ReportService) List(ctx context.Context, status string, limit, offset int) ([]*domain.Report, error) {
	reports, err := s.reportRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *ReportService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Report, error) {
	if err := s.reportRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return report, nil
}
