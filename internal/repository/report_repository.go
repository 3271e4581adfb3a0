package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"echo-server/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	FindByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context, status string, limit, offset int) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	report.CreatedAt = time.Now()
	if report.Status == "" {
		report.Status = domain.ReportStatusPending
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (reporter_id, reported_user_id, tweet_id, comment_id, type, details, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ReporterID, report.ReportedUserID, report.TweetID, report.CommentID,
		report.Type, report.Details, report.Status, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	report.ID = id
	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id int64) (*domain.Report, error) {
	report := &domain.Report{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reporter_id, reported_user_id, tweet_id, comment_id, type, details, status, created_at
		 FROM reports WHERE id = ?`, id).
		Scan(&report.ID, &report.ReporterID, &report.ReportedUserID, &report.TweetID,
			&report.CommentID, &report.Type, &report.Details, &report.Status, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

func (r *reportRepository) List(ctx context.Context, status string, limit, offset int) ([]*domain.Report, error) {
	query := `SELECT id, reporter_id, reported_user_id, tweet_id, comment_id, type, details, status, created_at
	          FROM reports`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.Report{}
	for rows.Next() {
		report := &domain.Report{}
		if err := rows.Scan(&report.ID, &report.ReporterID, &report.ReportedUserID,
			&report.TweetID, &report.CommentID, &report.Type, &report.Details,
			&report.Status, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reports SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// The driver reports changed rows, not matched rows, so setting a
	// report to its current status also lands here. That is a no-op,
	// not a missing record.
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reports WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
