package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"echo-server/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTweet(ctx context.Context, tweetID int64, limit, offset int) ([]*domain.Comment, error)
	CountByTweet(ctx context.Context, tweetID int64) (int64, error)
	CountByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64]int64, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comment.CreatedAt = time.Now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (tweet_id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		comment.TweetID, comment.UserID, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	comment.ID = id
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	c := &domain.Comment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tweet_id, user_id, content, created_at FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.TweetID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

func (r *commentRepository) ListByTweet(ctx context.Context, tweetID int64, limit, offset int) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tweet_id, user_id, content, created_at FROM comments
		 WHERE tweet_id = ? ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
		tweetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.TweetID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) CountByTweet(ctx context.Context, tweetID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE tweet_id = ?`, tweetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// CountByTweetIDs aggregates comment counts for the given tweets in
// one query. Tweets with no comments are absent from the result map.
func (r *commentRepository) CountByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT tweet_id, COUNT(*) FROM comments WHERE tweet_id IN (`+inClause(len(tweetIDs))+`) GROUP BY tweet_id`,
		int64Args(tweetIDs)...)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tweetID, count int64
		if err := rows.Scan(&tweetID, &count); err != nil {
			return nil, fmt.Errorf("scan comment count: %w", err)
		}
		counts[tweetID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment counts: %w", err)
	}
	return counts, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
