package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"echo-server/internal/domain"
)

type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, userID, tweetID int64) error
	Exists(ctx context.Context, userID, tweetID int64) (bool, error)
	ExistsForTweets(ctx context.Context, userID int64, tweetIDs []int64) (map[int64]bool, error)
	CountByTweet(ctx context.Context, tweetID int64) (int64, error)
	CountByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64]int64, error)
}

type likeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	like.CreatedAt = time.Now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (user_id, tweet_id, created_at) VALUES (?, ?, ?)`,
		like.UserID, like.TweetID, like.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert like: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	like.ID = id
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, tweetID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND tweet_id = ?`, userID, tweetID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, tweetID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = ? AND tweet_id = ?)`,
		userID, tweetID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

// ExistsForTweets reports which of the given tweets the user has
// liked, in one query.
func (r *likeRepository) ExistsForTweets(ctx context.Context, userID int64, tweetIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return liked, nil
	}

	args := append([]interface{}{userID}, int64Args(tweetIDs)...)
	rows, err := r.db.QueryContext(ctx,
		`SELECT tweet_id FROM likes WHERE user_id = ? AND tweet_id IN (`+inClause(len(tweetIDs))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("check likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tweetID int64
		if err := rows.Scan(&tweetID); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		liked[tweetID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likes: %w", err)
	}
	return liked, nil
}

func (r *likeRepository) CountByTweet(ctx context.Context, tweetID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE tweet_id = ?`, tweetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// CountByTweetIDs aggregates like counts for the given tweets in one
// query. Tweets with no likes are absent from the result map.
func (r *likeRepository) CountByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT tweet_id, COUNT(*) FROM likes WHERE tweet_id IN (`+inClause(len(tweetIDs))+`) GROUP BY tweet_id`,
		int64Args(tweetIDs)...)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tweetID, count int64
		if err := rows.Scan(&tweetID, &count); err != nil {
			return nil, fmt.Errorf("scan like count: %w", err)
		}
		counts[tweetID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like counts: %w", err)
	}
	return counts, nil
}
