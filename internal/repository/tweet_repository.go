package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"echo-server/internal/domain"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	FindByID(ctx context.Context, id int64) (*domain.Tweet, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Tweet, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Tweet, error)
	Delete(ctx context.Context, id int64) error
}

type tweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) TweetRepository {
	return &tweetRepository{db: db}
}

const tweetColumns = `id, user_id, content, image_url, created_at, updated_at`

func scanTweet(row interface{ Scan(...interface{}) error }) (*domain.Tweet, error) {
	t := &domain.Tweet{}
	err := row.Scan(&t.ID, &t.UserID, &t.Content, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan tweet: %w", err)
	}
	return t, nil
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	now := time.Now()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tweets (user_id, content, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		tweet.UserID, tweet.Content, tweet.ImageURL, tweet.CreatedAt, tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tweet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert tweet: %w", err)
	}
	tweet.ID = id
	return nil
}

func (r *tweetRepository) FindByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE id = ?`, id)
	return scanTweet(row)
}

func (r *tweetRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tweet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tweetColumns+` FROM tweets ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer rows.Close()

	return collectTweets(rows)
}

func (r *tweetRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Tweet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tweets by user: %w", err)
	}
	defer rows.Close()

	return collectTweets(rows)
}

func collectTweets(rows *sql.Rows) ([]*domain.Tweet, error) {
	tweets := []*domain.Tweet{}
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	return tweets, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tweets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
