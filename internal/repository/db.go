package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// isDuplicate reports whether err is a MySQL unique-constraint
// violation (error 1062). Storage constraints are the backstop for the
// services' own uniqueness pre-checks.
func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// inClause builds "?, ?, ?" for n values of an IN (...) predicate.
func inClause(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func int64Args(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL,
		nickname VARCHAR(50) NOT NULL DEFAULT '',
		email VARCHAR(120) NOT NULL,
		password_hash VARCHAR(256) NOT NULL,
		bio VARCHAR(200) NOT NULL DEFAULT '',
		avatar VARCHAR(200) NOT NULL DEFAULT 'default_avatar.jpg',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS tweets (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		content VARCHAR(280) NOT NULL,
		image_url VARCHAR(200) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_tweets_created_at (created_at),
		KEY idx_tweets_user_id (user_id),
		CONSTRAINT fk_tweets_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		tweet_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		content VARCHAR(280) NOT NULL,
		created_at DATETIME NOT NULL,
		KEY idx_comments_tweet_id (tweet_id),
		CONSTRAINT fk_comments_tweet FOREIGN KEY (tweet_id) REFERENCES tweets(id) ON DELETE CASCADE,
		CONSTRAINT fk_comments_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		tweet_id BIGINT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY uq_likes_user_tweet (user_id, tweet_id),
		CONSTRAINT fk_likes_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_likes_tweet FOREIGN KEY (tweet_id) REFERENCES tweets(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS followers (
		follower_id BIGINT NOT NULL,
		followed_id BIGINT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (follower_id, followed_id),
		CONSTRAINT fk_followers_follower FOREIGN KEY (follower_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_followers_followed FOREIGN KEY (followed_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		sender_id BIGINT NOT NULL,
		type VARCHAR(20) NOT NULL,
		tweet_id BIGINT NULL,
		comment_id BIGINT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL,
		KEY idx_notifications_user_id (user_id),
		CONSTRAINT fk_notifications_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_notifications_sender FOREIGN KEY (sender_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reporter_id BIGINT NOT NULL,
		reported_user_id BIGINT NULL,
		tweet_id BIGINT NULL,
		comment_id BIGINT NULL,
		type VARCHAR(20) NOT NULL,
		details TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		KEY idx_reports_status (status),
		CONSTRAINT fk_reports_reporter FOREIGN KEY (reporter_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
