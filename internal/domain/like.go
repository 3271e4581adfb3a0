package domain

import "time"

// Like records one user liking one tweet. The (user, tweet) pair is
// unique at the storage layer.
type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TweetID   int64     `json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
}
