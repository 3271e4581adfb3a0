package domain

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	TweetID   int64     `json:"tweet_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *User     `json:"author,omitempty"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
