package domain

import "time"

type Tweet struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetDetail is a tweet enriched with its author and counters for
// feed and detail responses.
type TweetDetail struct {
	Tweet
	Author       *User `json:"author,omitempty"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	LikedByMe    bool  `json:"liked_by_me"`
}

type CreateTweetRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	ImageURL string `json:"image_url" validate:"omitempty,max=200"`
}
