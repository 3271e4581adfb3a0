package domain

import "time"

const (
	ReportSpam           = "spam"
	ReportHateSpeech     = "hate_speech"
	ReportViolence       = "violence"
	ReportMisinformation = "misinformation"
	ReportOther          = "other"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

type Report struct {
	ID             int64     `json:"id"`
	ReporterID     int64     `json:"reporter_id"`
	ReportedUserID *int64    `json:"reported_user_id,omitempty"`
	TweetID        *int64    `json:"tweet_id,omitempty"`
	CommentID      *int64    `json:"comment_id,omitempty"`
	Type           string    `json:"type"`
	Details        string    `json:"details,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateReportRequest struct {
	ReportedUserID *int64 `json:"reported_user_id"`
	TweetID        *int64 `json:"tweet_id"`
	CommentID      *int64 `json:"comment_id"`
	Type           string `json:"type" validate:"required,oneof=spam hate_speech violence misinformation other"`
	Details        string `json:"details" validate:"omitempty,max=1000"`
}

type UpdateReportRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved"`
}
