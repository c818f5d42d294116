package model

import "time"

type Video struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"-"`
	Owner       *UserSummary `json:"owner,omitempty"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	LikesCount  int64        `json:"likesCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// VideoFilter drives the public video listing.
type VideoFilter struct {
	Query    string
	OwnerID  string
	ViewerID string
	SortBy   string
	SortDesc bool
	PageQuery
}
