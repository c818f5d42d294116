package model

import "time"

type Comment struct {
	ID         string       `json:"id"`
	VideoID    string       `json:"videoId"`
	OwnerID    string       `json:"-"`
	Owner      *UserSummary `json:"owner,omitempty"`
	Content    string       `json:"content"`
	LikesCount int64        `json:"likesCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
