package model

import "time"

type Playlist struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"-"`
	Owner       *UserSummary `json:"owner,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	VideosCount int64        `json:"videosCount"`
	Videos      []*Video     `json:"videos,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
