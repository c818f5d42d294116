package model

// ChannelProfile is a user's public channel page.
type ChannelProfile struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// ChannelStats backs the creator dashboard.
type ChannelStats struct {
	ChannelID        string `json:"channelId"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalSubscribers int64  `json:"totalSubscribers"`
	TotalLikes       int64  `json:"totalLikes"`
}
