package model

import "time"

type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriberId"`
	ChannelID    string    `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubscriptionToggle is the outcome of toggling a subscription.
type SubscriptionToggle struct {
	ChannelID  string `json:"channelId"`
	Subscribed bool   `json:"subscribed"`
}

// SubscriptionEntry is one row of a subscriber or subscribed-channel listing.
type SubscriptionEntry struct {
	User         UserSummary `json:"user"`
	SubscribedAt time.Time   `json:"subscribedAt"`
}
