package model

// LikeTarget names the kind of resource a like points at.
type LikeTarget string

const (
	LikeVideo   LikeTarget = "video"
	LikeComment LikeTarget = "comment"
	LikeTweet   LikeTarget = "tweet"
)

// Column is the likes column that references the target.
func (t LikeTarget) Column() string {
	switch t {
	case LikeVideo:
		return "video_id"
	case LikeComment:
		return "comment_id"
	case LikeTweet:
		return "tweet_id"
	}
	return ""
}

// LikeToggle is the outcome of toggling a like.
type LikeToggle struct {
	Target   LikeTarget `json:"target"`
	TargetID string     `json:"targetId"`
	Liked    bool       `json:"liked"`
}
