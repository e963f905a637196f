package models

import "time"

// Poll represents a community poll. When AllowMultipleVotes is false a user
// has at most one vote row; a new vote replaces the previous one.
type Poll struct {
	ID                 int64      `json:"id" db:"id"`
	CommunityID        int64      `json:"communityId" db:"community_id"`
	Question           string     `json:"question" db:"question"`
	Options            []string   `json:"options" db:"options"`
	AllowMultipleVotes bool       `json:"allowMultipleVotes" db:"allow_multiple_votes"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedBy          int64      `json:"createdBy" db:"created_by"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
}

// Expired reports whether the poll no longer accepts votes at the given time.
func (p *Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// PollVote represents a single vote row. SelectedOptions holds option indexes
// into Poll.Options.
type PollVote struct {
	ID              int64     `json:"id" db:"id"`
	PollID          int64     `json:"pollId" db:"poll_id"`
	UserID          int64     `json:"userId" db:"user_id"`
	SelectedOptions []int     `json:"selectedOptions" db:"selected_options"`
	VotedAt         time.Time `json:"votedAt" db:"voted_at"`
}
