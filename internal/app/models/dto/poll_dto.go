package dto

import "time"

// CreatePollRequest represents the payload for creating a poll
type CreatePollRequest struct {
	Question           string     `json:"question" binding:"required"`
	Options            []string   `json:"options" binding:"required,min=2"`
	AllowMultipleVotes bool       `json:"allowMultipleVotes"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
}

// VotePollRequest casts a vote for one or more option indexes
type VotePollRequest struct {
	SelectedOptions []int `json:"selectedOptions" binding:"required,min=1"`
}

// PollOptionTally is the vote count and share for one option
type PollOptionTally struct {
	Index      int     `json:"index"`
	Option     string  `json:"option"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage" example:"37.5"`
}

// PollResponse represents one poll in API output
type PollResponse struct {
	ID                 int64      `json:"id"`
	CommunityID        int64      `json:"communityId"`
	Question           string     `json:"question"`
	Options            []string   `json:"options"`
	AllowMultipleVotes bool       `json:"allowMultipleVotes"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	Expired            bool       `json:"expired"`
	CreatedBy          int64      `json:"createdBy"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// PollResultsResponse reports the tallied results of a poll
type PollResultsResponse struct {
	PollID     int64             `json:"pollId"`
	Question   string            `json:"question"`
	TotalVotes int               `json:"totalVotes"`
	Results    []PollOptionTally `json:"results"`
}
