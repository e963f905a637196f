package dto

import "time"

// CreateCommunityRequest represents the payload for creating a community
type CreateCommunityRequest struct {
	Name           string   `json:"name" binding:"required" example:"Robotics Club"`
	ParentID       *int64   `json:"parentId,omitempty"`
	Description    string   `json:"description"`
	PrivacySetting string   `json:"privacySetting" binding:"required,oneof=PUBLIC PRIVATE RESTRICTED"`
	Rules          string   `json:"rules,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	MaxMembers     *int     `json:"maxMembers,omitempty"`
}

// UpdateCommunityRequest represents the payload for updating a community
type UpdateCommunityRequest struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	PrivacySetting *string   `json:"privacySetting,omitempty" binding:"omitempty,oneof=PUBLIC PRIVATE RESTRICTED"`
	Rules          *string   `json:"rules,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	MaxMembers     *int      `json:"maxMembers,omitempty"`
}

// CommunityView is a list-level summary of a community
type CommunityView struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	ParentID       *int64   `json:"parentId,omitempty"`
	Description    string   `json:"description"`
	PrivacySetting string   `json:"privacySetting" example:"PUBLIC"`
	Tags           []string `json:"tags,omitempty"`
	MemberCount    int      `json:"memberCount"`
	PostCount      int      `json:"postCount"`
	IsMember       bool     `json:"isMember"`
}

// CommunityListResponse wraps a paginated community listing
type CommunityListResponse struct {
	Communities []CommunityView `json:"communities"`
	Pagination  PaginationInfo  `json:"pagination"`
}

// CommunityDetailResponse is the full view of a single community
type CommunityDetailResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	ParentID          *int64    `json:"parentId,omitempty"`
	Description       string    `json:"description"`
	PrivacySetting    string    `json:"privacySetting"`
	Rules             string    `json:"rules,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	MaxMembers        *int      `json:"maxMembers,omitempty"`
	MemberCount       int       `json:"memberCount"`
	MemberIDs         []int64   `json:"memberIds"`
	PostCount         int       `json:"postCount"`
	PollCount         int       `json:"pollCount"`
	EventCount        int       `json:"eventCount"`
	AnnouncementCount int       `json:"announcementCount"`
	IsMember          bool      `json:"isMember"`
	CreatedBy         int64     `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
}

// JoinRequestResponse represents one pending or resolved join request
type JoinRequestResponse struct {
	ID          int64      `json:"id"`
	CommunityID int64      `json:"communityId"`
	UserID      int64      `json:"userId"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status" example:"PENDING"`
	ReviewedBy  *int64     `json:"reviewedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// CreateJoinRequestRequest represents the payload for requesting to join a
// private community
type CreateJoinRequestRequest struct {
	Message string `json:"message,omitempty"`
}

// ReviewJoinRequestRequest approves or rejects a pending join request
type ReviewJoinRequestRequest struct {
	Approve bool `json:"approve"`
}
