package models

import "time"

// JoinRequest represents a pending membership request for a private
// community. Approved and rejected are terminal states.
type JoinRequest struct {
	ID          int64             `json:"id" db:"id"`
	CommunityID int64             `json:"communityId" db:"community_id"`
	UserID      int64             `json:"userId" db:"user_id"`
	Message     string            `json:"message,omitempty" db:"message"`
	Status      JoinRequestStatus `json:"status" db:"status"`
	ReviewedBy  *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt  *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
}
