package dto

import "time"

// CreatePostRequest represents the payload for creating a post
type CreatePostRequest struct {
	Text string `json:"text" binding:"required" example:"Meeting moved to 6pm"`
}

// VotePostRequest casts a single vote on a post
type VotePostRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down" example:"up"`
}

// PostResponse represents one post in API output
type PostResponse struct {
	ID          int64     `json:"id"`
	CommunityID int64     `json:"communityId"`
	UserID      int64     `json:"userId"`
	Text        string    `json:"text"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Score       int       `json:"score" example:"3"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PostListResponse wraps a paginated post listing
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}
