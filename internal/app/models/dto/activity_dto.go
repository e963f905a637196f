package dto

import "time"

// CreateEventRequest represents the payload for scheduling an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
}

// EventResponse represents one event in API output
type EventResponse struct {
	ID          int64     `json:"id"`
	CommunityID int64     `json:"communityId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateAnnouncementRequest represents the payload for posting an announcement
type CreateAnnouncementRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Pinned bool   `json:"pinned"`
}

// AnnouncementResponse represents one announcement in API output
type AnnouncementResponse struct {
	ID          int64     `json:"id"`
	CommunityID int64     `json:"communityId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Pinned      bool      `json:"pinned"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SendChatMessageRequest represents the payload for a chat message
type SendChatMessageRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// ChatMessageResponse represents one chat message in API output
type ChatMessageResponse struct {
	ID          int64     `json:"id"`
	CommunityID int64     `json:"communityId"`
	UserID      int64     `json:"userId"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sentAt"`
}

// ChatHistoryResponse wraps a paginated chat history window
type ChatHistoryResponse struct {
	Messages   []ChatMessageResponse `json:"messages"`
	Pagination PaginationInfo        `json:"pagination"`
}

// NotificationResponse represents one notification in API output
type NotificationResponse struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type" example:"JOIN_REQUEST_APPROVED"`
	Payload   map[string]any `json:"payload,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}
