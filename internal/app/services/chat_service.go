package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
)

// ChatService defines the interface for community chat. Chat is member only
// regardless of the community's privacy setting.
type ChatService interface {
	SendMessage(ctx context.Context, communityID, userID int64, text string) (*dto.ChatMessageResponse, error)
	GetHistory(ctx context.Context, communityID, viewerID int64, page, pageSize int) (*dto.ChatHistoryResponse, error)
}

type chatStore interface {
	Create(ctx context.Context, message *models.ChatMessage) (int64, error)
	ListByCommunity(ctx context.Context, communityID int64, page, pageSize int) ([]models.ChatMessage, int64, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo       chatStore
	membershipRepo membershipChecker
	logger         zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo chatStore, membershipRepo membershipChecker, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		chatRepo:       chatRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

func (s *chatServiceImpl) requireMembership(ctx context.Context, communityID, userID int64) error {
	isMember, err := s.membershipRepo.IsMember(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrNotAMember
	}
	return nil
}

// SendMessage appends a message to a community's chat room
func (s *chatServiceImpl) SendMessage(ctx context.Context, communityID, userID int64, text string) (*dto.ChatMessageResponse, error) {
	if err := s.requireMembership(ctx, communityID, userID); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		CommunityID: communityID,
		UserID:      userID,
		Body:        text,
	}
	if _, err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	response := toChatMessageResponse(message)
	return &response, nil
}

// GetHistory retrieves a page of a community's chat, newest first
func (s *chatServiceImpl) GetHistory(ctx context.Context, communityID, viewerID int64, page, pageSize int) (*dto.ChatHistoryResponse, error) {
	if err := s.requireMembership(ctx, communityID, viewerID); err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.ListByCommunity(ctx, communityID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, toChatMessageResponse(&message))
	}

	return &dto.ChatHistoryResponse{
		Messages:   responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

func toChatMessageResponse(message *models.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:          message.ID,
		CommunityID: message.CommunityID,
		UserID:      message.UserID,
		Text:        message.Body,
		SentAt:      message.CreatedAt,
	}
}
