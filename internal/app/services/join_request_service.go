package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

// JoinRequestService defines the interface for the private-community join
// request flow
type JoinRequestService interface {
	RequestToJoin(ctx context.Context, communityID, userID int64, message string) (*dto.JoinRequestResponse, error)
	ListPending(ctx context.Context, communityID, reviewerID int64) ([]dto.JoinRequestResponse, error)
	Review(ctx context.Context, requestID, reviewerID int64, approve bool) (*dto.JoinRequestResponse, error)
}

type joinRequestStore interface {
	Create(ctx context.Context, request *models.JoinRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.JoinRequest, error)
	ListPendingByCommunity(ctx context.Context, communityID int64) ([]models.JoinRequest, error)
	Resolve(ctx context.Context, id int64, status models.JoinRequestStatus, reviewerID int64) error
}

// joinRequestServiceImpl implements JoinRequestService
type joinRequestServiceImpl struct {
	joinRequestRepo joinRequestStore
	communityRepo   communityGetter
	membershipRepo  membershipChecker
	memberships     MembershipService
	notifications   NotificationService
	logger          zerolog.Logger
}

// NewJoinRequestService creates a new JoinRequestService
func NewJoinRequestService(
	joinRequestRepo joinRequestStore,
	communityRepo communityGetter,
	membershipRepo membershipChecker,
	memberships MembershipService,
	notifications NotificationService,
	logger zerolog.Logger,
) JoinRequestService {
	return &joinRequestServiceImpl{
		joinRequestRepo: joinRequestRepo,
		communityRepo:   communityRepo,
		membershipRepo:  membershipRepo,
		memberships:     memberships,
		notifications:   notifications,
		logger:          logger,
	}
}

// RequestToJoin files a pending join request against a private community
func (s *joinRequestServiceImpl) RequestToJoin(ctx context.Context, communityID, userID int64, message string) (*dto.JoinRequestResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	switch community.PrivacySetting {
	case models.CommunityPrivate:
		// request flow applies
	case models.CommunityPublic:
		return nil, apperrors.NewBadRequestError("This community is public, join it directly")
	default:
		return nil, apperrors.NewForbiddenError("This community is invite only")
	}

	isMember, err := s.membershipRepo.IsMember(ctx, communityID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	request := &models.JoinRequest{
		CommunityID: communityID,
		UserID:      userID,
		Message:     message,
	}
	id, err := s.joinRequestRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	created, err := s.joinRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestId", id).
		Int64("communityId", communityID).
		Int64("userId", userID).
		Msg("Join request filed")

	response := toJoinRequestResponse(created)
	return &response, nil
}

// ListPending retrieves a community's open requests. Only members may review
// the queue.
func (s *joinRequestServiceImpl) ListPending(ctx context.Context, communityID, reviewerID int64) ([]dto.JoinRequestResponse, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}

	isMember, err := s.membershipRepo.IsMember(ctx, communityID, reviewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.NewForbiddenError("Only community members can review join requests")
	}

	requests, err := s.joinRequestRepo.ListPendingByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JoinRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toJoinRequestResponse(&request))
	}
	return responses, nil
}

// Review approves or rejects a pending request. Approval enrolls the
// requester; a full community leaves the request pending so it can be retried
// once space frees up.
func (s *joinRequestServiceImpl) Review(ctx context.Context, requestID, reviewerID int64, approve bool) (*dto.JoinRequestResponse, error) {
	request, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.membershipRepo.IsMember(ctx, request.CommunityID, reviewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.NewForbiddenError("Only community members can review join requests")
	}
	if request.Status != models.JoinRequestPending {
		return nil, apperrors.ErrRequestAlreadyClosed
	}

	status := models.JoinRequestRejected
	notification := models.NotificationJoinRejected
	if approve {
		status = models.JoinRequestApproved
		notification = models.NotificationJoinApproved

		err := s.memberships.JoinApproved(ctx, request.CommunityID, request.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrAlreadyMember) {
			return nil, err
		}
	}

	if err := s.joinRequestRepo.Resolve(ctx, requestID, status, reviewerID); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, request.UserID, notification, map[string]any{
		"communityId": request.CommunityID,
		"requestId":   request.ID,
	})

	s.logger.Info().
		Int64("requestId", requestID).
		Int64("reviewerId", reviewerID).
		Bool("approved", approve).
		Msg("Join request reviewed")

	resolved, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	response := toJoinRequestResponse(resolved)
	return &response, nil
}

func toJoinRequestResponse(request *models.JoinRequest) dto.JoinRequestResponse {
	return dto.JoinRequestResponse{
		ID:          request.ID,
		CommunityID: request.CommunityID,
		UserID:      request.UserID,
		Message:     request.Message,
		Status:      string(request.Status),
		ReviewedBy:  request.ReviewedBy,
		CreatedAt:   request.CreatedAt,
		ResolvedAt:  request.ReviewedAt,
	}
}
