package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

// ActivityService defines the interface for community events and
// announcements
type ActivityService interface {
	CreateEvent(ctx context.Context, communityID, userID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	ListUpcomingEvents(ctx context.Context, communityID, viewerID int64) ([]dto.EventResponse, error)
	CreateAnnouncement(ctx context.Context, communityID, userID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	ListAnnouncements(ctx context.Context, communityID, viewerID int64) ([]dto.AnnouncementResponse, error)
}

type eventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListUpcomingByCommunity(ctx context.Context, communityID int64, after time.Time) ([]models.Event, error)
}

type announcementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) (int64, error)
	ListByCommunity(ctx context.Context, communityID int64) ([]models.Announcement, error)
}

type memberLister interface {
	IsMember(ctx context.Context, communityID, userID int64) (bool, error)
	ListMemberIDs(ctx context.Context, communityID int64) ([]int64, error)
}

// activityServiceImpl implements ActivityService
type activityServiceImpl struct {
	eventRepo        eventStore
	announcementRepo announcementStore
	membershipRepo   memberLister
	communityRepo    communityGetter
	notifications    NotificationService
	logger           zerolog.Logger
	now              func() time.Time
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	eventRepo eventStore,
	announcementRepo announcementStore,
	membershipRepo memberLister,
	communityRepo communityGetter,
	notifications NotificationService,
	logger zerolog.Logger,
) ActivityService {
	return &activityServiceImpl{
		eventRepo:        eventRepo,
		announcementRepo: announcementRepo,
		membershipRepo:   membershipRepo,
		communityRepo:    communityRepo,
		notifications:    notifications,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *activityServiceImpl) requireMembership(ctx context.Context, communityID, userID int64) error {
	isMember, err := s.membershipRepo.IsMember(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrNotAMember
	}
	return nil
}

func (s *activityServiceImpl) requireReadAccess(ctx context.Context, communityID, userID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.PrivacySetting == models.CommunityPublic {
		return nil
	}
	return s.requireMembership(ctx, communityID, userID)
}

// CreateEvent schedules an event on behalf of a member
func (s *activityServiceImpl) CreateEvent(ctx context.Context, communityID, userID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := s.requireMembership(ctx, communityID, userID); err != nil {
		return nil, err
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewValidationError(map[string]string{
			"endsAt": "must be after startsAt",
		})
	}

	event := &models.Event{
		CommunityID: communityID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatedBy:   userID,
	}
	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	created, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toEventResponse(created)
	return &response, nil
}

// ListUpcomingEvents retrieves a community's events that have not finished yet
func (s *activityServiceImpl) ListUpcomingEvents(ctx context.Context, communityID, viewerID int64) ([]dto.EventResponse, error) {
	if err := s.requireReadAccess(ctx, communityID, viewerID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListUpcomingByCommunity(ctx, communityID, s.now())
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toEventResponse(&event))
	}
	return responses, nil
}

// CreateAnnouncement publishes an announcement. Only the community creator
// may announce; every member gets a best-effort notification.
func (s *activityServiceImpl) CreateAnnouncement(ctx context.Context, communityID, userID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community.CreatedBy != userID {
		return nil, apperrors.NewForbiddenError("Only the community creator can post announcements")
	}

	announcement := &models.Announcement{
		CommunityID: communityID,
		Title:       req.Title,
		Body:        req.Body,
		Pinned:      req.Pinned,
		CreatedBy:   userID,
	}
	id, err := s.announcementRepo.Create(ctx, announcement)
	if err != nil {
		return nil, err
	}
	announcement.ID = id
	announcement.CreatedAt = s.now()

	memberIDs, err := s.membershipRepo.ListMemberIDs(ctx, communityID)
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("communityId", communityID).
			Msg("Could not fan out announcement notifications")
	} else {
		for _, memberID := range memberIDs {
			if memberID == userID {
				continue
			}
			s.notifications.Notify(ctx, memberID, models.NotificationAnnouncement, map[string]any{
				"communityId":    communityID,
				"announcementId": id,
				"title":          req.Title,
			})
		}
	}

	response := toAnnouncementResponse(announcement)
	return &response, nil
}

// ListAnnouncements retrieves a community's announcements, pinned first
func (s *activityServiceImpl) ListAnnouncements(ctx context.Context, communityID, viewerID int64) ([]dto.AnnouncementResponse, error) {
	if err := s.requireReadAccess(ctx, communityID, viewerID); err != nil {
		return nil, err
	}

	announcements, err := s.announcementRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		responses = append(responses, toAnnouncementResponse(&announcement))
	}
	return responses, nil
}

func toEventResponse(event *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.ID,
		CommunityID: event.CommunityID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
	}
}

func toAnnouncementResponse(announcement *models.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:          announcement.ID,
		CommunityID: announcement.CommunityID,
		Title:       announcement.Title,
		Body:        announcement.Body,
		Pinned:      announcement.Pinned,
		CreatedBy:   announcement.CreatedBy,
		CreatedAt:   announcement.CreatedAt,
	}
}
