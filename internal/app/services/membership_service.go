package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

// MembershipService defines the interface for joining and leaving communities
type MembershipService interface {
	Join(ctx context.Context, communityID, userID int64) error
	Leave(ctx context.Context, communityID, userID int64) error
	JoinApproved(ctx context.Context, communityID, userID int64) error
	AutoJoinByProfileMatch(ctx context.Context, userID int64) ([]int64, error)
	IsMember(ctx context.Context, communityID, userID int64) (bool, error)
}

type membershipStore interface {
	AddMember(ctx context.Context, communityID, userID int64) error
	RemoveMember(ctx context.Context, communityID, userID int64) error
	IsMember(ctx context.Context, communityID, userID int64) (bool, error)
}

type communityReader interface {
	GetByID(ctx context.Context, id int64) (*models.Community, error)
	ListAll(ctx context.Context) ([]models.Community, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	membershipRepo membershipStore
	communityRepo  communityReader
	userRepo       userReader
	notifications  NotificationService
	registry       *metrics.Registry
	logger         zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	membershipRepo membershipStore,
	communityRepo communityReader,
	userRepo userReader,
	notifications NotificationService,
	registry *metrics.Registry,
	logger zerolog.Logger,
) MembershipService {
	return &membershipServiceImpl{
		membershipRepo: membershipRepo,
		communityRepo:  communityRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		registry:       registry,
		logger:         logger,
	}
}

// Join adds a user to a community via the direct path. Only public
// communities accept direct joins; private ones require an approved request
// and restricted ones are invite only.
func (s *membershipServiceImpl) Join(ctx context.Context, communityID, userID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}

	switch community.PrivacySetting {
	case models.CommunityPublic:
		// direct join allowed
	case models.CommunityPrivate:
		return apperrors.NewForbiddenError("This community requires an approved join request")
	case models.CommunityRestricted:
		return apperrors.NewForbiddenError("This community is invite only")
	default:
		return apperrors.NewForbiddenError("This community does not accept direct joins")
	}

	if err := s.membershipRepo.AddMember(ctx, communityID, userID); err != nil {
		return err
	}

	s.registry.MembershipJoinsTotal.WithLabelValues("direct").Inc()
	s.notifications.Notify(ctx, userID, models.NotificationWelcome, map[string]any{
		"communityId":   community.ID,
		"communityName": community.Name,
	})

	s.logger.Info().
		Int64("communityId", communityID).
		Int64("userId", userID).
		Msg("User joined community")
	return nil
}

// JoinApproved adds a user whose join request was approved. The privacy gate
// does not apply here; approval already granted access.
func (s *membershipServiceImpl) JoinApproved(ctx context.Context, communityID, userID int64) error {
	if err := s.membershipRepo.AddMember(ctx, communityID, userID); err != nil {
		return err
	}
	s.registry.MembershipJoinsTotal.WithLabelValues("approval").Inc()
	return nil
}

// Leave removes a user from a community
func (s *membershipServiceImpl) Leave(ctx context.Context, communityID, userID int64) error {
	if err := s.membershipRepo.RemoveMember(ctx, communityID, userID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("communityId", communityID).
		Int64("userId", userID).
		Msg("User left community")
	return nil
}

// IsMember reports whether a user belongs to a community
func (s *membershipServiceImpl) IsMember(ctx context.Context, communityID, userID int64) (bool, error) {
	return s.membershipRepo.IsMember(ctx, communityID, userID)
}

// AutoJoinByProfileMatch joins the user to every public community whose tags
// or name overlap the user's interests, major, courses, or clubs. The
// operation is idempotent: communities the user already belongs to are
// skipped, as are full ones. Returns the IDs of newly joined communities.
func (s *membershipServiceImpl) AutoJoinByProfileMatch(ctx context.Context, userID int64) ([]int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tokens := profileTokens(user)
	if len(tokens) == 0 {
		return nil, nil
	}

	communities, err := s.communityRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var joined []int64
	for _, community := range communities {
		if community.PrivacySetting != models.CommunityPublic {
			continue
		}
		if !communityMatches(&community, tokens) {
			continue
		}

		err := s.membershipRepo.AddMember(ctx, community.ID, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAlreadyMember) {
				continue
			}
			if errors.Is(err, apperrors.ErrCapacityExceeded) {
				s.logger.Debug().
					Int64("communityId", community.ID).
					Int64("userId", userID).
					Msg("Skipping full community during auto join")
				continue
			}
			return joined, err
		}

		joined = append(joined, community.ID)
		s.registry.MembershipJoinsTotal.WithLabelValues("auto_match").Inc()
		s.notifications.Notify(ctx, userID, models.NotificationWelcome, map[string]any{
			"communityId":   community.ID,
			"communityName": community.Name,
			"autoJoined":    true,
		})
	}

	if len(joined) > 0 {
		s.logger.Info().
			Int64("userId", userID).
			Ints64("communityIds", joined).
			Msg("Auto joined communities by profile match")
	}
	return joined, nil
}

// profileTokens collects the lowercased match tokens from a user's profile
func profileTokens(user *models.User) map[string]struct{} {
	tokens := make(map[string]struct{})
	add := func(values ...string) {
		for _, value := range values {
			for _, word := range strings.Fields(strings.ToLower(value)) {
				tokens[word] = struct{}{}
			}
		}
	}

	add(user.Major)
	add(user.Interests...)
	add(user.EnrolledCourses...)
	add(user.ClubMemberships...)
	return tokens
}

// communityMatches reports whether any community tag or name word appears in
// the token set
func communityMatches(community *models.Community, tokens map[string]struct{}) bool {
	for _, tag := range community.Tags {
		if _, ok := tokens[strings.ToLower(tag)]; ok {
			return true
		}
	}
	for _, word := range strings.Fields(strings.ToLower(community.Name)) {
		if _, ok := tokens[word]; ok {
			return true
		}
	}
	return false
}
