package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/repositories"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/auth"
	"github.com/akshat1423/scaleup-backend/internal/pkg/cache"
)

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	ProfileService      ProfileService
	CommunityService    CommunityService
	MembershipService   MembershipService
	JoinRequestService  JoinRequestService
	InteractionService  InteractionService
	ActivityService     ActivityService
	ChatService         ChatService
	NotificationService NotificationService
}

// NewServices wires all services against the repository layer
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	appCache cache.Cache,
	cacheTTL time.Duration,
	registry *metrics.Registry,
	logger zerolog.Logger,
) *Services {
	notificationService := NewNotificationService(repos.NotificationRepository, logger)

	membershipService := NewMembershipService(
		repos.MembershipRepository,
		repos.CommunityRepository,
		repos.UserRepository,
		notificationService,
		registry,
		logger,
	)

	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, jwtService, appCache, logger),
		ProfileService:      NewProfileService(repos.UserRepository, repos.MembershipRepository, registry, logger),
		CommunityService:    NewCommunityService(
			repos.CommunityRepository,
			repos.MembershipRepository,
			repos.PostRepository,
			repos.PollRepository,
			repos.EventRepository,
			repos.AnnouncementRepository,
			appCache,
			cacheTTL,
			logger,
		),
		MembershipService:   membershipService,
		JoinRequestService:  NewJoinRequestService(
			repos.JoinRequestRepository,
			repos.CommunityRepository,
			repos.MembershipRepository,
			membershipService,
			notificationService,
			logger,
		),
		InteractionService:  NewInteractionService(
			repos.PostRepository,
			repos.PollRepository,
			repos.MembershipRepository,
			repos.CommunityRepository,
			repos.UserRepository,
			registry,
			logger,
		),
		ActivityService:     NewActivityService(
			repos.EventRepository,
			repos.AnnouncementRepository,
			repos.MembershipRepository,
			repos.CommunityRepository,
			notificationService,
			logger,
		),
		ChatService:         NewChatService(repos.ChatRepository, repos.MembershipRepository, logger),
		NotificationService: notificationService,
	}
}
