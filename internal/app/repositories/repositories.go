package repositories

import (
	"github.com/akshat1423/scaleup-backend/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	CommunityRepository    *CommunityRepository
	MembershipRepository   *MembershipRepository
	PostRepository         *PostRepository
	PollRepository         *PollRepository
	JoinRequestRepository  *JoinRequestRepository
	EventRepository        *EventRepository
	AnnouncementRepository *AnnouncementRepository
	ChatRepository         *ChatRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database.Pool),
		CommunityRepository:    NewCommunityRepository(database.Pool),
		MembershipRepository:   NewMembershipRepository(database),
		PostRepository:         NewPostRepository(database.Pool),
		PollRepository:         NewPollRepository(database),
		JoinRequestRepository:  NewJoinRequestRepository(database.Pool),
		EventRepository:        NewEventRepository(database.Pool),
		AnnouncementRepository: NewAnnouncementRepository(database.Pool),
		ChatRepository:         NewChatRepository(database.Pool),
		NotificationRepository: NewNotificationRepository(database.Pool),
	}
}
