package models

// CommunityPrivacy defines who may join a community
type CommunityPrivacy string

const (
	CommunityPublic     CommunityPrivacy = "PUBLIC"     // anyone may join directly
	CommunityPrivate    CommunityPrivacy = "PRIVATE"    // joining requires an approved request
	CommunityRestricted CommunityPrivacy = "RESTRICTED" // invite-only, no self-service join
)

// JoinRequestStatus defines the lifecycle of a join request
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestApproved JoinRequestStatus = "APPROVED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

// NotificationType identifies the kind of notification
type NotificationType string

const (
	NotificationWelcome      NotificationType = "COMMUNITY_WELCOME"
	NotificationJoinApproved NotificationType = "JOIN_REQUEST_APPROVED"
	NotificationJoinRejected NotificationType = "JOIN_REQUEST_REJECTED"
	NotificationAnnouncement NotificationType = "ANNOUNCEMENT"
)
