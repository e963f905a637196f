package controllers

import (
	"github.com/akshat1423/scaleup-backend/internal/app/services"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController         *AuthController
	ProfileController      *ProfileController
	CommunityController    *CommunityController
	JoinRequestController  *JoinRequestController
	InteractionController  *InteractionController
	ActivityController     *ActivityController
	ChatController         *ChatController
	NotificationController *NotificationController
}

// NewControllers wires all controllers against the service layer
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:         NewAuthController(svcs.AuthService),
		ProfileController:      NewProfileController(svcs.ProfileService),
		CommunityController:    NewCommunityController(svcs.CommunityService, svcs.MembershipService),
		JoinRequestController:  NewJoinRequestController(svcs.JoinRequestService),
		InteractionController:  NewInteractionController(svcs.InteractionService),
		ActivityController:     NewActivityController(svcs.ActivityService),
		ChatController:         NewChatController(svcs.ChatService),
		NotificationController: NewNotificationController(svcs.NotificationService),
	}
}
