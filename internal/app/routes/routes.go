package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akshat1423/scaleup-backend/internal/app/controllers"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	registry *metrics.Registry,
) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Metrics(registry))
	v1.Use(rateLimiter.Handler())

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrls.AuthController.Register)
		auth.POST("/login", ctrls.AuthController.Login)
		auth.POST("/refresh", ctrls.AuthController.Refresh)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrls.AuthController.Logout)

		// Profile routes
		profile := authenticated.Group("/profile")
		{
			profile.GET("", ctrls.ProfileController.GetMyProfile)
			profile.PUT("", ctrls.ProfileController.UpdateProfile)
			profile.PUT("/privacy", ctrls.ProfileController.UpdatePrivacySettings)
			profile.GET("/completion", ctrls.ProfileController.GetCompletion)
		}

		// User routes
		users := authenticated.Group("/users")
		{
			users.GET("/:id/profile", ctrls.ProfileController.GetUserProfile)
			users.POST("/:id/friend", ctrls.ProfileController.AddFriend)
		}

		// Community routes
		communities := authenticated.Group("/communities")
		{
			communities.GET("", ctrls.CommunityController.ListCommunities)
			communities.POST("", ctrls.CommunityController.CreateCommunity)
			communities.POST("/auto-join", ctrls.CommunityController.AutoJoin)
			communities.GET("/:id", ctrls.CommunityController.GetCommunity)
			communities.PUT("/:id", ctrls.CommunityController.UpdateCommunity)
			communities.DELETE("/:id", ctrls.CommunityController.DeleteCommunity)
			communities.GET("/:id/children", ctrls.CommunityController.GetSubCommunities)

			// Membership
			communities.POST("/:id/join", ctrls.CommunityController.JoinCommunity)
			communities.POST("/:id/leave", ctrls.CommunityController.LeaveCommunity)

			// Admission flow for private communities
			communities.POST("/:id/join-requests", ctrls.JoinRequestController.RequestToJoin)
			communities.GET("/:id/join-requests", ctrls.JoinRequestController.ListPending)

			// Posts and polls
			communities.GET("/:id/posts", ctrls.InteractionController.ListPosts)
			communities.POST("/:id/posts", ctrls.InteractionController.CreatePost)
			communities.GET("/:id/polls", ctrls.InteractionController.ListPolls)
			communities.POST("/:id/polls", ctrls.InteractionController.CreatePoll)

			// Events and announcements
			communities.GET("/:id/events", ctrls.ActivityController.ListUpcomingEvents)
			communities.POST("/:id/events", ctrls.ActivityController.CreateEvent)
			communities.GET("/:id/announcements", ctrls.ActivityController.ListAnnouncements)
			communities.POST("/:id/announcements", ctrls.ActivityController.CreateAnnouncement)

			// Chat room
			communities.GET("/:id/chat", ctrls.ChatController.GetHistory)
			communities.POST("/:id/chat", ctrls.ChatController.SendMessage)
		}

		// Join request review
		joinRequests := authenticated.Group("/join-requests")
		{
			joinRequests.POST("/:id/review", ctrls.JoinRequestController.Review)
		}

		// Post and poll routes addressed by their own IDs
		posts := authenticated.Group("/posts")
		{
			posts.POST("/:id/vote", ctrls.InteractionController.VotePost)
		}
		polls := authenticated.Group("/polls")
		{
			polls.POST("/:id/vote", ctrls.InteractionController.VotePoll)
			polls.GET("/:id/results", ctrls.InteractionController.GetPollResults)
		}

		// Notification feed
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrls.NotificationController.ListNotifications)
			notifications.POST("/:id/read", ctrls.NotificationController.MarkRead)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})

	// Prometheus scrape endpoint, outside the versioned API
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry.Prometheus, promhttp.HandlerOpts{})))
}
