package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
)

// NotificationController handles the caller's notification feed
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications handles GET /notifications. Pass unreadOnly=true to
// filter out notifications already marked read.
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	unreadOnly := ctx.Query("unreadOnly") == "true"

	notifications, err := c.notificationService.ListNotifications(ctx, middleware.CurrentUserID(ctx), unreadOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

// MarkRead handles POST /notifications/:id/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, notificationID, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"read": true}))
}
