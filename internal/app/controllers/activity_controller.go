package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
)

// ActivityController handles community events and announcements
type ActivityController struct {
	activityService services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// CreateEvent handles POST /communities/:id/events
func (c *ActivityController) CreateEvent(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.activityService.CreateEvent(ctx, communityID, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// ListUpcomingEvents handles GET /communities/:id/events
func (c *ActivityController) ListUpcomingEvents(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	events, err := c.activityService.ListUpcomingEvents(ctx, communityID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// CreateAnnouncement handles POST /communities/:id/announcements
func (c *ActivityController) CreateAnnouncement(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !bindJSON(ctx, &req) {
		return
	}

	announcement, err := c.activityService.CreateAnnouncement(ctx, communityID, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(announcement))
}

// ListAnnouncements handles GET /communities/:id/announcements
func (c *ActivityController) ListAnnouncements(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	announcements, err := c.activityService.ListAnnouncements(ctx, communityID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcements))
}
