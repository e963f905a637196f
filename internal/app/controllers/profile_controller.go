package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
)

// ProfileController handles profile viewing, editing, and privacy settings
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetMyProfile handles GET /profile
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)

	profile, err := c.profileService.ViewProfile(ctx, userID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// GetUserProfile handles GET /users/:id/profile. The response only carries
// the fields the viewer is allowed to see.
func (c *ProfileController) GetUserProfile(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.profileService.ViewProfile(ctx, targetID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile handles PUT /profile
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdatePrivacySettings handles PUT /profile/privacy
func (c *ProfileController) UpdatePrivacySettings(ctx *gin.Context) {
	var req dto.UpdatePrivacyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.profileService.UpdatePrivacySettings(ctx, middleware.CurrentUserID(ctx), req.PrivacySettings)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updated": true}))
}

// GetCompletion handles GET /profile/completion
func (c *ProfileController) GetCompletion(ctx *gin.Context) {
	completion, err := c.profileService.GetCompletion(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(completion))
}

// AddFriend handles POST /users/:id/friend
func (c *ProfileController) AddFriend(ctx *gin.Context) {
	friendID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.profileService.AddFriend(ctx, middleware.CurrentUserID(ctx), friendID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"added": true}))
}
