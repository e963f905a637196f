package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
)

// CommunityController handles community CRUD and membership operations
type CommunityController struct {
	communityService  services.CommunityService
	membershipService services.MembershipService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, membershipService services.MembershipService) *CommunityController {
	return &CommunityController{
		communityService:  communityService,
		membershipService: membershipService,
	}
}

// ListCommunities handles GET /communities
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	listing, err := c.communityService.ListTopLevel(ctx, middleware.CurrentUserID(ctx), ctx.Query("search"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listing))
}

// CreateCommunity handles POST /communities
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	var req dto.CreateCommunityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := c.communityService.CreateCommunity(ctx, &req, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(detail))
}

// GetCommunity handles GET /communities/:id
func (c *CommunityController) GetCommunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.communityService.GetCommunityDetails(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// GetSubCommunities handles GET /communities/:id/children
func (c *CommunityController) GetSubCommunities(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	children, err := c.communityService.GetSubCommunities(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(children))
}

// UpdateCommunity handles PUT /communities/:id
func (c *CommunityController) UpdateCommunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommunityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := c.communityService.UpdateCommunity(ctx, id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// DeleteCommunity handles DELETE /communities/:id
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.communityService.DeleteCommunity(ctx, id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// JoinCommunity handles POST /communities/:id/join
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.membershipService.Join(ctx, id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"joined": true}))
}

// LeaveCommunity handles POST /communities/:id/leave
func (c *CommunityController) LeaveCommunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.membershipService.Leave(ctx, id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"left": true}))
}

// AutoJoin handles POST /communities/auto-join, enrolling the caller into
// public communities matching their profile
func (c *CommunityController) AutoJoin(ctx *gin.Context) {
	joined, err := c.membershipService.AutoJoinByProfileMatch(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if joined == nil {
		joined = []int64{}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"joinedCommunityIds": joined}))
}
