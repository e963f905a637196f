package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
)

// JoinRequestController handles the private community admission flow
type JoinRequestController struct {
	joinRequestService services.JoinRequestService
}

// NewJoinRequestController creates a new JoinRequestController
func NewJoinRequestController(joinRequestService services.JoinRequestService) *JoinRequestController {
	return &JoinRequestController{joinRequestService: joinRequestService}
}

// RequestToJoin handles POST /communities/:id/join-requests
func (c *JoinRequestController) RequestToJoin(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateJoinRequestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.joinRequestService.RequestToJoin(ctx, communityID, middleware.CurrentUserID(ctx), req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListPending handles GET /communities/:id/join-requests
func (c *JoinRequestController) ListPending(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.joinRequestService.ListPending(ctx, communityID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// Review handles POST /join-requests/:id/review
func (c *JoinRequestController) Review(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewJoinRequestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.joinRequestService.Review(ctx, requestID, middleware.CurrentUserID(ctx), req.Approve)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}
