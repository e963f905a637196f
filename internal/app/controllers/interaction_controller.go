package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
)

// InteractionController handles posts, voting, and polls
type InteractionController struct {
	interactionService services.InteractionService
}

// NewInteractionController creates a new InteractionController
func NewInteractionController(interactionService services.InteractionService) *InteractionController {
	return &InteractionController{interactionService: interactionService}
}

// CreatePost handles POST /communities/:id/posts
func (c *InteractionController) CreatePost(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.interactionService.CreatePost(ctx, communityID, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// ListPosts handles GET /communities/:id/posts
func (c *InteractionController) ListPosts(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	posts, err := c.interactionService.ListPosts(ctx, communityID, middleware.CurrentUserID(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// VotePost handles POST /posts/:id/vote
func (c *InteractionController) VotePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VotePostRequest
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.interactionService.VotePost(ctx, postID, middleware.CurrentUserID(ctx), req.Direction)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePoll handles POST /communities/:id/polls
func (c *InteractionController) CreatePoll(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreatePollRequest
	if !bindJSON(ctx, &req) {
		return
	}

	poll, err := c.interactionService.CreatePoll(ctx, communityID, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(poll))
}

// ListPolls handles GET /communities/:id/polls
func (c *InteractionController) ListPolls(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	polls, err := c.interactionService.ListPolls(ctx, communityID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(polls))
}

// VotePoll handles POST /polls/:id/vote
func (c *InteractionController) VotePoll(ctx *gin.Context) {
	pollID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VotePollRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.interactionService.VotePoll(ctx, pollID, middleware.CurrentUserID(ctx), req.SelectedOptions); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"voted": true}))
}

// GetPollResults handles GET /polls/:id/results
func (c *InteractionController) GetPollResults(ctx *gin.Context) {
	pollID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	results, err := c.interactionService.TallyPoll(ctx, pollID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}
