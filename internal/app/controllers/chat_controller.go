package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/middleware"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
)

// ChatController handles the community chat room
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// SendMessage handles POST /communities/:id/chat
func (c *ChatController) SendMessage(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendChatMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	message, err := c.chatService.SendMessage(ctx, communityID, middleware.CurrentUserID(ctx), req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// GetHistory handles GET /communities/:id/chat
func (c *ChatController) GetHistory(ctx *gin.Context) {
	communityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	history, err := c.chatService.GetHistory(ctx, communityID, middleware.CurrentUserID(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(history))
}
