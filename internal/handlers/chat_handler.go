package handlers

import (
	"time"

	"cityride/internal/middleware"
	"cityride/internal/services"
	"cityride/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Send appends a message to the trip's chat.
func (h *ChatHandler) Send(c *gin.Context) {
	senderID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	tripID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	var request struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	message, err := h.chatService.Send(c.Request.Context(), tripID, senderID, request.Text)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Message sent successfully", message)
}

// List returns the trip's messages ordered by time. Clients poll this on a
// fixed interval; an optional RFC3339 "since" query returns only newer
// messages.
func (h *ChatHandler) List(c *gin.Context) {
	requesterID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	tripID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequestResponse(c, "since must be an RFC3339 timestamp")
			return
		}
		since = &parsed
	}

	messages, err := h.chatService.List(c.Request.Context(), tripID, requesterID, middleware.UserRole(c), since)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Messages retrieved successfully", gin.H{
		"messages":      messages,
		"poll_interval": utils.ChatPollInterval.Seconds(),
	})
}
