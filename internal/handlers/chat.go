package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportlink-service/internal/models"
	"sportlink-service/internal/ws"
)

// ChatService is the chat subsystem the handler fronts.
type ChatService interface {
	Start(ctx context.Context, user1ID, user2ID int) (models.Chat, bool, error)
	ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error)
	SendMessage(ctx context.Context, chatID, senderID int, content string) (models.Message, error)
	Messages(ctx context.Context, chatID int) ([]models.Message, error)
}

// ChatHandler manages chat endpoints.
type ChatHandler struct {
	svc    ChatService
	hub    *ws.Hub
	logger *zap.Logger
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(svc ChatService, hub *ws.Hub, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, hub: hub, logger: logger}
}

// Start creates or returns the chat for the pair. Requesting an existing
// pair is success; the created flag tells the caller which case occurred.
func (h *ChatHandler) Start(c *gin.Context) {
	var req struct {
		User1ID int `json:"user1_id" binding:"required"`
		User2ID int `json:"user2_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, created, err := h.svc.Start(c.Request.Context(), req.User1ID, req.User2ID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"chat": chat, "created": created})
}

// ListForUser returns the user's chat summaries.
func (h *ChatHandler) ListForUser(c *gin.Context) {
	userID, ok := paramInt(c, "userId")
	if !ok {
		return
	}

	chats, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if chats == nil {
		chats = []models.ChatSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// SendMessage persists a message and fans it out to live sessions in the
// chat's room.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		ChatID   int    `json:"chat_id" binding:"required"`
		SenderID int    `json:"sender_id" binding:"required"`
		Message  string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.SendMessage(c.Request.Context(), req.ChatID, req.SenderID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastNewMessage(msg.ChatID, msg)
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Messages returns the chat's history in ascending creation order.
func (h *ChatHandler) Messages(c *gin.Context) {
	chatID, ok := queryInt(c, "chatID")
	if !ok {
		return
	}
	if _, ok := queryInt(c, "userId"); !ok {
		return
	}

	msgs, err := h.svc.Messages(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
