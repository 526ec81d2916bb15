package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportlink-service/internal/models"
	"sportlink-service/internal/telemetry"
)

// ConnectionService is the connection state machine the handler fronts.
type ConnectionService interface {
	Create(ctx context.Context, requesterID, recipientID int) (models.Connection, error)
	Respond(ctx context.Context, recipientID, requesterID int, status models.ConnectionStatus) (models.Connection, error)
	List(ctx context.Context, userID int) ([]models.ConnectionWithUser, error)
	ListPending(ctx context.Context, userID int) ([]models.PendingConnection, error)
	ListAccepted(ctx context.Context, userID int) ([]models.AcceptedConnection, error)
	Status(ctx context.Context, userID, counterpartID int) (models.ConnectionStatus, error)
	SearchUsers(ctx context.Context, query string, excludeUserID int) ([]models.UserSummary, error)
}

// ConnectionHandler manages connection endpoints.
type ConnectionHandler struct {
	svc    ConnectionService
	audit  *telemetry.AuditEmitter
	logger *zap.Logger
}

// NewConnectionHandler builds a ConnectionHandler.
func NewConnectionHandler(svc ConnectionService, audit *telemetry.AuditEmitter, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{svc: svc, audit: audit, logger: logger}
}

// Create requests a connection with the user in the path.
func (h *ConnectionHandler) Create(c *gin.Context) {
	recipientID, ok := paramInt(c, "connectedUserId")
	if !ok {
		return
	}

	var req struct {
		UserID int `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.svc.Create(c.Request.Context(), req.UserID, recipientID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.Emit(c.Request.Context(), "connection_requested",
		fmt.Sprintf("user %d requested connection with user %d", req.UserID, recipientID),
		requestIDFromContext(c), userIDPointer(req.UserID))
	c.JSON(http.StatusOK, gin.H{"message": "connection made successfully", "connection": conn})
}

// Respond accepts or rejects the pending request from the user in the path.
func (h *ConnectionHandler) Respond(c *gin.Context) {
	requesterID, ok := paramInt(c, "connectedUserId")
	if !ok {
		return
	}

	var req struct {
		UserID int                     `json:"user_id" binding:"required"`
		Status models.ConnectionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.svc.Respond(c.Request.Context(), req.UserID, requesterID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.Emit(c.Request.Context(), "connection_"+string(req.Status),
		fmt.Sprintf("user %d responded %s to user %d", req.UserID, req.Status, requesterID),
		requestIDFromContext(c), userIDPointer(req.UserID))
	c.JSON(http.StatusOK, gin.H{"message": "connection updated", "connection": conn})
}

// List returns every connection record where the user is either party.
func (h *ConnectionHandler) List(c *gin.Context) {
	userID, ok := queryInt(c, "userId")
	if !ok {
		return
	}

	conns, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if conns == nil {
		conns = []models.ConnectionWithUser{}
	}
	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

// ListPending returns incoming pending requests for the user in the path.
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	userID, ok := paramInt(c, "userId")
	if !ok {
		return
	}

	pending, err := h.svc.ListPending(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(pending) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// ListAccepted returns accepted connections for the user in the path.
func (h *ConnectionHandler) ListAccepted(c *gin.Context) {
	userID, ok := paramInt(c, "userId")
	if !ok {
		return
	}

	accepted, err := h.svc.ListAccepted(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(accepted) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": accepted})
}

// Status reports the relationship between the query user and the path user.
// "No relationship" is a valid answer, not an error.
func (h *ConnectionHandler) Status(c *gin.Context) {
	counterpartID, ok := paramInt(c, "connectedUserId")
	if !ok {
		return
	}
	userID, ok := queryInt(c, "userId")
	if !ok {
		return
	}

	status, err := h.svc.Status(c.Request.Context(), userID, counterpartID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Search matches users by name, excluding the requester.
func (h *ConnectionHandler) Search(c *gin.Context) {
	currentUserID, ok := paramInt(c, "currentUserId")
	if !ok {
		return
	}

	users, err := h.svc.SearchUsers(c.Request.Context(), c.Query("search"), currentUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
