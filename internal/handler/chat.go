package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lostandfound-backend/internal/middleware"
	"lostandfound-backend/internal/models"
	"lostandfound-backend/internal/repository"
)

type ChatHandler interface {
	ListMessages(c *gin.Context)
	SendMessage(c *gin.Context)
}

type chatHandler struct {
	chats   repository.ChatRepository
	matches repository.MatchRepository
	items   repository.ItemRepository
	logger  *zap.Logger
}

func NewChatHandler(
	chats repository.ChatRepository,
	matches repository.MatchRepository,
	items repository.ItemRepository,
	logger *zap.Logger,
) ChatHandler {
	return &chatHandler{chats: chats, matches: matches, items: items, logger: logger}
}

// authorize loads the match and verifies the caller posted either side.
func (h *chatHandler) authorize(c *gin.Context) (*models.Match, int64, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, 0, false
	}

	id, ok := parseIDParam(c)
	if !ok {
		return nil, 0, false
	}

	match, err := h.matches.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return nil, 0, false
		}
		h.logger.Error("Failed to get match", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match"})
		return nil, 0, false
	}

	participant, err := isMatchParticipant(h.items, match, userID)
	if err != nil {
		h.logger.Error("Failed to check match participation", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match"})
		return nil, 0, false
	}
	if !participant {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a match participant can access the chat"})
		return nil, 0, false
	}

	return match, userID, true
}

// ListMessages handles GET /api/matches/:id/messages
func (h *chatHandler) ListMessages(c *gin.Context) {
	match, _, ok := h.authorize(c)
	if !ok {
		return
	}

	messages, err := h.chats.ListForMatch(match.ID)
	if err != nil {
		h.logger.Error("Failed to list chat messages", zap.Int64("match_id", match.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// SendMessage handles POST /api/matches/:id/messages
func (h *chatHandler) SendMessage(c *gin.Context) {
	match, userID, ok := h.authorize(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := &models.ChatMessage{
		MatchID:  match.ID,
		SenderID: userID,
		Message:  req.Message,
	}

	if err := h.chats.SaveMessage(msg); err != nil {
		h.logger.Error("Failed to save chat message", zap.Int64("match_id", match.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
