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

type MatchHandler interface {
	ListMine(c *gin.Context)
	Accept(c *gin.Context)
	Reject(c *gin.Context)
}

type matchHandler struct {
	matches repository.MatchRepository
	items   repository.ItemRepository
	logger  *zap.Logger
}

func NewMatchHandler(matches repository.MatchRepository, items repository.ItemRepository, logger *zap.Logger) MatchHandler {
	return &matchHandler{matches: matches, items: items, logger: logger}
}

// ListMine handles GET /api/matches. Returns matches where the caller
// posted either side.
func (h *matchHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	matches, err := h.matches.ListForUser(userID)
	if err != nil {
		h.logger.Error("Failed to list matches", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Accept handles PUT /api/matches/:id/accept
func (h *matchHandler) Accept(c *gin.Context) {
	h.updateStatus(c, models.MatchStatusAccepted)
}

// Reject handles PUT /api/matches/:id/reject
func (h *matchHandler) Reject(c *gin.Context) {
	h.updateStatus(c, models.MatchStatusRejected)
}

func (h *matchHandler) updateStatus(c *gin.Context, status string) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	match, err := h.matches.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		h.logger.Error("Failed to get match", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match"})
		return
	}

	participant, err := isMatchParticipant(h.items, match, userID)
	if err != nil {
		h.logger.Error("Failed to check match participation", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match"})
		return
	}
	if !participant {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a match participant can do that"})
		return
	}

	if match.Status != models.MatchStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Match is no longer pending"})
		return
	}

	if err := h.matches.UpdateStatus(id, status); err != nil {
		h.logger.Error("Failed to update match status", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update match"})
		return
	}

	h.logger.Info("Match status updated",
		zap.Int64("match_id", id),
		zap.String("status", status),
		zap.Int64("user_id", userID))

	c.JSON(http.StatusOK, gin.H{"message": "Match " + status})
}

// isMatchParticipant reports whether the user posted either side of the match.
func isMatchParticipant(items repository.ItemRepository, match *models.Match, userID int64) (bool, error) {
	lost, err := items.GetLostByID(match.LostItemID)
	if err != nil {
		return false, err
	}
	if lost.PostedBy == userID {
		return true, nil
	}

	found, err := items.GetFoundByID(match.FoundItemID)
	if err != nil {
		return false, err
	}
	return found.PostedBy == userID, nil
}
