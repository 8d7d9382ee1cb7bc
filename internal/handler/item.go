package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lostandfound-backend/internal/matching"
	"lostandfound-backend/internal/middleware"
	"lostandfound-backend/internal/models"
	"lostandfound-backend/internal/repository"
	"lostandfound-backend/internal/storage"
)

const (
	dateLayout     = "2006-01-02"
	photoURLExpiry = time.Hour
)

var validItemStatuses = map[string]bool{
	models.ItemStatusActive:   true,
	models.ItemStatusResolved: true,
	models.ItemStatusInactive: true,
}

type ItemHandler interface {
	CreateLost(c *gin.Context)
	CreateFound(c *gin.Context)
	ListLost(c *gin.Context)
	ListFound(c *gin.Context)
	GetLost(c *gin.Context)
	GetFound(c *gin.Context)
	UpdateLostStatus(c *gin.Context)
	UpdateFoundStatus(c *gin.Context)
	FindLostMatches(c *gin.Context)
	FindFoundMatches(c *gin.Context)
}

type itemHandler struct {
	items   repository.ItemRepository
	matches repository.MatchRepository
	engine  *matching.Engine
	photos  *storage.PhotoStorage
	logger  *zap.Logger
}

func NewItemHandler(
	items repository.ItemRepository,
	matches repository.MatchRepository,
	engine *matching.Engine,
	photos *storage.PhotoStorage,
	logger *zap.Logger,
) ItemHandler {
	return &itemHandler{
		items:   items,
		matches: matches,
		engine:  engine,
		photos:  photos,
		logger:  logger,
	}
}

// itemForm carries the multipart fields shared by lost and found reports.
type itemForm struct {
	ItemName       string   `form:"item_name" binding:"required"`
	Description    string   `form:"description" binding:"required"`
	Location       string   `form:"location" binding:"required"`
	Latitude       *float64 `form:"latitude"`
	Longitude      *float64 `form:"longitude"`
	AdditionalInfo string   `form:"additional_info"`
	ReporterName   string   `form:"reporter_name" binding:"required"`
	ReporterEmail  string   `form:"reporter_email" binding:"required,email"`
	Contact        string   `form:"contact"`
	Date           string   `form:"date" binding:"required"`
}

func (f *itemForm) parseDate() (time.Time, error) {
	return time.Parse(dateLayout, f.Date)
}

// uploadPhotoIfPresent stores an optional multipart photo and returns
// its object key. A report without a photo is perfectly valid.
func (h *itemHandler) uploadPhotoIfPresent(c *gin.Context) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	if h.photos == nil {
		return "", errors.New("photo storage is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	return h.photos.UploadPhoto(c.Request.Context(), src, file.Filename, contentType, file.Size)
}

// CreateLost handles POST /api/items/lost. The match search runs inline
// on the write path; the response reports how many matches it created.
func (h *itemHandler) CreateLost(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var form itemForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateLost, err := form.parseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	photoKey, err := h.uploadPhotoIfPresent(c)
	if err != nil {
		h.logger.Error("Failed to upload photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	item := &models.LostItem{
		ItemName:       form.ItemName,
		Description:    form.Description,
		Location:       form.Location,
		Latitude:       form.Latitude,
		Longitude:      form.Longitude,
		PhotoKey:       photoKey,
		AdditionalInfo: form.AdditionalInfo,
		ReporterName:   form.ReporterName,
		ReporterEmail:  form.ReporterEmail,
		Contact:        form.Contact,
		PostedBy:       userID,
		DateLost:       dateLost,
		Status:         models.ItemStatusActive,
	}

	if err := h.items.CreateLost(item); err != nil {
		h.logger.Error("Failed to create lost item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lost item"})
		return
	}

	matchesFound, err := h.engine.FindMatchesForLost(c.Request.Context(), item)
	if err != nil {
		// The report itself is saved; the search can be re-run later.
		h.logger.Error("Match search failed for new lost item",
			zap.Int64("lost_item_id", item.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"item": item, "matches_found": matchesFound})
}

// CreateFound handles POST /api/items/found.
func (h *itemHandler) CreateFound(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var form itemForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateFound, err := form.parseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	photoKey, err := h.uploadPhotoIfPresent(c)
	if err != nil {
		h.logger.Error("Failed to upload photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	item := &models.FoundItem{
		ItemName:       form.ItemName,
		Description:    form.Description,
		Location:       form.Location,
		Latitude:       form.Latitude,
		Longitude:      form.Longitude,
		PhotoKey:       photoKey,
		AdditionalInfo: form.AdditionalInfo,
		ReporterName:   form.ReporterName,
		ReporterEmail:  form.ReporterEmail,
		Contact:        form.Contact,
		PostedBy:       userID,
		DateFound:      dateFound,
		Status:         models.ItemStatusActive,
	}

	if err := h.items.CreateFound(item); err != nil {
		h.logger.Error("Failed to create found item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create found item"})
		return
	}

	matchesFound, err := h.engine.FindMatchesForFound(c.Request.Context(), item)
	if err != nil {
		h.logger.Error("Match search failed for new found item",
			zap.Int64("found_item_id", item.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"item": item, "matches_found": matchesFound})
}

// ListLost handles GET /api/items/lost
func (h *itemHandler) ListLost(c *gin.Context) {
	items, err := h.items.ListLost()
	if err != nil {
		h.logger.Error("Failed to list lost items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lost items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListFound handles GET /api/items/found
func (h *itemHandler) ListFound(c *gin.Context) {
	items, err := h.items.ListFound()
	if err != nil {
		h.logger.Error("Failed to list found items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve found items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return 0, false
	}
	return id, true
}

// GetLost handles GET /api/items/lost/:id
func (h *itemHandler) GetLost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.items.GetLostByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lost item not found"})
			return
		}
		h.logger.Error("Failed to get lost item", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lost item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "photo_url": h.photoURL(c, item.PhotoKey)})
}

// GetFound handles GET /api/items/found/:id
func (h *itemHandler) GetFound(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.items.GetFoundByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Found item not found"})
			return
		}
		h.logger.Error("Failed to get found item", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve found item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "photo_url": h.photoURL(c, item.PhotoKey)})
}

func (h *itemHandler) photoURL(c *gin.Context, key string) string {
	if key == "" || h.photos == nil {
		return ""
	}
	url, err := h.photos.PhotoURL(c.Request.Context(), key, photoURLExpiry)
	if err != nil {
		h.logger.Warn("Failed to presign photo URL", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

type itemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLostStatus handles PUT /api/items/lost/:id/status. Only the
// reporter may change the status; resolving a report completes its
// open matches.
func (h *itemHandler) UpdateLostStatus(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req itemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validItemStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Valid values: active, resolved, inactive"})
		return
	}

	item, err := h.items.GetLostByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lost item not found"})
			return
		}
		h.logger.Error("Failed to get lost item", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lost item"})
		return
	}
	if item.PostedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the reporter can change the status"})
		return
	}

	if err := h.items.UpdateLostStatus(id, req.Status); err != nil {
		h.logger.Error("Failed to update lost item status", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	if req.Status == models.ItemStatusResolved {
		completed, err := h.matches.CompleteForLostItem(id)
		if err != nil {
			h.logger.Error("Failed to complete matches for resolved lost item",
				zap.Int64("id", id), zap.Error(err))
		} else if completed > 0 {
			h.logger.Info("Completed matches for resolved lost item",
				zap.Int64("id", id), zap.Int64("completed", completed))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// UpdateFoundStatus handles PUT /api/items/found/:id/status.
func (h *itemHandler) UpdateFoundStatus(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req itemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validItemStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Valid values: active, resolved, inactive"})
		return
	}

	item, err := h.items.GetFoundByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Found item not found"})
			return
		}
		h.logger.Error("Failed to get found item", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve found item"})
		return
	}
	if item.PostedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the reporter can change the status"})
		return
	}

	if err := h.items.UpdateFoundStatus(id, req.Status); err != nil {
		h.logger.Error("Failed to update found item status", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	if req.Status == models.ItemStatusResolved {
		completed, err := h.matches.CompleteForFoundItem(id)
		if err != nil {
			h.logger.Error("Failed to complete matches for resolved found item",
				zap.Int64("id", id), zap.Error(err))
		} else if completed > 0 {
			h.logger.Info("Completed matches for resolved found item",
				zap.Int64("id", id), zap.Int64("completed", completed))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// FindLostMatches handles POST /api/items/lost/:id/find-matches. It
// re-runs the search for an existing report; pairs that already have a
// match are skipped, so repeated calls are safe.
func (h *itemHandler) FindLostMatches(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.items.GetLostByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lost item not found"})
			return
		}
		h.logger.Error("Failed to get lost item", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lost item"})
		return
	}

	created, err := h.engine.FindMatchesForLost(c.Request.Context(), item)
	if err != nil {
		h.logger.Error("Match search failed", zap.Int64("lost_item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Match search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches_found": created})
}

// FindFoundMatches handles POST /api/items/found/:id/find-matches.
func (h *itemHandler) FindFoundMatches(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.items.GetFoundByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Found item not found"})
			return
		}
		h.logger.Error("Failed to get found item", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve found item"})
		return
	}

	created, err := h.engine.FindMatchesForFound(c.Request.Context(), item)
	if err != nil {
		h.logger.Error("Match search failed", zap.Int64("found_item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Match search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches_found": created})
}
