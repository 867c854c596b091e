package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"feedbox/app/database"
	"feedbox/app/tasks"
)

type Handler struct {
	feedRepo  database.FeedRepository
	entryRepo database.EntryRepository
	refresher *tasks.Refresher
}

func NewHandler(feedRepo database.FeedRepository, entryRepo database.EntryRepository,
	refresher *tasks.Refresher) *Handler {
	return &Handler{
		feedRepo:  feedRepo,
		entryRepo: entryRepo,
		refresher: refresher,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.CountFeeds(""); err == nil {
		health["feeds"] = feedCount
	}
	if unread, err := h.entryRepo.CountEntries(database.Unread()); err == nil {
		health["unread"] = unread
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListFeeds(c *gin.Context) {
	feeds, err := h.feedRepo.GetFeeds(c.Query("category"))
	if err != nil {
		slog.Error("Database error", "operation", "list_feeds", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, lo.Map(feeds, func(f database.Feed, _ int) feedResponse {
		return toFeedResponse(f)
	}))
}

func (h *Handler) GetFeed(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	feed, err := h.feedRepo.GetFeed(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "feed_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if feed == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, toFeedResponse(*feed))
}

func (h *Handler) GetFeedEntries(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	feed, err := h.feedRepo.GetFeed(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed_entries", "feed_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if feed == nil {
		c.Status(http.StatusNotFound)
		return
	}

	// Full progress range: every entry of the feed, oldest update first.
	entries, err := h.entryRepo.GetNext(database.EntryFilter{
		MaxProgress: 1,
		FeedID:      id,
		Order:       database.OrderUpdatedOnly,
	})
	if err != nil {
		slog.Error("Database error", "operation", "get_feed_entries", "feed_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, lo.Map(entries, func(e database.Entry, _ int) entryResponse {
		return toEntryResponse(e)
	}))
}

func (h *Handler) GetEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := h.entryRepo.GetEntry(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_entry", "entry_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if entry == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(*entry))
}

func (h *Handler) GetNext(c *gin.Context) {
	filter := database.Unread()
	filter.Category = c.Query("category")
	filter.Limit = 1

	if v := c.Query("feed"); v != "" {
		feedID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feed id"})
			return
		}
		filter.FeedID = feedID
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}
	if c.Query("priority") == "false" {
		filter.Order = database.OrderUpdatedOnly
	}

	entries, err := h.entryRepo.GetNext(filter)
	if err != nil {
		slog.Error("Database error", "operation", "get_next", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, lo.Map(entries, func(e database.Entry, _ int) entryResponse {
		return toEntryResponse(e)
	}))
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.feedRepo.GetCategories()
	if err != nil {
		slog.Error("Database error", "operation", "get_categories", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		filter := database.Unread()
		filter.Category = category
		unread, err := h.entryRepo.CountEntries(filter)
		if err != nil {
			slog.Error("Database error", "operation", "get_categories", "category", category, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		response = append(response, categoryResponse{Name: category, Unread: unread})
	}

	c.JSON(http.StatusOK, response)
}

// TriggerRefresh starts a full refresh in the background and returns
// immediately.
func (h *Handler) TriggerRefresh(c *gin.Context) {
	go func() {
		report, err := h.refresher.RefreshAll(context.Background())
		if err != nil {
			slog.Error("Triggered refresh aborted", "error", err)
			return
		}
		slog.Info("Triggered refresh completed",
			"feeds", report.FeedsAttempted,
			"entries", report.EntriesIngested,
			"failures", len(report.Failures))
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}

func (h *Handler) SetProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body struct {
		Progress float64 `json:"progress"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.entryRepo.GetEntry(id)
	if err != nil {
		slog.Error("Database error", "operation", "set_progress", "entry_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if entry == nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.entryRepo.SetProgress(id, body.Progress); err != nil {
		if database.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Database error", "operation", "set_progress", "entry_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SetImportant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body struct {
		Important bool `json:"important"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.entryRepo.GetEntry(id)
	if err != nil {
		slog.Error("Database error", "operation", "set_important", "entry_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if entry == nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.entryRepo.SetImportant(id, body.Important); err != nil {
		slog.Error("Database error", "operation", "set_important", "entry_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
