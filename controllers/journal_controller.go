package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/services"

	"github.com/gin-gonic/gin"
)

type JournalController struct {
	Journal *services.JournalService
}

func NewJournalController(journal *services.JournalService) *JournalController {
	return &JournalController{Journal: journal}
}

// PUT /journal/:date/entries/:index
func (jc *JournalController) SaveEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, idx, ok := slotFromPath(c)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := jc.Journal.SaveEntry(c.Request.Context(), userID, day, idx, body.Text)
	if err != nil {
		// nothing was persisted; the user retries manually
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate your reflection, please try again"})
		return
	}
	if res.Flagged {
		c.JSON(http.StatusOK, gin.H{"flagged": true, "flagged_word": res.FlaggedWord})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /journal/:date/entries
func (jc *JournalController) ListEntries(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, ok := dayFromPath(c)
	if !ok {
		return
	}

	entries, err := jc.Journal.ListEntries(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format("2006-01-02"), "entries": entries})
}

// GET /journal/:date/entries/:index/detail
func (jc *JournalController) GetEntryDetail(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, idx, ok := slotFromPath(c)
	if !ok {
		return
	}

	detail, err := jc.Journal.EntryDetail(c.Request.Context(), userID, day, idx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DELETE /journal/:date/entries/:index
func (jc *JournalController) DeleteEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, idx, ok := slotFromPath(c)
	if !ok {
		return
	}

	if err := jc.Journal.DeleteEntry(c.Request.Context(), userID, day, idx); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /journal/:date/entries/:index/suggestions
func (jc *JournalController) RefreshSuggestions(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	day, idx, ok := slotFromPath(c)
	if !ok {
		return
	}

	suggestions, err := jc.Journal.RefreshSuggestions(c.Request.Context(), userID, day, idx)
	if err != nil {
		if errors.Is(err, services.ErrStaleRefresh) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_suggestions": suggestions})
}

// --- helpers shared across controllers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

func dayFromPath(c *gin.Context) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

func slotFromPath(c *gin.Context) (time.Time, int, bool) {
	day, ok := dayFromPath(c)
	if !ok {
		return time.Time{}, 0, false
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 || idx >= services.MaxEntriesPerDay {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry index"})
		return time.Time{}, 0, false
	}
	return day, idx, true
}
