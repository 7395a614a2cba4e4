package controllers

import (
	"net/http"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Svc *services.ActivityService
}

func NewActivityController(svc *services.ActivityService) *ActivityController {
	return &ActivityController{Svc: svc}
}

// GET /profile/activity?from=&to= — defaults to the trailing 12 months.
func (h *ActivityController) GetActivitySummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	fromStr := c.DefaultQuery("from", now.AddDate(-1, 0, 0).Format("2006-01-02"))
	toStr := c.DefaultQuery("to", now.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
