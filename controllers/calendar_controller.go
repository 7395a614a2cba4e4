package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/services"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	Journal *services.JournalService
}

func NewCalendarController(journal *services.JournalService) *CalendarController {
	return &CalendarController{Journal: journal}
}

// GET /calendar/:year/:month — day → moods of that day's entries, for
// the calendar view.
func (cc *CalendarController) GetMonth(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)

	entries, err := cc.Journal.ListRange(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	days := map[string][]string{}
	for _, e := range entries {
		key := e.Date.Format("2006-01-02")
		days[key] = append(days[key], e.Mood)
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}
