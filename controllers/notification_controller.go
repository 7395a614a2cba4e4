package controllers

import (
	"net/http"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB     *gorm.DB
	Alerts *services.AlertBus
}

func NewNotificationController(db *gorm.DB, alerts *services.AlertBus) *NotificationController {
	return &NotificationController{DB: db, Alerts: alerts}
}

// GET /user/notifications
func (nc *NotificationController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	alerts, err := nc.Alerts.Recent(uid, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /user/notifications/toggle
func (nc *NotificationController) Toggle(c *gin.Context) {
	uid := c.GetUint("userID")

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := nc.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", uid).
		Update("enabled", req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
