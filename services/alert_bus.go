package services

import (
	"fmt"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"

	"gorm.io/gorm"
)

// AlertBus persists an alert row, mirrors it to the user's websocket
// connections, and pushes to registered devices. Hub and push are
// optional; a nil collaborator is skipped.
type AlertBus struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

func NewAlertBus(db *gorm.DB, rt *RealtimeHub, ps *PushService) *AlertBus {
	return &AlertBus{db: db, rt: rt, ps: ps}
}

func (b *AlertBus) Emit(userID uint, typ, message string) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = b.db.Create(a).Error

	if b.rt != nil {
		b.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.ps != nil {
		b.ps.PushToUser(userID, "MoodMirror", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

func (b *AlertBus) Recent(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	var alerts []models.Alert
	err := b.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
