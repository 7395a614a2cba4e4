package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/utils"

	"gorm.io/gorm"
)

type AvoidedFoodService struct {
	db *gorm.DB
}

func NewAvoidedFoodService(db *gorm.DB) *AvoidedFoodService {
	return &AvoidedFoodService{db: db}
}

// Add records a dismissed suggestion. Idempotent: adding a food that is
// already avoided (under any spelling that slugs the same) is a no-op.
func (s *AvoidedFoodService) Add(ctx context.Context, userID uint, name string) (*models.AvoidedFood, error) {
	name = strings.TrimSpace(name)
	key := utils.FoodKeySlug(name)
	if key == "" {
		return nil, errors.New("food name required")
	}

	af := models.AvoidedFood{UserID: userID, FoodKey: key, Food: name, AvoidedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND food_key = ?", userID, key).
		FirstOrCreate(&af).Error
	if err != nil {
		return nil, err
	}
	return &af, nil
}

// Remove drops the food from the user's avoided set. Removing a food
// that was never avoided is not an error.
func (s *AvoidedFoodService) Remove(ctx context.Context, userID uint, name string) error {
	key := utils.FoodKeySlug(name)
	if key == "" {
		return errors.New("food name required")
	}
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND food_key = ?", userID, key).
		Delete(&models.AvoidedFood{}).Error
}

func (s *AvoidedFoodService) List(ctx context.Context, userID uint) ([]models.AvoidedFood, error) {
	var foods []models.AvoidedFood
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("avoided_at desc").
		Find(&foods).Error
	return foods, err
}
