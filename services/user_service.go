package services

import (
	"errors"
	"fmt"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ProfileInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"` // base64 data URI
}

func (s *UserService) GetProfile(email string) (map[string]interface{}, error) {
	var user models.User
	result := s.db.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"user_id":         user.UserID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"profile_picture": user.ProfilePicture,
		"verified":        user.Verified,
	}, nil
}

func (s *UserService) UpdateProfile(email string, input ProfileInput) error {
	var user models.User
	result := s.db.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	return s.db.Save(&user).Error
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	result := s.db.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
