package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/utils"

	"gorm.io/gorm"
)

// ErrEmailNotVerified blocks journal access until the verification code
// from the signup email has been entered.
var ErrEmailNotVerified = errors.New("email not verified")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(email, password, firstName, lastName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	base := strings.ToLower(strings.ReplaceAll(firstName, " ", ""))
	if base == "" {
		base = "user"
	}
	userID := fmt.Sprintf("%s%d", base, rand.Intn(100000))

	user := models.User{
		UserID:     userID,
		Email:      email,
		Password:   hashedPassword,
		FirstName:  firstName,
		LastName:   lastName,
		Verified:   false,
		VerifyCode: utils.GenerateNumericCode(6),
		Disabled:   false,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return err
	}
	return utils.SendVerificationEmail(user.Email, user.VerifyCode)
}

func (s *AuthService) VerifyEmail(email, code string) error {
	user, err := s.FindByEmail(email)
	if err != nil {
		return errors.New("invalid email or code")
	}
	if user.Verified {
		return nil
	}
	if user.VerifyCode == "" || user.VerifyCode != code {
		return errors.New("invalid email or code")
	}
	user.Verified = true
	user.VerifyCode = ""
	return s.db.Save(user).Error
}

// Login authenticates and returns a session token. Unverified accounts
// are rejected with ErrEmailNotVerified.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	result := s.db.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil || !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid email or password")
	}
	if !user.Verified {
		return "", ErrEmailNotVerified
	}
	return utils.GenerateJWT(user.Email)
}

// ForgotPassword issues a short-lived reset code. Silently succeeds for
// unknown emails so the endpoint doesn't leak account existence.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil
	}
	user.ResetToken = utils.GenerateRandomToken(6)
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := s.db.Save(user).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(user.Email, user.ResetToken)
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	var user models.User
	result := s.db.Where("reset_token = ?", token).First(&user)
	if result.Error != nil || token == "" || time.Now().After(user.ResetTokenExp) {
		return errors.New("invalid or expired token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.Save(&user).Error
}

func (s *AuthService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	result := s.db.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
