package services

import (
	"fmt"
	"time"

	"github.com/wicaksana/reportportal/internal/config"
	"github.com/wicaksana/reportportal/internal/models"
	"github.com/wicaksana/reportportal/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db         *gorm.DB
	challenges *ChallengeService
}

func NewAuthService(db *gorm.DB, challenges *ChallengeService) *AuthService {
	return &AuthService{db: db, challenges: challenges}
}

type LoginRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ChallengeID     string `json:"challenge_id" binding:"required"`
	ChallengeAnswer string `json:"challenge_answer" binding:"required"`
}

type LoginResponse struct {
	Token    string    `json:"token"`
	ExpireAt time.Time `json:"expire_at"`
	User     UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login verifies the captcha challenge before touching credentials, so a
// wrong code never reveals whether the username exists.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	if !s.challenges.Verify(req.ChallengeID, req.ChallengeAnswer) {
		return nil, fmt.Errorf("%w: captcha verification failed", ErrChallengeMismatch)
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login", now)

	expireHours := 24
	if config.GlobalConfig != nil && config.GlobalConfig.JWT.ExpireHour > 0 {
		expireHours = config.GlobalConfig.JWT.ExpireHour
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, expireHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:    token,
		ExpireAt: now.Add(time.Duration(expireHours) * time.Hour),
		User: UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// GetUser returns the profile for an authenticated user ID.
func (s *AuthService) GetUser(userID uint) (*UserInfo, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return &UserInfo{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}
