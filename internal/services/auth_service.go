package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adisharma/job-tracker-api/internal/constants"
	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserLocked           = errors.New("account is locked")
	ErrInvalidVerifyToken   = errors.New("invalid verification token")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	log          *logrus.Logger
	now          func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, log *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		log:          log,
		now:          time.Now,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup creates a new user and issues an email verification token.
// Token delivery is handled elsewhere; here it is only logged.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		VerifyToken:  uuid.NewString(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": user.ID,
			"token":   user.VerifyToken,
		}).Info("email verification token issued")
	}

	return user, nil
}

// VerifyEmail marks a user's email verified when the token matches.
func (s *AuthService) VerifyEmail(userID uint64, token string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.VerifyToken == "" || user.VerifyToken != token {
		return ErrInvalidVerifyToken
	}

	user.EmailVerified = true
	user.VerifyToken = ""
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	return nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user. A
// locked account fails even with the right password. Successful logins
// update last_login and append a login activity record.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserLocked
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}

	// Audit writes never fail the login.
	_ = s.activityRepo.Create(&models.AdminActivity{
		UserID: user.ID,
		Action: models.ActionLogin,
	})

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
