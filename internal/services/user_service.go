package services

import (
	"errors"
	"fmt"
	"time"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateUser      = errors.New("email, phone or username already registered")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrApprovalPending    = errors.New("account approval is pending")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidUserStatus  = errors.New("invalid user status")
)

type UserService interface {
	Register(username, email, phone, password string) (*models.User, error)
	Authenticate(identifier, password string) (string, *models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetCustomers(status string) ([]models.User, error)
	UpdateCustomerStatus(id uint, status string) error
}

type userService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{userRepo: userRepo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a customer profile in Pending status. The account cannot
// sign in until an admin approves it.
func (s *userService) Register(username, email, phone, password string) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmailPhoneOrUsername(email, phone, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         string(models.RoleCustomer),
		Status:       string(models.UserPending),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the password and approval status, then issues a JWT.
// The identifier may be an email address or a phone number.
func (s *userService) Authenticate(identifier, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsAdmin() {
		switch user.Status {
		case string(models.UserApproved):
		case string(models.UserPending):
			return "", nil, ErrApprovalPending
		default:
			return "", nil, ErrAccountBlocked
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetCustomers(status string) ([]models.User, error) {
	return s.userRepo.GetCustomers(status)
}

func (s *userService) UpdateCustomerStatus(id uint, status string) error {
	switch models.UserStatus(status) {
	case models.UserPending, models.UserApproved, models.UserBlocked:
	default:
		return ErrInvalidUserStatus
	}
	return s.userRepo.UpdateStatus(id, status)
}
