package repository

import (
	"food_ordering/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByIdentifier(identifier string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ExistsByEmailPhoneOrUsername(email, phone, username string) (bool, error)
	GetCustomers(status string) ([]models.User, error)
	Update(user *models.User) error
	UpdateStatus(id uint, status string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIdentifier looks a user up by email or phone, matching the sign-in
// form which accepts either.
func (r *userRepository) GetByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? OR phone = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmailPhoneOrUsername(email, phone, username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? OR phone = ? OR username = ?", email, phone, username).
		Count(&count).Error
	return count > 0, err
}

// GetCustomers lists non-admin users, optionally filtered by approval status.
func (r *userRepository) GetCustomers(status string) ([]models.User, error) {
	var users []models.User
	query := r.db.Where("role <> ?", string(models.RoleAdmin))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
