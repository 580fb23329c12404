package services

import (
	"errors"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"
)

var (
	ErrInvalidPrice = errors.New("price must be non-negative")
	ErrInvalidStock = errors.New("stock must be -1 (unlimited) or non-negative")
)

type MenuService interface {
	CreateItem(item *models.MenuItem) error
	UpdateItem(item *models.MenuItem) error
	DeleteItem(id uint) error
	GetItem(id uint) (*models.MenuItem, error)
	GetCustomerMenu(category string) ([]models.MenuItem, error)
	GetFullMenu(category string) ([]models.MenuItem, error)
	SetItemImage(id uint, imageURL string) error
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func validateItem(item *models.MenuItem) error {
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	if item.Stock < models.UnlimitedStock {
		return ErrInvalidStock
	}
	return nil
}

func (s *menuService) CreateItem(item *models.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.menuRepo.Create(item)
}

func (s *menuService) UpdateItem(item *models.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.menuRepo.Update(item)
}

func (s *menuService) DeleteItem(id uint) error {
	return s.menuRepo.Delete(id)
}

func (s *menuService) GetItem(id uint) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(id)
}

// GetCustomerMenu returns only enabled items.
func (s *menuService) GetCustomerMenu(category string) ([]models.MenuItem, error) {
	return s.menuRepo.GetEnabled(category)
}

// GetFullMenu returns every item, disabled ones included, for admin screens.
func (s *menuService) GetFullMenu(category string) ([]models.MenuItem, error) {
	return s.menuRepo.GetAll(category)
}

func (s *menuService) SetItemImage(id uint, imageURL string) error {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	item.ImageURL = imageURL
	return s.menuRepo.Update(item)
}
