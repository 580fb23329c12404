package services

import (
	"errors"
	"fmt"
	"sort"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be non-negative")
	ErrItemUnavailable = errors.New("menu item does not exist or is disabled")
)

// CartStore is the transient cart backend. The Redis client implements it;
// tests use an in-memory fake.
type CartStore interface {
	SetCartItem(userID, itemID uint, quantity int) error
	GetCart(userID uint) (map[uint]int, error)
	ClearCart(userID uint) error
}

type CartService interface {
	SetItem(userID, itemID uint, quantity int) error
	GetLines(userID uint) ([]models.CartLine, error)
	Reset(userID uint) error
}

type cartService struct {
	store    CartStore
	menuRepo repository.MenuRepository
}

func NewCartService(store CartStore, menuRepo repository.MenuRepository) CartService {
	return &cartService{store: store, menuRepo: menuRepo}
}

// SetItem sets the selected quantity for one menu item. Zero removes the
// line; the item must exist and be enabled.
func (s *cartService) SetItem(userID, itemID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity > 0 {
		item, err := s.menuRepo.GetByID(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemUnavailable
			}
			return fmt.Errorf("failed to validate menu item: %w", err)
		}
		if !item.Enabled {
			return ErrItemUnavailable
		}
	}
	return s.store.SetCartItem(userID, itemID, quantity)
}

// GetLines returns the cart as a stable, id-ordered slice. Zero-quantity
// lines never appear.
func (s *cartService) GetLines(userID uint) ([]models.CartLine, error) {
	cart, err := s.store.GetCart(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(cart))
	for itemID, quantity := range cart {
		lines = append(lines, models.CartLine{MenuItemID: itemID, Quantity: quantity})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].MenuItemID < lines[j].MenuItemID })
	return lines, nil
}

func (s *cartService) Reset(userID uint) error {
	return s.store.ClearCart(userID)
}
