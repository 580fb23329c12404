package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCheckoutInProgress = errors.New("a checkout with this key is already in progress")
)

// IdempotencyStore deduplicates retried checkout submissions by their
// client-generated key. The Redis client implements it.
type IdempotencyStore interface {
	ReserveCheckout(key string) (bool, error)
	RecordCheckoutOrder(key string, orderID uint) error
	GetCheckoutOrder(key string) (uint, bool, error)
	ReleaseCheckout(key string) error
}

// StockValidation is the advisory pre-checkout check. Insufficient flags the
// lines that cannot be satisfied; Unknown flags lines whose stock could not
// be read. Only insufficiency blocks submission: the transactional checkout
// is the authoritative gate either way.
type StockValidation struct {
	Insufficient map[uint]bool `json:"insufficient"`
	Unknown      map[uint]bool `json:"unknown"`
	HasError     bool          `json:"has_error"`
}

type CheckoutService interface {
	ValidateStock(lines []models.CartLine) StockValidation
	Checkout(userID uint, idempotencyKey string) (*models.Order, error)
}

type checkoutService struct {
	menuRepo  repository.MenuRepository
	orderRepo repository.OrderRepository
	cart      CartService
	idem      IdempotencyStore
}

func NewCheckoutService(menuRepo repository.MenuRepository, orderRepo repository.OrderRepository, cart CartService, idem IdempotencyStore) CheckoutService {
	return &checkoutService{menuRepo: menuRepo, orderRepo: orderRepo, cart: cart, idem: idem}
}

// ValidateStock cross-checks requested quantities against live stock without
// mutating anything. A read failure on one line does not abort the others.
func (s *checkoutService) ValidateStock(lines []models.CartLine) StockValidation {
	v := StockValidation{
		Insufficient: make(map[uint]bool),
		Unknown:      make(map[uint]bool),
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		item, err := s.menuRepo.GetByID(line.MenuItemID)
		if err != nil {
			log.Printf("Warning: stock check failed for item %d: %v", line.MenuItemID, err)
			v.Unknown[line.MenuItemID] = true
			continue
		}
		if item.HasUnlimitedStock() {
			continue
		}
		if item.Stock < line.Quantity {
			v.Insufficient[line.MenuItemID] = true
			v.HasError = true
		}
	}
	return v
}

// Checkout turns the user's cart into a Pending order. The order insert and
// every stock decrement run in a single transaction, so a failed line rolls
// back the whole submission and the cart is kept for retry. A repeated
// idempotency key returns the order created by the first submission.
func (s *checkoutService) Checkout(userID uint, idempotencyKey string) (*models.Order, error) {
	// The key lookup must come before any cart read: a successful checkout
	// clears the cart, so a retried submission would otherwise see an empty
	// cart instead of the order it already created.
	if idempotencyKey != "" {
		if orderID, found, err := s.idem.GetCheckoutOrder(idempotencyKey); err != nil {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		} else if found {
			return s.orderRepo.GetByID(orderID)
		}
	}

	lines, err := s.cart.GetLines(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if idempotencyKey != "" {
		reserved, err := s.idem.ReserveCheckout(idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if !reserved {
			// Reserved but no order recorded: another submission with the
			// same key is mid-flight.
			if orderID, found, err := s.idem.GetCheckoutOrder(idempotencyKey); err == nil && found {
				return s.orderRepo.GetByID(orderID)
			}
			return nil, ErrCheckoutInProgress
		}
	}

	order, err := s.submit(userID, lines)
	if err != nil {
		if idempotencyKey != "" {
			if relErr := s.idem.ReleaseCheckout(idempotencyKey); relErr != nil {
				log.Printf("Warning: failed to release idempotency key %s: %v", idempotencyKey, relErr)
			}
		}
		return nil, err
	}

	if idempotencyKey != "" {
		if err := s.idem.RecordCheckoutOrder(idempotencyKey, order.ID); err != nil {
			// A reservation without a recorded order id would answer every
			// retry with "in progress" until it expires. Freeing it trades
			// that lockout for a small duplicate window.
			log.Printf("Warning: failed to record idempotency key %s: %v", idempotencyKey, err)
			if relErr := s.idem.ReleaseCheckout(idempotencyKey); relErr != nil {
				log.Printf("Warning: failed to release idempotency key %s: %v", idempotencyKey, relErr)
			}
		}
	}

	// Order committed; an abandoned cart would only expire on its own, so a
	// failed clear is a warning, not a checkout failure.
	if err := s.cart.Reset(userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %d: %v", userID, err)
	}

	return order, nil
}

func (s *checkoutService) submit(userID uint, lines []models.CartLine) (*models.Order, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}
	items, err := s.menuRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	byID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var total float64
	orderLines := make([]models.OrderLine, 0, len(lines))
	decrements := make([]repository.StockDecrement, 0, len(lines))

	for _, line := range lines {
		item, ok := byID[line.MenuItemID]
		if !ok || !item.Enabled {
			return nil, ErrItemUnavailable
		}

		total += item.Price * float64(line.Quantity)
		orderLines = append(orderLines, models.OrderLine{
			MenuItemID: item.ID,
			ItemName:   item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
			ImageURL:   item.ImageURL,
		})
		if !item.HasUnlimitedStock() {
			decrements = append(decrements, repository.StockDecrement{
				MenuItemID: item.ID,
				ItemName:   item.Name,
				Quantity:   line.Quantity,
			})
		}
	}

	order := &models.Order{
		OrderRef:    generateOrderRef(),
		UserID:      userID,
		TotalAmount: roundToCents(total),
		Status:      models.OrderPending,
		Lines:       orderLines,
	}

	if err := s.orderRepo.CreateWithStockDecrement(order, decrements); err != nil {
		var insufficient *repository.InsufficientStockError
		if errors.As(err, &insufficient) {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, insufficient.ItemName)
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return order, nil
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
