package repository

import (
	"fmt"

	"food_ordering/internal/models"

	"gorm.io/gorm"
)

// StockDecrement is one inventory adjustment applied during checkout.
type StockDecrement struct {
	MenuItemID uint
	ItemName   string
	Quantity   int
}

// InsufficientStockError reports the line whose conditional decrement
// matched no rows, which aborts the whole checkout transaction.
type InsufficientStockError struct {
	MenuItemID uint
	ItemName   string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %q (id %d)", e.ItemName, e.MenuItemID)
}

type OrderRepository interface {
	// CreateWithStockDecrement inserts the order (with its snapshot lines)
	// and applies every stock decrement in one transaction. Any
	// insufficient line rolls back everything, including the order row.
	CreateWithStockDecrement(order *models.Order, decrements []StockDecrement) error
	GetByID(id uint) (*models.Order, error)
	GetByRef(ref string) (*models.Order, error)
	GetByUserID(userID uint, statuses []models.OrderStatus) ([]models.Order, error)
	GetAll(statuses []models.OrderStatus) ([]models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithStockDecrement(order *models.Order, decrements []StockDecrement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, d := range decrements {
			// Single conditional update, no read-then-write race. The
			// unlimited sentinel is left untouched should an item switch
			// to untracked stock mid-checkout.
			result := tx.Model(&models.MenuItem{}).
				Where("id = ? AND (stock = ? OR stock >= ?)", d.MenuItemID, models.UnlimitedStock, d.Quantity).
				Update("stock", gorm.Expr(
					"CASE WHEN stock = ? THEN stock ELSE stock - ? END",
					models.UnlimitedStock, d.Quantity,
				))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return &InsufficientStockError{MenuItemID: d.MenuItemID, ItemName: d.ItemName}
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByRef(ref string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines").Where("order_ref = ?", ref).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint, statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Lines").Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll(statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Lines")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}
