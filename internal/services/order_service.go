package services

import (
	"errors"
	"fmt"
	"strconv"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOrderOwner     = errors.New("order belongs to another user")
	ErrOrderNotDeletable = errors.New("only pending orders can be deleted")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type OrderService interface {
	GetUserOrders(userID uint, statusFilter string) ([]models.Order, error)
	GetAllOrders(statusFilter string) ([]models.Order, error)
	GetOrder(idOrRef string, requesterID uint, requesterIsAdmin bool) (*models.Order, error)
	UpdateStatus(orderID uint, status string) error
	DeleteOrder(orderID, requesterID uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// parseStatusFilter maps a query value onto concrete statuses. "Processing"
// is the customer-facing bucket covering not-yet-settled orders.
func parseStatusFilter(filter string) ([]models.OrderStatus, error) {
	if filter == "" {
		return nil, nil
	}
	if filter == "Processing" {
		return models.ProcessingStatuses, nil
	}
	status, err := models.ParseOrderStatus(filter)
	if err != nil {
		return nil, err
	}
	return []models.OrderStatus{status}, nil
}

func (s *orderService) GetUserOrders(userID uint, statusFilter string) ([]models.Order, error) {
	statuses, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByUserID(userID, statuses)
}

func (s *orderService) GetAllOrders(statusFilter string) ([]models.Order, error) {
	statuses, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetAll(statuses)
}

// GetOrder resolves an order by numeric id or order ref. Customers may only
// read their own orders.
func (s *orderService) GetOrder(idOrRef string, requesterID uint, requesterIsAdmin bool) (*models.Order, error) {
	var order *models.Order
	var err error
	if id, convErr := strconv.ParseUint(idOrRef, 10, 64); convErr == nil {
		order, err = s.orderRepo.GetByID(uint(id))
	} else {
		order, err = s.orderRepo.GetByRef(idOrRef)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if !requesterIsAdmin && order.UserID != requesterID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

// UpdateStatus applies an admin-triggered transition, enforcing the status
// machine. Delivered and Cancelled are terminal.
func (s *orderService) UpdateStatus(orderID uint, status string) error {
	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}
	return s.orderRepo.UpdateStatus(orderID, next)
}

// DeleteOrder is the user-initiated cancel-by-delete, permitted only while
// the order is still Pending.
func (s *orderService) DeleteOrder(orderID, requesterID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order.UserID != requesterID {
		return ErrNotOrderOwner
	}
	if order.Status != models.OrderPending {
		return ErrOrderNotDeletable
	}
	return s.orderRepo.Delete(orderID)
}
