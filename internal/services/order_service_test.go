package services

import (
	"testing"

	"food_ordering/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(repo *fakeOrderRepo, userID uint, status models.OrderStatus) *models.Order {
	order := &models.Order{
		OrderRef:    "ref-" + string(status),
		UserID:      userID,
		TotalAmount: 10,
		Status:      status,
	}
	_ = repo.CreateWithStockDecrement(order, nil)
	return order
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		to      string
		allowed bool
	}{
		{models.OrderPending, "PaymentDue", true},
		{models.OrderPending, "Preparing", true},
		{models.OrderPending, "Delivered", true},
		{models.OrderPending, "Cancelled", true},
		{models.OrderPaymentDue, "Preparing", true},
		{models.OrderPaymentDue, "Pending", false},
		{models.OrderPreparing, "Delivered", true},
		{models.OrderPreparing, "PaymentDue", false},
		{models.OrderDelivered, "Cancelled", false},
		{models.OrderCancelled, "Pending", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			menuRepo := newFakeMenuRepo()
			orderRepo := newFakeOrderRepo(menuRepo)
			svc := NewOrderService(orderRepo)
			order := seedOrder(orderRepo, 1, tt.from)

			err := svc.UpdateStatus(order.ID, tt.to)

			if tt.allowed {
				require.NoError(t, err)
				updated, _ := orderRepo.GetByID(order.ID)
				assert.Equal(t, models.OrderStatus(tt.to), updated.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	orderRepo := newFakeOrderRepo(menuRepo)
	svc := NewOrderService(orderRepo)
	order := seedOrder(orderRepo, 1, models.OrderPending)

	err := svc.UpdateStatus(order.ID, "Shipped")

	assert.Error(t, err)
}

func TestDeleteOrderOnlyWhilePending(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	orderRepo := newFakeOrderRepo(menuRepo)
	svc := NewOrderService(orderRepo)

	pending := seedOrder(orderRepo, 1, models.OrderPending)
	preparing := seedOrder(orderRepo, 1, models.OrderPreparing)

	assert.ErrorIs(t, svc.DeleteOrder(preparing.ID, 1), ErrOrderNotDeletable)

	require.NoError(t, svc.DeleteOrder(pending.ID, 1))
	_, err := orderRepo.GetByID(pending.ID)
	assert.Error(t, err, "pending order should be gone")
}

func TestDeleteOrderRejectsOtherUsers(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	orderRepo := newFakeOrderRepo(menuRepo)
	svc := NewOrderService(orderRepo)
	order := seedOrder(orderRepo, 1, models.OrderPending)

	assert.ErrorIs(t, svc.DeleteOrder(order.ID, 2), ErrNotOrderOwner)
}

func TestGetOrderByIDAndRef(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	orderRepo := newFakeOrderRepo(menuRepo)
	svc := NewOrderService(orderRepo)
	order := seedOrder(orderRepo, 1, models.OrderPending)

	byID, err := svc.GetOrder("1", 1, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, byID.ID)

	byRef, err := svc.GetOrder(order.OrderRef, 1, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, byRef.ID)

	_, err = svc.GetOrder("1", 2, false)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	adminView, err := svc.GetOrder("1", 2, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, adminView.ID)
}

func TestGetUserOrdersProcessingBucket(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	orderRepo := newFakeOrderRepo(menuRepo)
	svc := NewOrderService(orderRepo)

	seedOrder(orderRepo, 1, models.OrderPending)
	seedOrder(orderRepo, 1, models.OrderPaymentDue)
	seedOrder(orderRepo, 1, models.OrderPreparing)
	seedOrder(orderRepo, 1, models.OrderDelivered)
	seedOrder(orderRepo, 1, models.OrderCancelled)
	seedOrder(orderRepo, 2, models.OrderPending)

	processing, err := svc.GetUserOrders(1, "Processing")
	require.NoError(t, err)
	assert.Len(t, processing, 3)

	delivered, err := svc.GetUserOrders(1, "Delivered")
	require.NoError(t, err)
	assert.Len(t, delivered, 1)

	all, err := svc.GetUserOrders(1, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = svc.GetUserOrders(1, "NotAStatus")
	assert.Error(t, err)
}
