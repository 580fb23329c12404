package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderPaymentDue OrderStatus = "PaymentDue"
	OrderPreparing  OrderStatus = "Preparing"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// ProcessingStatuses is the "Processing" bucket shown to customers: orders
// that are placed but not yet delivered or cancelled.
var ProcessingStatuses = []OrderStatus{OrderPending, OrderPaymentDue, OrderPreparing}

var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderPaymentDue, OrderPreparing, OrderDelivered, OrderCancelled},
	OrderPaymentDue: {OrderPreparing, OrderDelivered, OrderCancelled},
	OrderPreparing:  {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransitionTo reports whether an order may move from s to next.
// Delivered and Cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus maps a request string onto a known status.
func ParseOrderStatus(status string) (OrderStatus, error) {
	for known := range statusTransitions {
		if strings.EqualFold(status, string(known)) {
			return known, nil
		}
	}
	return "", errors.New("invalid order status")
}

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrderRef    string      `json:"order_ref" gorm:"unique;not null"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	Lines       []OrderLine `json:"lines" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderLine is a point-in-time snapshot of the purchased menu item. Name,
// price and image are copied at submission so later catalog edits never
// alter historical orders.
type OrderLine struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	ItemName   string  `json:"item_name" gorm:"not null"`
	UnitPrice  float64 `json:"unit_price" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	ImageURL   string  `json:"image_url"`
}
