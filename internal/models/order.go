package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order statuses. Transitions run one way (pending → processing → shipped
// → delivered); cancelled is reachable from any non-terminal state.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists every valid status value, in transition order.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// Order is an immutable purchase snapshot. Shipping address and payment
// info are stored as opaque JSON documents; payment data is never
// processed, only echoed back.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	OrderNumber     string         `gorm:"column:order_number;type:varchar(50);not null;uniqueIndex" json:"order_number"`
	Status          string         `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount     float64        `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	ShippingAddress datatypes.JSON `gorm:"column:shipping_address;not null" json:"shipping_address"`
	PaymentInfo     datatypes.JSON `gorm:"column:payment_info;not null" json:"payment_info"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
