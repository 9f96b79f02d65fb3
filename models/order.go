package models

import (
	"time"

	"gorm.io/gorm"
)

// Conventional order status values. Stored free-form, never validated.
const (
	PaymentPaid     = "Paid"
	PaymentPending  = "Pending"
	PaymentRefunded = "Refunded"

	FulfillmentFulfilled   = "Fulfilled"
	FulfillmentUnfulfilled = "Unfulfilled"
	FulfillmentPartial     = "Partial"
)

// Order is a sale. CustomerID is a lookup association only: deleting the
// customer leaves the order in place with a dangling reference.
type Order struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	UserID            uint           `json:"user_id" gorm:"index;not null"`
	CustomerID        *uint          `json:"customer_id" gorm:"index"`
	OrderDate         time.Time      `json:"order_date" gorm:"type:date;not null;index"`
	OrderNumber       string         `json:"order_number" gorm:"size:100;not null"`
	TotalAmount       float64        `json:"total_amount" gorm:"not null"`
	Currency          string         `json:"currency" gorm:"size:10;default:USD"`
	PaymentStatus     string         `json:"payment_status" gorm:"size:50"`
	FulfillmentStatus string         `json:"fulfillment_status" gorm:"size:50"`
	SalesChannel      string         `json:"sales_channel" gorm:"size:100"`
	Note              string         `json:"note" gorm:"size:500"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
	User              User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
