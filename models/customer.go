package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a buyer record. CreatedAt is the business date used for
// filtering and export ordering, stored date-only.
type Customer struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	UserID            uint           `json:"user_id" gorm:"index;not null"`
	CreatedAt         time.Time      `json:"created_at" gorm:"type:date;index"`
	Name              string         `json:"name" gorm:"size:200;not null"`
	Email             string         `json:"email" gorm:"size:200"`
	Phone             string         `json:"phone" gorm:"size:50"`
	City              string         `json:"city" gorm:"size:100"`
	Country           string         `json:"country" gorm:"size:100"`
	ShopifyCustomerID string         `json:"shopify_customer_id" gorm:"size:100"`
	Note              string         `json:"note" gorm:"size:500"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
	User              User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}
