package models

import (
	"time"

	"gorm.io/gorm"
)

// Ledger entry kinds. The kind decides the sign during aggregation; the
// stored amount is always a positive magnitude.
const (
	LedgerExpense = "expense"
	LedgerIncome  = "income"
)

// DefaultLedgerCategory is used when a blank category is submitted.
const DefaultLedgerCategory = "General"

// LedgerEntry is a dated expense or income record.
type LedgerEntry struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Date        time.Time      `json:"date" gorm:"type:date;not null;index"`
	Category    string         `json:"category" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"size:255"`
	Amount      float64        `json:"amount" gorm:"not null"`
	Type        string         `json:"type" gorm:"size:20;not null;default:expense"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// LedgerKinds returns the recognized ledger entry kinds.
func LedgerKinds() []string {
	return []string{LedgerExpense, LedgerIncome}
}
