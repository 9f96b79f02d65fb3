package models

import (
	"time"

	"gorm.io/gorm"
)

// Conventional task status values. "Done" is the one the aggregator cares
// about: anything else counts as an open task.
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// Conventional priorities, stored free-form.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is a dated to-do, optionally tied to a customer.
type Task struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	CustomerID *uint          `json:"customer_id" gorm:"index"`
	Date       time.Time      `json:"date" gorm:"type:date;not null;index"`
	Title      string         `json:"title" gorm:"size:200;not null"`
	Status     string         `json:"status" gorm:"size:50;not null;default:Pending"`
	Priority   string         `json:"priority" gorm:"size:20"`
	Note       string         `json:"note" gorm:"size:500"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	User       User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Task) TableName() string {
	return "tasks"
}

// TaskStatuses returns the recognized task status filter values.
func TaskStatuses() []string {
	return []string{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}
}
