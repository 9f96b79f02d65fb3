package service

import (
	"time"

	"nativus/models"

	"gorm.io/gorm"
)

// BasicStats are the per-account dashboard figures. Sums over zero rows are
// 0.0, never null.
type BasicStats struct {
	TotalCustomers int64   `json:"total_customers"`
	TotalOrders    int64   `json:"total_orders"`
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	Net            float64 `json:"net"`
	OpenTasks      int64   `json:"open_tasks"`
}

// TodayStats are the per-account figures restricted to one date.
type TodayStats struct {
	OrdersToday  int64   `json:"orders_today"`
	IncomeToday  float64 `json:"income_today"`
	ExpenseToday float64 `json:"expense_today"`
}

// GetBasicStats computes the account-wide totals. Read-only: it is safe to
// call per metrics scrape.
func GetBasicStats(db *gorm.DB, userID uint) (BasicStats, error) {
	var s BasicStats

	if err := db.Model(&models.Customer{}).
		Where("user_id = ?", userID).
		Count(&s.TotalCustomers).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&s.TotalOrders).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.LedgerEntry{}).
		Where("user_id = ? AND type = ?", userID, models.LedgerIncome).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.TotalIncome).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.LedgerEntry{}).
		Where("user_id = ? AND type = ?", userID, models.LedgerExpense).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.TotalExpense).Error; err != nil {
		return s, err
	}

	s.Net = s.TotalIncome - s.TotalExpense

	if err := db.Model(&models.Task{}).
		Where("user_id = ? AND status <> ?", userID, models.TaskStatusDone).
		Count(&s.OpenTasks).Error; err != nil {
		return s, err
	}

	return s, nil
}

// GetTodayStats computes the totals for a single date, normally today's.
func GetTodayStats(db *gorm.DB, userID uint, today time.Time) (TodayStats, error) {
	var s TodayStats

	if err := db.Model(&models.Order{}).
		Where("user_id = ? AND order_date = ?", userID, today).
		Count(&s.OrdersToday).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.LedgerEntry{}).
		Where("user_id = ? AND type = ? AND date = ?", userID, models.LedgerIncome, today).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.IncomeToday).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.LedgerEntry{}).
		Where("user_id = ? AND type = ? AND date = ?", userID, models.LedgerExpense, today).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.ExpenseToday).Error; err != nil {
		return s, err
	}

	return s, nil
}
