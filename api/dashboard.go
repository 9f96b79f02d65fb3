package api

import (
	"nativus/database"
	"nativus/middleware"
	"nativus/models"
	"nativus/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the account overview.
type DashboardHandler struct{}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

const recentLimit = 5

// DashboardResponse is the account overview: aggregate figures plus the five
// most recent records of each kind.
type DashboardResponse struct {
	Stats           service.BasicStats `json:"stats"`
	RecentCustomers []models.Customer  `json:"recent_customers"`
	RecentOrders    []models.Order     `json:"recent_orders"`
	RecentTasks     []models.Task      `json:"recent_tasks"`
	Today           service.TodayStats `json:"today"`
}

// Overview returns the dashboard
// @Summary Account overview
// @Description Aggregate counts and sums for the account, today's subtotals,
// @Description and the five most recent customers, orders and tasks.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=DashboardResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	stats, err := service.GetBasicStats(database.DB, userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	today, err := service.GetTodayStats(database.DB, userID, Today())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var recentCustomers []models.Customer
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Limit(recentLimit).
		Find(&recentCustomers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var recentOrders []models.Order
	if err := database.DB.Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").Limit(recentLimit).
		Find(&recentOrders).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var recentTasks []models.Task
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC, id DESC").Limit(recentLimit).
		Find(&recentTasks).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, DashboardResponse{
		Stats:           stats,
		RecentCustomers: recentCustomers,
		RecentOrders:    recentOrders,
		RecentTasks:     recentTasks,
		Today:           today,
	})
}
