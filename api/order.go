package api

import (
	"strconv"
	"strings"

	"nativus/database"
	"nativus/middleware"
	"nativus/models"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves order records.
type OrderHandler struct{}

// NewOrderHandler creates the order handler.
func NewOrderHandler() *OrderHandler {
	return &OrderHandler{}
}

// CreateOrderRequest is the order creation payload. OrderDate falls back to
// today when absent or unparseable.
type CreateOrderRequest struct {
	OrderNumber       string   `json:"order_number" binding:"required" example:"SO-1042"`
	OrderDate         string   `json:"order_date" example:"2024-03-08"`
	CustomerID        *uint    `json:"customer_id" example:"3"`
	TotalAmount       *float64 `json:"total_amount" binding:"required" example:"149.90"`
	Currency          string   `json:"currency" example:"USD"`
	PaymentStatus     string   `json:"payment_status" example:"Paid"`
	FulfillmentStatus string   `json:"fulfillment_status" example:"Fulfilled"`
	SalesChannel      string   `json:"sales_channel" example:"Online Store"`
	Note              string   `json:"note"`
}

// OrderListRequest carries the order listing filters.
type OrderListRequest struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
	Search    string `form:"search" example:"SO-10"`
}

// OrderListResponse is a filtered order listing with its subtotal.
type OrderListResponse struct {
	Total      int64          `json:"total"`
	TotalSales float64        `json:"total_sales"`
	List       []models.Order `json:"list"`
}

// Create adds an order
// @Summary Create an order
// @Description Creates an order. A supplied customer_id must resolve to a
// @Description customer owned by the caller, otherwise the request is
// @Description rejected.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "order fields"
// @Success 200 {object} Response{data=models.Order} "created"
// @Failure 400 {object} Response "missing order number, non-numeric amount or foreign customer"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "order number and a numeric total amount are required"))
		return
	}
	if strings.TrimSpace(req.OrderNumber) == "" {
		BadRequest(c, "order number is required")
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.Where("id = ? AND user_id = ?", *req.CustomerID, userID).First(&customer).Error; err != nil {
			BadRequest(c, "customer does not belong to this account")
			return
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	order := models.Order{
		UserID:            userID,
		CustomerID:        req.CustomerID,
		OrderDate:         parseRecordDate(req.OrderDate),
		OrderNumber:       req.OrderNumber,
		TotalAmount:       *req.TotalAmount,
		Currency:          currency,
		PaymentStatus:     req.PaymentStatus,
		FulfillmentStatus: req.FulfillmentStatus,
		SalesChannel:      req.SalesChannel,
		Note:              req.Note,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "creating order failed"))
		return
	}

	SuccessWithMessage(c, "order saved", order)
}

// List returns the account's orders
// @Summary List orders
// @Description Lists the caller's orders, newest first, with the sum of
// @Description total_amount over the filtered set. Search matches order
// @Description number, sales channel and payment status.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Param search query string false "substring search"
// @Success 200 {object} Response{data=OrderListResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query"))
		return
	}

	f := ResolveListFilter(req.StartDate, req.EndDate, req.Search, "", nil)

	query := database.DB.Model(&models.Order{}).Where("user_id = ?", userID)
	query = f.ApplySearch(query, "order_number", "sales_channel", "payment_status")
	query = f.ApplyDateRange(query, "order_date")

	var orders []models.Order
	if err := query.Order("order_date DESC, id DESC").Find(&orders).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var totalSales float64
	for _, o := range orders {
		totalSales += o.TotalAmount
	}

	Success(c, OrderListResponse{
		Total:      int64(len(orders)),
		TotalSales: totalSales,
		List:       orders,
	})
}

// Delete removes an order
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "order id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "no such order for this account"
// @Router /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var order models.Order
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		NotFound(c, "order not found")
		return
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "deleting order failed"))
		return
	}

	SuccessWithMessage(c, "order deleted", nil)
}
