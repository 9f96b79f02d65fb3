package api

import (
	"strconv"
	"strings"

	"nativus/database"
	"nativus/middleware"
	"nativus/models"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves customer records.
type CustomerHandler struct{}

// NewCustomerHandler creates the customer handler.
func NewCustomerHandler() *CustomerHandler {
	return &CustomerHandler{}
}

// CreateCustomerRequest is the customer creation payload.
type CreateCustomerRequest struct {
	Name              string `json:"name" binding:"required" example:"Acme Corp"`
	Email             string `json:"email" example:"hello@acme.example"`
	Phone             string `json:"phone" example:"+1 555 0100"`
	City              string `json:"city" example:"Austin"`
	Country           string `json:"country" example:"US"`
	ShopifyCustomerID string `json:"shopify_customer_id" example:"7001"`
	Note              string `json:"note"`
}

// CustomerListRequest carries the customer listing filters.
type CustomerListRequest struct {
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
	Search    string `form:"search" example:"acme"`
}

// Create adds a customer
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "customer fields"
// @Success 200 {object} Response{data=models.Customer} "created"
// @Failure 400 {object} Response "missing name"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "name is required"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		BadRequest(c, "name is required")
		return
	}

	customer := models.Customer{
		UserID:            userID,
		CreatedAt:         Today(),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		City:              req.City,
		Country:           req.Country,
		ShopifyCustomerID: req.ShopifyCustomerID,
		Note:              req.Note,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "creating customer failed"))
		return
	}

	SuccessWithMessage(c, "customer saved", customer)
}

// List returns the account's customers
// @Summary List customers
// @Description Lists the caller's customers, newest first. Search matches
// @Description name, email and phone case-insensitively. Malformed dates are
// @Description ignored rather than rejected.
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Param search query string false "substring search over name/email/phone"
// @Success 200 {object} Response{data=ListResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query"))
		return
	}

	f := ResolveListFilter(req.StartDate, req.EndDate, req.Search, "", nil)

	query := database.DB.Model(&models.Customer{}).Where("user_id = ?", userID)
	query = f.ApplySearch(query, "name", "email", "phone")
	query = f.ApplyDateRange(query, "created_at")

	var customers []models.Customer
	if err := query.Order("created_at DESC, id DESC").Find(&customers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, ListResponse{
		Total: int64(len(customers)),
		List:  customers,
	})
}

// Delete removes a customer
// @Summary Delete a customer
// @Description Deletes a customer owned by the caller. Orders and tasks that
// @Description referenced it keep their reference; it renders as an empty
// @Description label from then on.
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "customer id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "no such customer for this account"
// @Router /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var customer models.Customer
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
		NotFound(c, "customer not found")
		return
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "deleting customer failed"))
		return
	}

	SuccessWithMessage(c, "customer deleted", nil)
}
