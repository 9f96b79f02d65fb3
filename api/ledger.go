package api

import (
	"strconv"
	"strings"

	"nativus/database"
	"nativus/middleware"
	"nativus/models"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves expense/income ledger entries.
type LedgerHandler struct{}

// NewLedgerHandler creates the ledger handler.
func NewLedgerHandler() *LedgerHandler {
	return &LedgerHandler{}
}

// CreateLedgerEntryRequest is the ledger entry creation payload. Category
// defaults to "General", type to "expense", date to today.
type CreateLedgerEntryRequest struct {
	Date        string   `json:"date" example:"2024-03-08"`
	Category    string   `json:"category" example:"Shipping"`
	Description string   `json:"description" example:"March courier invoices"`
	Amount      *float64 `json:"amount" binding:"required" example:"120.00"`
	Type        string   `json:"type" example:"expense"`
}

// LedgerListRequest carries the ledger listing filters.
type LedgerListRequest struct {
	StartDate  string `form:"start_date" example:"2024-01-01"`
	EndDate    string `form:"end_date" example:"2024-12-31"`
	FilterType string `form:"filter_type" example:"expense"`
}

// LedgerListResponse is a filtered ledger listing with its subtotal.
type LedgerListResponse struct {
	Total       int64                `json:"total"`
	TotalAmount float64              `json:"total_amount"`
	List        []models.LedgerEntry `json:"list"`
}

// Create adds a ledger entry
// @Summary Create a ledger entry
// @Description Records an expense or income. Amounts are stored as positive
// @Description magnitudes; the type decides the sign during aggregation.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLedgerEntryRequest true "entry fields"
// @Success 200 {object} Response{data=models.LedgerEntry} "created"
// @Failure 400 {object} Response "non-numeric amount"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/ledger [post]
func (h *LedgerHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "amount must be a number"))
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultLedgerCategory
	}
	kind := req.Type
	if kind == "" {
		kind = models.LedgerExpense
	}

	entry := models.LedgerEntry{
		UserID:      userID,
		Date:        parseRecordDate(req.Date),
		Category:    category,
		Description: req.Description,
		Amount:      *req.Amount,
		Type:        kind,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "creating entry failed"))
		return
	}

	SuccessWithMessage(c, "entry saved", entry)
}

// List returns the account's ledger entries
// @Summary List ledger entries
// @Description Lists the caller's ledger entries, newest first, with the sum
// @Description of amounts over the filtered set. filter_type narrows to
// @Description expense or income; anything else means all.
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Param filter_type query string false "all | expense | income"
// @Success 200 {object} Response{data=LedgerListResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/ledger [get]
func (h *LedgerHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req LedgerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query"))
		return
	}

	f := ResolveListFilter(req.StartDate, req.EndDate, "", req.FilterType, models.LedgerKinds())

	query := database.DB.Model(&models.LedgerEntry{}).Where("user_id = ?", userID)
	query = f.ApplyKind(query, "type")
	query = f.ApplyDateRange(query, "date")

	var entries []models.LedgerEntry
	if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var totalAmount float64
	for _, e := range entries {
		totalAmount += e.Amount
	}

	Success(c, LedgerListResponse{
		Total:       int64(len(entries)),
		TotalAmount: totalAmount,
		List:        entries,
	})
}

// Delete removes a ledger entry
// @Summary Delete a ledger entry
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path int true "entry id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "no such entry for this account"
// @Router /api/v1/ledger/{id} [delete]
func (h *LedgerHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var entry models.LedgerEntry
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		NotFound(c, "entry not found")
		return
	}

	if err := database.DB.Delete(&entry).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "deleting entry failed"))
		return
	}

	SuccessWithMessage(c, "entry deleted", nil)
}
