package api

import (
	"fmt"
	"log"
	"time"

	"nativus/database"
	"nativus/middleware"
	"nativus/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// XLSXContentType is the workbook MIME type.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export column layouts. Order and wording are fixed; consumers key on them.
var (
	customerExportHeaders = []string{
		"ID", "Created At", "Name", "Email", "Phone", "City", "Country",
		"Shopify Customer ID", "Note",
	}
	orderExportHeaders = []string{
		"ID", "Order Date", "Order Number", "Customer", "Total Amount",
		"Currency", "Payment Status", "Fulfillment Status", "Sales Channel", "Note",
	}
	expenseExportHeaders = []string{
		"ID", "Date", "Type", "Category", "Description", "Amount",
	}
	taskExportHeaders = []string{
		"ID", "Date", "Title", "Customer", "Status", "Priority", "Note",
	}
)

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct{}

// NewExportHandler creates the export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// customerNameMap loads one id-to-name mapping covering all of the account's
// customers, so exports do not look up names row by row.
func customerNameMap(db *gorm.DB, userID uint) (map[uint]string, error) {
	var customers []models.Customer
	if err := db.Where("user_id = ?", userID).Find(&customers).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]string, len(customers))
	for _, c := range customers {
		m[c.ID] = c.Name
	}
	return m, nil
}

// resolveCustomerLabel maps an optional customer reference to a display
// label. Nil and dangling references render as the empty string.
func resolveCustomerLabel(names map[uint]string, id *uint) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

// buildWorkbook assembles a single-sheet workbook with a styled header row.
// An empty row set still yields a well-formed sheet, with a lone "No data"
// header and no data rows.
func buildWorkbook(sheetName string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	if len(rows) == 0 {
		headers = []string{"No data"}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	lastCol := string(rune('A' + len(headers) - 1))
	f.SetColWidth(sheetName, "A", lastCol, 18)

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for r, row := range rows {
		rowNum := r + 2
		for i, value := range row {
			f.SetCellValue(sheetName, fmt.Sprintf("%c%d", 'A'+i, rowNum), value)
		}
		f.SetCellStyle(sheetName,
			fmt.Sprintf("A%d", rowNum),
			fmt.Sprintf("%c%d", 'A'+len(headers)-1, rowNum),
			dataStyle)
	}

	return f, nil
}

// sendWorkbook streams the workbook as an attachment named
// <entity>_<YYYYMMDD_HHMMSS>.xlsx (UTC).
func sendWorkbook(c *gin.Context, f *excelize.File, entity string) {
	defer f.Close()

	filename := fmt.Sprintf("%s_%s.xlsx", entity, time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", XLSXContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	// the attachment headers are already out, so a failed write can only
	// be logged, not converted into an error envelope
	if err := f.Write(c.Writer); err != nil {
		log.Printf("export %s: writing workbook failed: %v", entity, err)
	}
}

// ExportCustomers downloads customers as a workbook
// @Summary Export customers
// @Description Exports the caller's customers, oldest first, honoring the
// @Description same date filters as the listing.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Success 200 {file} file "xlsx workbook"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/customers [get]
func (h *ExportHandler) ExportCustomers(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	f := ResolveListFilter(c.Query("start_date"), c.Query("end_date"), "", "", nil)

	query := database.DB.Model(&models.Customer{}).Where("user_id = ?", userID)
	query = f.ApplyDateRange(query, "created_at")

	var customers []models.Customer
	if err := query.Order("created_at ASC, id ASC").Find(&customers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	rows := make([][]interface{}, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, []interface{}{
			cu.ID,
			cu.CreatedAt.Format(DateLayout),
			cu.Name,
			cu.Email,
			cu.Phone,
			cu.City,
			cu.Country,
			cu.ShopifyCustomerID,
			cu.Note,
		})
	}

	wb, err := buildWorkbook("Customers", customerExportHeaders, rows)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "generating workbook failed"))
		return
	}
	sendWorkbook(c, wb, "customers")
}

// ExportOrders downloads orders as a workbook
// @Summary Export orders
// @Description Exports the caller's orders, oldest first. The Customer
// @Description column carries the customer name; missing or dangling
// @Description references render empty.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Success 200 {file} file "xlsx workbook"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/orders [get]
func (h *ExportHandler) ExportOrders(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	f := ResolveListFilter(c.Query("start_date"), c.Query("end_date"), "", "", nil)

	query := database.DB.Model(&models.Order{}).Where("user_id = ?", userID)
	query = f.ApplyDateRange(query, "order_date")

	var orders []models.Order
	if err := query.Order("order_date ASC, id ASC").Find(&orders).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	names, err := customerNameMap(database.DB, userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.ID,
			o.OrderDate.Format(DateLayout),
			o.OrderNumber,
			resolveCustomerLabel(names, o.CustomerID),
			o.TotalAmount,
			o.Currency,
			o.PaymentStatus,
			o.FulfillmentStatus,
			o.SalesChannel,
			o.Note,
		})
	}

	wb, err := buildWorkbook("Orders", orderExportHeaders, rows)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "generating workbook failed"))
		return
	}
	sendWorkbook(c, wb, "orders")
}

// ExportExpenses downloads ledger entries as a workbook
// @Summary Export ledger entries
// @Description Exports the caller's ledger entries, oldest first, honoring
// @Description the filter_type narrowing of the listing.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Param filter_type query string false "all | expense | income"
// @Success 200 {file} file "xlsx workbook"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/expenses [get]
func (h *ExportHandler) ExportExpenses(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	f := ResolveListFilter(c.Query("start_date"), c.Query("end_date"), "",
		c.Query("filter_type"), models.LedgerKinds())

	query := database.DB.Model(&models.LedgerEntry{}).Where("user_id = ?", userID)
	query = f.ApplyKind(query, "type")
	query = f.ApplyDateRange(query, "date")

	var entries []models.LedgerEntry
	if err := query.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.ID,
			e.Date.Format(DateLayout),
			e.Type,
			e.Category,
			e.Description,
			e.Amount,
		})
	}

	wb, err := buildWorkbook("Expenses", expenseExportHeaders, rows)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "generating workbook failed"))
		return
	}
	sendWorkbook(c, wb, "expenses")
}

// ExportTasks downloads tasks as a workbook
// @Summary Export tasks
// @Description Exports the caller's tasks, oldest first, honoring the
// @Description status_filter narrowing of the listing.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Param status_filter query string false "all | Pending | In Progress | Done"
// @Success 200 {file} file "xlsx workbook"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/export/tasks [get]
func (h *ExportHandler) ExportTasks(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	f := ResolveListFilter(c.Query("start_date"), c.Query("end_date"), "",
		c.Query("status_filter"), models.TaskStatuses())

	query := database.DB.Model(&models.Task{}).Where("user_id = ?", userID)
	query = f.ApplyKind(query, "status")
	query = f.ApplyDateRange(query, "date")

	var tasks []models.Task
	if err := query.Order("date ASC, id ASC").Find(&tasks).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	names, err := customerNameMap(database.DB, userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	rows := make([][]interface{}, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []interface{}{
			t.ID,
			t.Date.Format(DateLayout),
			t.Title,
			resolveCustomerLabel(names, t.CustomerID),
			t.Status,
			t.Priority,
			t.Note,
		})
	}

	wb, err := buildWorkbook("Tasks", taskExportHeaders, rows)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "generating workbook failed"))
		return
	}
	sendWorkbook(c, wb, "tasks")
}
