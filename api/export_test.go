package api

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, w *httptest.ResponseRecorder) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	return f
}

func TestExportHandler_ExportCustomers(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `customers` WHERE .* ORDER BY created_at ASC").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "name", "email", "phone", "city", "country", "shopify_customer_id", "note"}).
			AddRow(3, 1, day, "Acme Corp", "hello@acme.example", "+1 555 0100", "Austin", "US", "7001", ""))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/customers", NewExportHandler().ExportCustomers)

	req := httptest.NewRequest("GET", "/export/customers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, XLSXContentType, w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment; filename=customers_")
	assert.True(t, strings.HasSuffix(disposition, ".xlsx"))

	f := openWorkbook(t, w)
	defer f.Close()
	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, customerExportHeaders, rows[0])
	assert.Equal(t, "Acme Corp", rows[1][2])
	assert.Equal(t, "2024-03-01", rows[1][1])
	require.NoError(t, mock.ExpectationsWereMet())
}

// An account with no tasks still gets a valid workbook: a Tasks sheet whose
// only content is a "No data" header.
func TestExportHandler_ExportTasks_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `tasks` WHERE .* ORDER BY date ASC").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "title", "status"}))
	mock.ExpectQuery("SELECT .* FROM `customers`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/tasks", NewExportHandler().ExportTasks)

	req := httptest.NewRequest("GET", "/export/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filename=tasks_")

	f := openWorkbook(t, w)
	defer f.Close()
	rows, err := f.GetRows("Tasks")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"No data"}, rows[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

// A dangling customer reference exports as an empty Customer cell rather
// than an error.
func TestExportHandler_ExportOrders_DanglingCustomer(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	day := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `orders` WHERE .* ORDER BY order_date ASC").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "order_date", "order_number", "customer_id", "total_amount", "currency"}).
			AddRow(1, 1, day, "SO-1042", 99, 149.90, "USD"))
	// customer 99 was deleted, so the name map comes back empty
	mock.ExpectQuery("SELECT .* FROM `customers`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/orders", NewExportHandler().ExportOrders)

	req := httptest.NewRequest("GET", "/export/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)

	f := openWorkbook(t, w)
	defer f.Close()
	number, err := f.GetCellValue("Orders", "C2")
	require.NoError(t, err)
	assert.Equal(t, "SO-1042", number)
	customer, err := f.GetCellValue("Orders", "D2")
	require.NoError(t, err)
	assert.Equal(t, "", customer)
	require.NoError(t, mock.ExpectationsWereMet())
}

type brokenWriter struct {
	gin.ResponseWriter
}

func (w *brokenWriter) Write(b []byte) (int, error) {
	return 0, errors.New("client went away")
}

// A write failure mid-stream cannot be turned into an error response: the
// attachment headers are already out, so nothing further is written.
func TestExportHandler_WriteFailure(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `customers` WHERE .* ORDER BY created_at ASC").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.Use(func(c *gin.Context) {
		c.Writer = &brokenWriter{c.Writer}
		c.Next()
	})
	router.GET("/export/customers", NewExportHandler().ExportCustomers)

	req := httptest.NewRequest("GET", "/export/customers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, XLSXContentType, w.Header().Get("Content-Type"))
	assert.Empty(t, w.Body.Bytes())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExpenses_FilterType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	day := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `ledger_entries` WHERE .* ORDER BY date ASC").
		WithArgs(uint(1), "expense").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "category", "description", "amount", "type"}).
			AddRow(2, 1, day, "Shipping", "March courier invoices", 120.0, "expense"))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/expenses", NewExportHandler().ExportExpenses)

	req := httptest.NewRequest("GET", "/export/expenses?filter_type=expense", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)

	f := openWorkbook(t, w)
	defer f.Close()
	rows, err := f.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, expenseExportHeaders, rows[0])
	assert.Equal(t, "expense", rows[1][2])
	require.NoError(t, mock.ExpectationsWereMet())
}
