package api

import (
	"strconv"
	"strings"

	"nativus/database"
	"nativus/middleware"
	"nativus/models"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves task records.
type TaskHandler struct{}

// NewTaskHandler creates the task handler.
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// CreateTaskRequest is the task creation payload. Status defaults to
// "Pending", date to today.
type CreateTaskRequest struct {
	Date       string `json:"date" example:"2024-03-08"`
	Title      string `json:"title" binding:"required" example:"Call back about refund"`
	CustomerID *uint  `json:"customer_id" example:"3"`
	Status     string `json:"status" example:"Pending"`
	Priority   string `json:"priority" example:"High"`
	Note       string `json:"note"`
}

// TaskListRequest carries the task listing filters.
type TaskListRequest struct {
	StartDate    string `form:"start_date" example:"2024-01-01"`
	EndDate      string `form:"end_date" example:"2024-12-31"`
	StatusFilter string `form:"status_filter" example:"Pending"`
}

// Create adds a task
// @Summary Create a task
// @Description Creates a task. A supplied customer_id must resolve to a
// @Description customer owned by the caller.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "task fields"
// @Success 200 {object} Response{data=models.Task} "created"
// @Failure 400 {object} Response "missing title or foreign customer"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "title is required"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		BadRequest(c, "title is required")
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.Where("id = ? AND user_id = ?", *req.CustomerID, userID).First(&customer).Error; err != nil {
			BadRequest(c, "customer does not belong to this account")
			return
		}
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusPending
	}

	task := models.Task{
		UserID:     userID,
		CustomerID: req.CustomerID,
		Date:       parseRecordDate(req.Date),
		Title:      req.Title,
		Status:     status,
		Priority:   req.Priority,
		Note:       req.Note,
	}

	if err := database.DB.Create(&task).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "creating task failed"))
		return
	}

	SuccessWithMessage(c, "task saved", task)
}

// List returns the account's tasks
// @Summary List tasks
// @Description Lists the caller's tasks, newest first. status_filter narrows
// @Description to one of Pending / In Progress / Done; anything else means
// @Description all.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD), inclusive"
// @Param end_date query string false "end date (YYYY-MM-DD), inclusive"
// @Param status_filter query string false "all | Pending | In Progress | Done"
// @Success 200 {object} Response{data=ListResponse} "ok"
// @Failure 401 {object} Response "unauthorized"
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query"))
		return
	}

	f := ResolveListFilter(req.StartDate, req.EndDate, "", req.StatusFilter, models.TaskStatuses())

	query := database.DB.Model(&models.Task{}).Where("user_id = ?", userID)
	query = f.ApplyKind(query, "status")
	query = f.ApplyDateRange(query, "date")

	var tasks []models.Task
	if err := query.Order("date DESC, id DESC").Find(&tasks).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	Success(c, ListResponse{
		Total: int64(len(tasks)),
		List:  tasks,
	})
}

// Delete removes a task
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "task id"
// @Success 200 {object} Response "deleted"
// @Failure 401 {object} Response "unauthorized"
// @Failure 404 {object} Response "no such task for this account"
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return
	}

	var task models.Task
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		NotFound(c, "task not found")
		return
	}

	if err := database.DB.Delete(&task).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "deleting task failed"))
		return
	}

	SuccessWithMessage(c, "task deleted", nil)
}
