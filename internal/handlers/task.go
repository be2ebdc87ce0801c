package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/worklens/work-calendar-api/internal/database"
	"github.com/worklens/work-calendar-api/internal/dto"
	apierrors "github.com/worklens/work-calendar-api/internal/errors"
	"github.com/worklens/work-calendar-api/internal/models"
	"github.com/worklens/work-calendar-api/internal/schedule"
	"github.com/worklens/work-calendar-api/internal/services"
	"github.com/worklens/work-calendar-api/internal/utils"
)

type TaskHandler struct {
	aiService *services.AIService
}

func NewTaskHandler(aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		aiService: aiService,
	}
}

// ListTasks returns tasks filtered by date range, status, and company,
// paginated
func (h *TaskHandler) ListTasks(c *gin.Context) {
	query := database.GetDB().
		Model(&models.Task{}).
		Preload("Company").
		Preload("WorkItem")

	start := c.Query("start")
	end := c.Query("end")
	if start != "" && end != "" {
		query = query.Where("fill_date BETWEEN ? AND ?", start, end)
	}

	if status := c.Query("status"); status != "" {
		if !models.TaskStatus(status).Valid() {
			apierrors.BadRequest(c, "Invalid status value")
			return
		}
		query = query.Where("status = ?", status)
	}

	if companyIDStr := c.Query("company_id"); companyIDStr != "" {
		companyID, err := strconv.ParseUint(companyIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid company_id")
			return
		}
		query = query.Where("company_id = ?", companyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count tasks")
		return
	}

	params := utils.GetPaginationParams(c)

	var tasks []models.Task
	if err := query.
		Order("fill_date ASC, created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// WeekTasks returns the tasks in the Sunday-to-Saturday week containing the
// given date
func (h *TaskHandler) WeekTasks(c *gin.Context) {
	target, err := time.Parse(schedule.DateLayout, c.Param("date"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	weekStart := target.AddDate(0, 0, -int(target.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	tasks, err := h.tasksBetween(weekStart.Format(schedule.DateLayout), weekEnd.Format(schedule.DateLayout))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// MonthTasks returns the tasks in the given calendar month
func (h *TaskHandler) MonthTasks(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		apierrors.BadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		apierrors.BadRequest(c, "Invalid month")
		return
	}

	start, end := schedule.MonthRange(year, month)
	tasks, err := h.tasksBetween(start, end)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		FillDate             string  `json:"fill_date" binding:"required"`
		ExpectedCompleteDate *string `json:"expected_complete_date"`
		CompanyID            *uint64 `json:"company_id"`
		WorkItemID           uint64  `json:"work_item_id" binding:"required"`
		Description          string  `json:"description"`
		Status               string  `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "fill_date and work_item_id are required")
		return
	}

	if _, err := time.Parse(schedule.DateLayout, req.FillDate); err != nil {
		apierrors.BadRequest(c, "Invalid fill_date, expected YYYY-MM-DD")
		return
	}

	status := models.TaskStatusPending
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status value")
			return
		}
	}

	task := models.Task{
		FillDate:             req.FillDate,
		ExpectedCompleteDate: req.ExpectedCompleteDate,
		CompanyID:            req.CompanyID,
		WorkItemID:           req.WorkItemID,
		Description:          req.Description,
		Status:               status,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      task.ID,
		"message": "Task created successfully",
	})
}

// UpdateTask updates the provided fields of an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, id).Error; err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	type UpdateTaskRequest struct {
		FillDate             *string `json:"fill_date"`
		ExpectedCompleteDate *string `json:"expected_complete_date"`
		CompanyID            *uint64 `json:"company_id"`
		WorkItemID           *uint64 `json:"work_item_id"`
		Description          *string `json:"description"`
		Status               *string `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.FillDate != nil {
		if _, err := time.Parse(schedule.DateLayout, *req.FillDate); err != nil {
			apierrors.BadRequest(c, "Invalid fill_date, expected YYYY-MM-DD")
			return
		}
		task.FillDate = *req.FillDate
	}
	if req.ExpectedCompleteDate != nil {
		task.ExpectedCompleteDate = req.ExpectedCompleteDate
	}
	if req.CompanyID != nil {
		task.CompanyID = req.CompanyID
	}
	if req.WorkItemID != nil {
		task.WorkItemID = *req.WorkItemID
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status value")
			return
		}
		task.Status = status
	}

	if err := database.GetDB().Save(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully",
	})
}

// UpdateTaskStatus updates a task's status, stamping completed_at when the
// task moves to completed
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "status is required")
		return
	}

	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		apierrors.BadRequest(c, "Invalid status value")
		return
	}

	var completedAt *time.Time
	if status == models.TaskStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	result := database.GetDB().
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to update status")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated successfully",
	})
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	result := database.GetDB().Delete(&models.Task{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

// ExtractTasks turns free text into task drafts using AI. Drafts are returned
// for review, not persisted.
func (h *TaskHandler) ExtractTasks(c *gin.Context) {
	type ExtractTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req ExtractTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "text is required")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	ctx := context.Background()
	extracted, err := h.aiService.ExtractTasksFromText(ctx, req.Text)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Failed to extract tasks: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": extracted,
	})
}

func (h *TaskHandler) tasksBetween(start, end string) ([]models.Task, error) {
	var tasks []models.Task
	err := database.GetDB().
		Preload("Company").
		Preload("WorkItem").
		Where("fill_date BETWEEN ? AND ?", start, end).
		Order("fill_date ASC, created_at DESC").
		Find(&tasks).Error
	return tasks, err
}
