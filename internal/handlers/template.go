package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/worklens/work-calendar-api/internal/database"
	"github.com/worklens/work-calendar-api/internal/dto"
	apierrors "github.com/worklens/work-calendar-api/internal/errors"
	"github.com/worklens/work-calendar-api/internal/models"
	"github.com/worklens/work-calendar-api/internal/schedule"
	"github.com/worklens/work-calendar-api/internal/services"
)

type TemplateHandler struct {
	templateService *services.TemplateService
	clock           schedule.Clock
}

func NewTemplateHandler(templateService *services.TemplateService, clock schedule.Clock) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		clock:           clock,
	}
}

// ListTemplates returns all active templates ordered for the template screen
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var templates []models.TaskTemplate
	if err := database.GetDB().
		Preload("Company").
		Preload("WorkItem").
		Where("is_active = ?", true).
		Order("repeat_type ASC, repeat_day ASC").
		Find(&templates).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch templates")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTOs(templates))
}

// CreateTemplate creates a new recurring task template
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	type CreateTemplateRequest struct {
		Name         string  `json:"name" binding:"required"`
		CompanyID    *uint64 `json:"company_id"`
		WorkItemID   uint64  `json:"work_item_id" binding:"required"`
		Description  string  `json:"description"`
		RepeatType   string  `json:"repeat_type" binding:"required"`
		RepeatDay    int     `json:"repeat_day"`
		RepeatMonth  *int    `json:"repeat_month"`
		DurationDays int     `json:"duration_days"`
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "name, work_item_id and repeat_type are required")
		return
	}

	repeatType := models.RepeatType(req.RepeatType)
	if !repeatType.Valid() {
		apierrors.BadRequest(c, "repeat_type must be monthly, quarterly or yearly")
		return
	}
	if repeatType == models.RepeatYearly {
		if req.RepeatMonth == nil || *req.RepeatMonth < 1 || *req.RepeatMonth > 12 {
			apierrors.BadRequest(c, "yearly templates require repeat_month (1-12)")
			return
		}
	}
	if req.RepeatDay < 1 {
		req.RepeatDay = 1
	}
	if req.DurationDays < 1 {
		req.DurationDays = 1
	}

	template := models.TaskTemplate{
		Name:         req.Name,
		CompanyID:    req.CompanyID,
		WorkItemID:   req.WorkItemID,
		Description:  req.Description,
		RepeatType:   repeatType,
		RepeatDay:    req.RepeatDay,
		RepeatMonth:  req.RepeatMonth,
		DurationDays: req.DurationDays,
		IsActive:     true,
	}

	if err := database.GetDB().Create(&template).Error; err != nil {
		apierrors.InternalError(c, "Failed to create template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      template.ID,
		"message": "Template created successfully",
	})
}

// UpdateTemplate updates a template's definition
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	var template models.TaskTemplate
	if err := database.GetDB().First(&template, id).Error; err != nil {
		apierrors.NotFound(c, "Template not found")
		return
	}

	type UpdateTemplateRequest struct {
		Name         *string `json:"name"`
		CompanyID    *uint64 `json:"company_id"`
		WorkItemID   *uint64 `json:"work_item_id"`
		Description  *string `json:"description"`
		RepeatType   *string `json:"repeat_type"`
		RepeatDay    *int    `json:"repeat_day"`
		RepeatMonth  *int    `json:"repeat_month"`
		DurationDays *int    `json:"duration_days"`
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			apierrors.BadRequest(c, "name cannot be empty")
			return
		}
		template.Name = *req.Name
	}
	if req.CompanyID != nil {
		template.CompanyID = req.CompanyID
	}
	if req.WorkItemID != nil {
		template.WorkItemID = *req.WorkItemID
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.RepeatType != nil {
		repeatType := models.RepeatType(*req.RepeatType)
		if !repeatType.Valid() {
			apierrors.BadRequest(c, "repeat_type must be monthly, quarterly or yearly")
			return
		}
		template.RepeatType = repeatType
	}
	if req.RepeatDay != nil && *req.RepeatDay >= 1 {
		template.RepeatDay = *req.RepeatDay
	}
	if req.RepeatMonth != nil {
		template.RepeatMonth = req.RepeatMonth
	}
	if req.DurationDays != nil && *req.DurationDays >= 1 {
		template.DurationDays = *req.DurationDays
	}
	if template.RepeatType == models.RepeatYearly {
		if template.RepeatMonth == nil || *template.RepeatMonth < 1 || *template.RepeatMonth > 12 {
			apierrors.BadRequest(c, "yearly templates require repeat_month (1-12)")
			return
		}
	}

	if err := database.GetDB().Save(&template).Error; err != nil {
		apierrors.InternalError(c, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Template updated successfully",
	})
}

// DeleteTemplate soft deletes a template; tasks already generated from it are
// untouched
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	result := database.GetDB().
		Model(&models.TaskTemplate{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Template not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Template deleted successfully",
	})
}

// Generate creates one task from a template on demand, outside the
// generation ledger
func (h *TemplateHandler) Generate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template ID")
		return
	}

	type GenerateRequest struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}

	var req GenerateRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}
	if req.Month < 0 || req.Month > 12 {
		apierrors.BadRequest(c, "Invalid month")
		return
	}

	result, err := h.templateService.GenerateFromTemplate(id, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			apierrors.NotFound(c, "Template not found")
			return
		}
		apierrors.InternalError(c, "Failed to generate task from template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    result,
		"message": "Task generated from template",
	})
}

// AutoGenerate runs the batch sweep for the requested month, defaulting to
// the current one
func (h *TemplateHandler) AutoGenerate(c *gin.Context) {
	type AutoGenerateRequest struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}

	var req AutoGenerateRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}
	if req.Month < 0 || req.Month > 12 {
		apierrors.BadRequest(c, "Invalid month")
		return
	}

	year, month := req.Year, req.Month
	if year == 0 || month == 0 {
		now := h.clock.Now()
		year = now.Year()
		month = int(now.Month())
	}

	generated, err := h.templateService.GenerateMonthly(year, month)
	if err != nil {
		apierrors.InternalError(c, "Failed to auto-generate tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"generated": len(generated),
		"tasks":     generated,
		"message":   "Auto-generation completed",
	})
}
