package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/worklens/work-calendar-api/internal/database"
	apierrors "github.com/worklens/work-calendar-api/internal/errors"
	"github.com/worklens/work-calendar-api/internal/models"
	"gorm.io/gorm"
)

type WorkItemHandler struct{}

func NewWorkItemHandler() *WorkItemHandler {
	return &WorkItemHandler{}
}

// ListWorkItems returns all active work items ordered by category, then name
func (h *WorkItemHandler) ListWorkItems(c *gin.Context) {
	var workItems []models.WorkItem
	if err := database.GetDB().
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&workItems).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch work items")
		return
	}

	c.JSON(http.StatusOK, workItems)
}

// CreateWorkItem creates a new work item
func (h *WorkItemHandler) CreateWorkItem(c *gin.Context) {
	type CreateWorkItemRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	var req CreateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Work item name is required")
		return
	}

	workItem := models.WorkItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    true,
	}

	if err := database.GetDB().Create(&workItem).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierrors.BadRequest(c, "Work item name already exists")
			return
		}
		apierrors.InternalError(c, "Failed to create work item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      workItem.ID,
		"message": "Work item created successfully",
	})
}

// UpdateWorkItem updates a work item
func (h *WorkItemHandler) UpdateWorkItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid work item ID")
		return
	}

	type UpdateWorkItemRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	var req UpdateWorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result := database.GetDB().
		Model(&models.WorkItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"category":    req.Category,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			apierrors.BadRequest(c, "Work item name already exists")
			return
		}
		apierrors.InternalError(c, "Failed to update work item")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Work item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Work item updated successfully",
	})
}

// DeleteWorkItem soft deletes a work item
func (h *WorkItemHandler) DeleteWorkItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid work item ID")
		return
	}

	result := database.GetDB().
		Model(&models.WorkItem{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete work item")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Work item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Work item deleted successfully",
	})
}
