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

type CompanyHandler struct{}

func NewCompanyHandler() *CompanyHandler {
	return &CompanyHandler{}
}

// ListCompanies returns all active companies ordered by name
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var companies []models.Company
	if err := database.GetDB().
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&companies).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch companies")
		return
	}

	c.JSON(http.StatusOK, companies)
}

// CreateCompany creates a new company
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	type CreateCompanyRequest struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code"`
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Company name is required")
		return
	}

	company := models.Company{
		Name:     req.Name,
		Code:     req.Code,
		IsActive: true,
	}

	if err := database.GetDB().Create(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierrors.BadRequest(c, "Company name already exists")
			return
		}
		apierrors.InternalError(c, "Failed to create company")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      company.ID,
		"message": "Company created successfully",
	})
}

// UpdateCompany updates a company's name and code
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	type UpdateCompanyRequest struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code"`
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result := database.GetDB().
		Model(&models.Company{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name": req.Name,
			"code": req.Code,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			apierrors.BadRequest(c, "Company name already exists")
			return
		}
		apierrors.InternalError(c, "Failed to update company")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Company updated successfully",
	})
}

// DeleteCompany soft deletes a company by clearing its active flag
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	result := database.GetDB().
		Model(&models.Company{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete company")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Company deleted successfully",
	})
}
