package handlers

import (
	"errors"

	"paydesk/models"
	"paydesk/payroll"
	"paydesk/types"
	"paydesk/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayslipFilters represents the available filter options
type PayslipFilters struct {
	EmployeeID string `query:"employee_id"`
	Month      string `query:"month"` // YYYY-MM
	Status     string `query:"status"`
}

// UploadPayroll ingests a payroll spreadsheet for the caller's organization.
// The response body is the pipeline's own result object.
func UploadPayroll(c *fiber.Ctx) error {
	orgID, userID := orgScope(c)
	if orgID == "" {
		return c.Status(403).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrUnauthorized,
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "No file uploaded",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Could not read uploaded file",
		})
	}
	defer file.Close()

	result, err := Payroll.ProcessUpload(c.Context(), payroll.UploadInput{
		File:           file,
		FileName:       fileHeader.Filename,
		OrganizationID: orgID,
		UploadedBy:     userID,
	})
	if err != nil {
		if errors.Is(err, payroll.ErrBadWorkbook) || errors.Is(err, payroll.ErrNoRows) {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		utils.Logger.Error("Payroll upload failed",
			zap.String("org_id", orgID),
			zap.String("file", fileHeader.Filename),
			zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(result)
}

func GetPayslips(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	var filters PayslipFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid filter parameters",
		})
	}

	query := DB.Model(&models.Payslip{}).Where("organization_id = ?", orgID)
	if filters.EmployeeID != "" {
		query = query.Where("employee_id = ?", filters.EmployeeID)
	}
	if filters.Month != "" {
		query = query.Where("month = ?", filters.Month)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var payslips []models.Payslip
	if err := query.Order("month DESC").Find(&payslips).Error; err != nil {
		utils.Logger.Error("Failed to fetch payslips", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    payslips,
	})
}

// ApprovePayslip flips a generated payslip to approved. Status mutations
// happen outside the ingestion pipeline.
func ApprovePayslip(c *fiber.Ctx) error {
	orgID, userID := orgScope(c)
	id := c.Params("id")

	var payslip models.Payslip
	err := DB.Where("id = ? AND organization_id = ?", id, orgID).First(&payslip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Payslip not found",
			})
		}
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if err := DB.Model(&payslip).Updates(map[string]interface{}{"status": "approved"}).Error; err != nil {
		utils.Logger.Error("Failed to approve payslip",
			zap.String("payslip_id", id),
			zap.String("approved_by", userID),
			zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Payslip approved",
		Data:    payslip,
	})
}

func GetUploadHistory(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	var history []models.UploadHistory
	err := DB.Where("organization_id = ?", orgID).
		Order("processed_at DESC").
		Limit(100).
		Find(&history).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch upload history", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    history,
	})
}
