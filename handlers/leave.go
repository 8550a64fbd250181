package handlers

import (
	"errors"
	"time"

	"paydesk/models"
	"paydesk/types"
	"paydesk/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeaveRequestInput struct {
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
	Type      string `json:"type" validate:"required"`       // vacation, sick, unpaid
	Reason    string `json:"reason"`
}

type ReviewLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func RequestLeave(c *fiber.Ctx) error {
	orgID, userID := orgScope(c)

	var req LeaveRequestInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid start date format. Use YYYY-MM-DD",
		})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid end date format. Use YYYY-MM-DD",
		})
	}
	if end.Before(start) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "end_date must not be before start_date",
		})
	}

	leave := models.LeaveRequest{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		EmployeeID:     userID,
		StartDate:      start,
		EndDate:        end,
		Type:           req.Type,
		Reason:         req.Reason,
		Status:         "pending",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := DB.Create(&leave).Error; err != nil {
		utils.Logger.Error("Failed to create leave request", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave request submitted",
		Data:    leave,
	})
}

func GetLeaveRequests(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	// Get query parameters
	status := c.Query("status")         // pending, approved, rejected, or empty for all
	leaveType := c.Query("type")        // vacation, sick, unpaid, or empty for all
	department := c.Query("department") // department filter
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	query := DB.Table("leave_requests").
		Select("leave_requests.*, employees.full_name, employees.department").
		Joins("LEFT JOIN employees ON employees.id = leave_requests.employee_id").
		Where("leave_requests.organization_id = ?", orgID)

	if status != "" {
		query = query.Where("leave_requests.status = ?", status)
	}
	if leaveType != "" {
		query = query.Where("leave_requests.type = ?", leaveType)
	}
	if department != "" {
		query = query.Where("employees.department = ?", department)
	}
	if startDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid start date format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("leave_requests.start_date >= ?", start)
	}
	if endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid end date format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("leave_requests.end_date <= ?", end)
	}

	var requests []map[string]interface{}
	if err := query.Order("leave_requests.created_at DESC").Find(&requests).Error; err != nil {
		utils.Logger.Error("Failed to fetch leave requests", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    requests,
	})
}

func ReviewLeave(c *fiber.Ctx) error {
	orgID, userID := orgScope(c)
	id := c.Params("id")

	var req ReviewLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Status != "approved" && req.Status != "rejected" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "status must be approved or rejected",
		})
	}

	var leave models.LeaveRequest
	err := DB.First(&leave, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Leave request not found",
			})
		}
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if leave.Status != "pending" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Leave request already reviewed",
		})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      req.Status,
		"reviewed_by": userID,
		"reviewed_at": now,
		"updated_at":  now,
	}
	if err := DB.Model(&leave).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to review leave request", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave request " + req.Status,
		Data:    leave,
	})
}
