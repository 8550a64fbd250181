package handlers

import (
	"errors"
	"time"

	"paydesk/attendance"
	"paydesk/types"
	"paydesk/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CheckInRequest struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
}

func CheckIn(c *fiber.Ctx) error {
	orgID, userID := orgScope(c)

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	session, err := Attendance.CheckIn(c.Context(), orgID, userID, req.Latitude, req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrAlreadyCheckedIn),
			errors.Is(err, attendance.ErrOutsideGeofence),
			errors.Is(err, attendance.ErrNoOffices):
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		default:
			utils.Logger.Error("Check-in failed", zap.String("employee_id", userID), zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Check-in successful",
		Data:    session,
	})
}

func CheckOut(c *fiber.Ctx) error {
	orgID, userID := orgScope(c)

	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	session, err := Attendance.CheckOut(c.Context(), orgID, userID, req.Latitude, req.Longitude)
	if err != nil {
		if errors.Is(err, attendance.ErrNoActiveSession) {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		utils.Logger.Error("Check-out failed", zap.String("employee_id", userID), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Check-out successful",
		Data:    session,
	})
}

// GetTodayAttendance lists the organization's sessions since midnight.
func GetTodayAttendance(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var sessions []map[string]interface{}
	err := DB.Table("attendances").
		Select("attendances.*, employees.full_name, employees.department").
		Joins("LEFT JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.organization_id = ? AND attendances.check_in_time >= ?", orgID, startOfDay).
		Order("attendances.check_in_time").
		Find(&sessions).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch attendance", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    sessions,
	})
}
