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

type AddEmployeeRequest struct {
	FullName     string  `json:"full_name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	EmployeeCode string  `json:"employee_code"`
	PhoneNumber  string  `json:"phone_number"`
	Position     string  `json:"position"`
	Department   string  `json:"department"`
	Salary       float64 `json:"salary" validate:"gte=0"`
}

// EmployeeFilters represents the available filter options
type EmployeeFilters struct {
	Department string  `query:"department"`
	Status     string  `query:"status"` // active, inactive
	SalaryFrom float64 `query:"salary_from"`
	SalaryTo   float64 `query:"salary_to"`
	JoinedFrom string  `query:"joined_from"` // Format: YYYY-MM-DD
	JoinedTo   string  `query:"joined_to"`   // Format: YYYY-MM-DD
}

func GetAllEmployees(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	var filters EmployeeFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid filter parameters",
		})
	}

	query := DB.Model(&models.Employee{}).Where("organization_id = ?", orgID)

	// Apply department filter
	if filters.Department != "" {
		query = query.Where("department = ?", filters.Department)
	}

	// Apply status filter
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	// Apply salary range filter
	if filters.SalaryFrom > 0 {
		query = query.Where("salary >= ?", filters.SalaryFrom)
	}
	if filters.SalaryTo > 0 {
		query = query.Where("salary <= ?", filters.SalaryTo)
	}

	// Apply joining date range filter
	if filters.JoinedFrom != "" {
		query = query.Where("DATE(joined_at) >= ?", filters.JoinedFrom)
	}
	if filters.JoinedTo != "" {
		query = query.Where("DATE(joined_at) <= ?", filters.JoinedTo)
	}

	var employees []models.Employee
	if err := query.Order("full_name").Find(&employees).Error; err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func AddEmployee(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Email == "" || req.FullName == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "full_name and email are required",
		})
	}

	employee := models.Employee{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Email:          req.Email,
		EmployeeCode:   req.EmployeeCode,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		Position:       req.Position,
		Department:     req.Department,
		Salary:         req.Salary,
		Status:         "active",
		JoinedAt:       time.Now(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := DB.Create(&employee).Error; err != nil {
		utils.Logger.Error("Failed to create employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)
	role, _ := c.Locals("role").(string)
	id := c.Params("id")

	var updateData map[string]interface{}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	// Salary changes require an HR role; identity fields never change here
	if _, exists := updateData["salary"]; exists && role != "hr_manager" && role != "root" {
		return c.Status(403).JSON(types.APIResponse{
			Success: false,
			Error:   "Only HR can update salary",
		})
	}
	for _, field := range []string{"id", "organization_id", "email", "created_at"} {
		delete(updateData, field)
	}

	tx := DB.Begin()

	var employee models.Employee
	if err := tx.First(&employee, "id = ? AND organization_id = ?", id, orgID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee not found",
			})
		}
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if err := tx.Model(&employee).Updates(updateData).Error; err != nil {
		tx.Rollback()
		utils.Logger.Error("Failed to update employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	tx.Commit()

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}

// RemoveEmployee deactivates the record; payslips keep their history.
func RemoveEmployee(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)
	id := c.Params("id")

	result := DB.Model(&models.Employee{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Updates(map[string]interface{}{"status": "inactive", "updated_at": time.Now()})
	if result.Error != nil {
		utils.Logger.Error("Failed to deactivate employee", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee deactivated",
	})
}
