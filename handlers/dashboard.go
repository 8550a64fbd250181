package handlers

import (
	"paydesk/models"
	"paydesk/types"
	"paydesk/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Dashboard & Overview
type DashboardStats struct {
	TotalEmployees   int64            `json:"total_employees"`
	PresentToday     int64            `json:"present_today"`
	PendingLeaves    int64            `json:"pending_leaves"`
	MonthlyPayroll   []MonthlyPayroll `json:"monthly_payroll"`
	DepartmentCounts []DepartmentStat `json:"department_counts"`
}

type MonthlyPayroll struct {
	Month           string  `json:"month"`
	PayslipCount    int64   `json:"payslip_count"`
	GrossTotal      float64 `json:"gross_total"`
	DeductionsTotal float64 `json:"deductions_total"`
	NetTotal        float64 `json:"net_total"`
}

type DepartmentStat struct {
	Department    string `json:"department"`
	EmployeeCount int64  `json:"employee_count"`
}

func GetDashboard(c *fiber.Ctx) error {
	orgID, _ := orgScope(c)

	var stats DashboardStats

	if err := DB.Model(&models.Employee{}).
		Where("organization_id = ? AND status = 'active'", orgID).
		Count(&stats.TotalEmployees).Error; err != nil {
		utils.Logger.Error("Failed to count employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if err := DB.Model(&models.Attendance{}).
		Where("organization_id = ? AND DATE(check_in_time) = DATE('now', 'localtime')", orgID).
		Count(&stats.PresentToday).Error; err != nil {
		utils.Logger.Error("Failed to count attendance", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if err := DB.Model(&models.LeaveRequest{}).
		Where("organization_id = ? AND status = 'pending'", orgID).
		Count(&stats.PendingLeaves).Error; err != nil {
		utils.Logger.Error("Failed to count leave requests", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	query := `
		SELECT
			month,
			count(*) as payslip_count,
			sum(gross_salary) as gross_total,
			sum(total_deductions) as deductions_total,
			sum(net_salary) as net_total
		FROM payslips
		WHERE organization_id = ?
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12
	`
	if err := DB.Raw(query, orgID).Scan(&stats.MonthlyPayroll).Error; err != nil {
		utils.Logger.Error("Failed to fetch payroll summary", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if err := DB.Raw(`
		SELECT department, count(*) as employee_count
		FROM employees
		WHERE organization_id = ? AND status = 'active'
		GROUP BY department
		ORDER BY employee_count DESC
	`, orgID).Scan(&stats.DepartmentCounts).Error; err != nil {
		utils.Logger.Error("Failed to fetch department counts", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}
