package handlers

import (
	"paydesk/attendance"
	"paydesk/payroll"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	DB         *gorm.DB
	Payroll    *payroll.Service
	Attendance *attendance.Service
)

func InitHandlers(db *gorm.DB, payrollSvc *payroll.Service, attendanceSvc *attendance.Service) {
	DB = db
	Payroll = payrollSvc
	Attendance = attendanceSvc
}

// orgScope pulls the tenant and caller identity set by the auth middleware.
func orgScope(c *fiber.Ctx) (orgID, userID string) {
	orgID, _ = c.Locals("org_id").(string)
	userID, _ = c.Locals("user_id").(string)
	return orgID, userID
}
