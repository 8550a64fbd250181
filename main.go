package main

import (
	"log"

	"paydesk/attendance"
	"paydesk/config"
	"paydesk/handlers"
	"paydesk/jobs"
	"paydesk/middleware"
	"paydesk/models"
	"paydesk/payroll"
	"paydesk/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	utils.InitLogger()
	defer utils.Logger.Sync()

	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Employee{},
		&models.Payslip{},
		&models.UploadHistory{},
		&models.OfficeLocation{},
		&models.Attendance{},
		&models.LeaveRequest{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	payrollService := payroll.NewService(payroll.NewGormStore(db), utils.Logger)
	attendanceService := attendance.NewService(db, utils.Logger)
	handlers.InitHandlers(db, payrollService, attendanceService)

	if config.AppConfig.CronEnabled {
		cleaner := jobs.NewCleaner(db, utils.Logger, config.AppConfig.HistoryRetentionDays)
		if err := cleaner.Start(); err != nil {
			log.Fatal("Failed to start cleanup job:", err)
		}
		defer cleaner.Stop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // payroll spreadsheets can be large
	})

	api := app.Group("/api", middleware.RequireAuth)

	// Employees
	api.Get("/employees", handlers.GetAllEmployees)
	api.Post("/employees", middleware.RequireHR, handlers.AddEmployee)
	api.Patch("/employees/:id", handlers.UpdateEmployee)
	api.Delete("/employees/:id", middleware.RequireHR, handlers.RemoveEmployee)

	// Payroll
	api.Post("/payroll/upload", middleware.RequireHR, handlers.UploadPayroll)
	api.Get("/payroll/history", middleware.RequireHR, handlers.GetUploadHistory)
	api.Get("/payslips", handlers.GetPayslips)
	api.Post("/payslips/:id/approve", middleware.RequireHR, handlers.ApprovePayslip)

	// Attendance
	api.Post("/attendance/check-in", handlers.CheckIn)
	api.Post("/attendance/check-out", handlers.CheckOut)
	api.Get("/attendance/today", middleware.RequireHR, handlers.GetTodayAttendance)

	// Leave
	api.Post("/leaves", handlers.RequestLeave)
	api.Get("/leaves", middleware.RequireHR, handlers.GetLeaveRequests)
	api.Post("/leaves/:id/review", middleware.RequireHR, handlers.ReviewLeave)

	// Dashboard
	api.Get("/dashboard", middleware.RequireHR, handlers.GetDashboard)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
