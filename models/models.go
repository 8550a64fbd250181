package models

import (
	"time"
)

type Organization struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Status    string    `gorm:"not null;default:'active'" json:"status"` // active, suspended
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type Employee struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	OrganizationID string    `gorm:"not null;uniqueIndex:idx_org_email" json:"organization_id"`
	Email          string    `gorm:"not null;uniqueIndex:idx_org_email" json:"email"`
	EmployeeCode   string    `json:"employee_code"`
	FullName       string    `json:"full_name"`
	PhoneNumber    string    `json:"phone_number"`
	Department     string    `json:"department"` // IT, HR, Finance, etc.
	Position       string    `json:"position"`
	Salary         float64   `json:"salary"`
	LeaveBalance   int       `json:"leave_balance"`
	Status         string    `gorm:"not null;default:'active'" json:"status"` // active, inactive
	JoinedAt       time.Time `json:"joined_at"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// Payslip is the persisted unit of one employee's pay for one month.
// At most one row exists per (organization, employee, month); re-uploads
// for the same tuple overwrite in place.
type Payslip struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	OrganizationID  string    `gorm:"not null;uniqueIndex:idx_org_emp_month" json:"organization_id"`
	EmployeeID      string    `gorm:"not null;uniqueIndex:idx_org_emp_month" json:"employee_id"`
	Month           string    `gorm:"not null;uniqueIndex:idx_org_emp_month" json:"month"` // YYYY-MM
	Year            int       `json:"year"`
	BasicSalary     float64   `gorm:"column:basic_salary" json:"basicSalary"`
	HRA             float64   `gorm:"column:hra" json:"hra"`
	Allowances      float64   `gorm:"column:allowances" json:"allowances"`
	Bonus           float64   `gorm:"column:bonus" json:"bonus"`
	Tax             float64   `gorm:"column:tax" json:"tax"`
	ProvidentFund   float64   `gorm:"column:provident_fund" json:"providentFund"`
	Insurance       float64   `gorm:"column:insurance" json:"insurance"`
	GrossSalary     float64   `gorm:"column:gross_salary" json:"grossSalary"`
	TotalDeductions float64   `gorm:"column:total_deductions" json:"totalDeductions"`
	NetSalary       float64   `gorm:"column:net_salary" json:"netSalary"`
	Status          string    `gorm:"not null;default:'generated'" json:"status"` // generated, approved
	BatchID         string    `gorm:"index" json:"batch_id"`
	SourceFile      string    `json:"source_file"`
	GeneratedBy     string    `json:"generated_by"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// UploadHistory is the audit record of one ingestion run. Write-once.
type UploadHistory struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	BatchID        string    `gorm:"not null;uniqueIndex" json:"batch_id"`
	OrganizationID string    `gorm:"not null;index" json:"organization_id"`
	UploadedBy     string    `json:"uploaded_by"`
	FileName       string    `json:"file_name"`
	Month          string    `json:"month"` // inferred from the first materialized row
	TotalRows      int       `json:"total_rows"`
	SuccessCount   int       `json:"success_count"`
	FailedCount    int       `json:"failed_count"`
	Errors         string    `gorm:"type:text" json:"errors"` // JSON-encoded row errors
	Status         string    `gorm:"not null;default:'completed'" json:"status"`
	ProcessedAt    time.Time `json:"processed_at"`
}

type OfficeLocation struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	OrganizationID string    `gorm:"not null;index" json:"organization_id"`
	Name           string    `gorm:"not null" json:"name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	RadiusMeters   float64   `json:"radius_meters"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

type Attendance struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	OrganizationID string     `gorm:"not null;index" json:"organization_id"`
	EmployeeID     string     `gorm:"not null;index" json:"employee_id"`
	LocationID     string     `json:"location_id"`
	CheckInTime    time.Time  `json:"check_in_time"`
	CheckInLat     float64    `json:"check_in_lat"`
	CheckInLng     float64    `json:"check_in_lng"`
	CheckOutTime   *time.Time `json:"check_out_time,omitempty"`
	CheckOutLat    *float64   `json:"check_out_lat,omitempty"`
	CheckOutLng    *float64   `json:"check_out_lng,omitempty"`
	WorkedMinutes  float64    `json:"worked_minutes"`
	Status         string     `gorm:"not null;default:'open'" json:"status"` // open, closed, auto_closed
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

type LeaveRequest struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	OrganizationID string     `gorm:"not null;index" json:"organization_id"`
	EmployeeID     string     `gorm:"not null;index" json:"employee_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Type           string     `json:"type"` // vacation, sick, unpaid, etc.
	Reason         string     `json:"reason"`
	Status         string     `gorm:"not null;default:'pending'" json:"status"` // pending, approved, rejected
	ReviewedBy     *string    `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}
