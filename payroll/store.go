package payroll

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paydesk/models"
)

// ErrNotFound is returned by Store lookups when no matching record exists.
var ErrNotFound = errors.New("record not found")

// Store is the persistence surface the pipeline writes through. Injected so
// the pipeline runs against a fake store in tests.
type Store interface {
	FindEmployeeByEmail(ctx context.Context, orgID, email string) (*models.Employee, error)
	FindPayslip(ctx context.Context, orgID, employeeID, month string) (*models.Payslip, error)
	// SavePayslips commits one chunk atomically: either every record in the
	// slice is persisted or none is.
	SavePayslips(ctx context.Context, payslips []*models.Payslip) error
	CreateUploadHistory(ctx context.Context, record *models.UploadHistory) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindEmployeeByEmail(ctx context.Context, orgID, email string) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND email = ?", orgID, email).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *GormStore) FindPayslip(ctx context.Context, orgID, employeeID, month string) (*models.Payslip, error) {
	var payslip models.Payslip
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND employee_id = ? AND month = ?", orgID, employeeID, month).
		First(&payslip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

// SavePayslips commits the chunk as one multi-row upsert keyed by document
// id: records that resolved to an existing payslip overwrite it in place,
// fresh ids insert. A concurrent upload that slipped past the duplicate
// lookup fails the chunk on the (organization, employee, month) unique
// index instead of creating a second document.
func (s *GormStore) SavePayslips(ctx context.Context, payslips []*models.Payslip) error {
	if len(payslips) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"year", "basic_salary", "hra", "allowances", "bonus",
			"tax", "provident_fund", "insurance",
			"gross_salary", "total_deductions", "net_salary",
			"status", "batch_id", "source_file", "generated_by", "updated_at",
		}),
	}).Create(&payslips).Error
}

func (s *GormStore) CreateUploadHistory(ctx context.Context, record *models.UploadHistory) error {
	return s.db.WithContext(ctx).Create(record).Error
}
