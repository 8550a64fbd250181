package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paydesk/models"
)

// chunkSize bounds one atomic commit, chosen to stay under the backing
// store's per-transaction write ceiling.
const chunkSize = 500

// BatchMeta carries the lineage of one upload run.
type BatchMeta struct {
	BatchID        string
	OrganizationID string
	UploadedBy     string
	FileName       string
}

// BatchResult summarizes the persistence phase. TotalRows counts only the
// records handed to the writer, i.e. rows that passed validation.
type BatchResult struct {
	TotalRows    int
	SuccessCount int
	FailedCount  int
	Errors       []RowError
}

type batchWriter struct {
	store Store
	log   *zap.Logger
}

// write resolves, deduplicates and persists the materialized records in
// input order, committing in atomic chunks. Per-record resolution failures
// become RowError entries and never abort the run; a chunk commit failure
// aborts the remainder of the upload and no history record is written.
// Chunks already committed stay committed.
func (w *batchWriter) write(ctx context.Context, records []Record, meta BatchMeta) (BatchResult, error) {
	result := BatchResult{TotalRows: len(records)}

	pending := make([]*models.Payslip, 0, chunkSize)
	pendingRows := 0
	// staged tracks (employee, month) tuples already in the open chunk so a
	// duplicate row in the same file overwrites the staged write instead of
	// tripping the unique index at commit time.
	staged := make(map[string]int, chunkSize)

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := w.store.SavePayslips(ctx, pending); err != nil {
			w.log.Error("payslip chunk commit failed",
				zap.String("batch_id", meta.BatchID),
				zap.Int("chunk_size", len(pending)),
				zap.Error(err))
			return err
		}
		result.SuccessCount += pendingRows
		pending = make([]*models.Payslip, 0, chunkSize)
		pendingRows = 0
		staged = make(map[string]int, chunkSize)
		return nil
	}

	for _, record := range records {
		payslip, err := w.resolve(ctx, record, meta)
		if err != nil {
			message := err.Error()
			if errors.Is(err, ErrNotFound) {
				message = "User not found"
			}
			result.FailedCount++
			result.Errors = append(result.Errors, RowError{
				Row:   record.RowNumber,
				Email: record.Email,
				Error: message,
			})
			continue
		}

		key := payslip.EmployeeID + "|" + payslip.Month
		if i, ok := staged[key]; ok {
			payslip.ID = pending[i].ID
			payslip.CreatedAt = pending[i].CreatedAt
			pending[i] = payslip
		} else {
			staged[key] = len(pending)
			pending = append(pending, payslip)
		}
		pendingRows++

		if len(pending) == chunkSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}
	if err := flush(); err != nil {
		return result, err
	}

	history, err := w.buildHistory(records, result, meta)
	if err != nil {
		return result, err
	}
	if err := w.store.CreateUploadHistory(ctx, history); err != nil {
		return result, err
	}
	return result, nil
}

// resolve looks up the target employee by (email, organization) and reuses
// the identity of any existing payslip for the same (employee, month) so a
// re-upload updates in place instead of inserting a duplicate.
func (w *batchWriter) resolve(ctx context.Context, record Record, meta BatchMeta) (*models.Payslip, error) {
	employee, err := w.store.FindEmployeeByEmail(ctx, meta.OrganizationID, record.Email)
	if err != nil {
		return nil, err
	}

	payslip := record.Payslip
	payslip.EmployeeID = employee.ID
	payslip.BatchID = meta.BatchID
	payslip.SourceFile = meta.FileName
	payslip.GeneratedBy = meta.UploadedBy

	existing, err := w.store.FindPayslip(ctx, meta.OrganizationID, employee.ID, payslip.Month)
	switch {
	case err == nil:
		payslip.ID = existing.ID
		payslip.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		payslip.ID = uuid.New().String()
	default:
		return nil, err
	}
	return &payslip, nil
}

func (w *batchWriter) buildHistory(records []Record, result BatchResult, meta BatchMeta) (*models.UploadHistory, error) {
	month := ""
	if len(records) > 0 {
		month = records[0].Payslip.Month
	}
	rowErrors := result.Errors
	if rowErrors == nil {
		rowErrors = []RowError{}
	}
	encoded, err := json.Marshal(rowErrors)
	if err != nil {
		return nil, err
	}
	return &models.UploadHistory{
		ID:             uuid.New().String(),
		BatchID:        meta.BatchID,
		OrganizationID: meta.OrganizationID,
		UploadedBy:     meta.UploadedBy,
		FileName:       meta.FileName,
		Month:          month,
		TotalRows:      result.TotalRows,
		SuccessCount:   result.SuccessCount,
		FailedCount:    result.FailedCount,
		Errors:         string(encoded),
		Status:         "completed",
		ProcessedAt:    time.Now(),
	}, nil
}
