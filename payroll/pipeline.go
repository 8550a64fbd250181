package payroll

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service runs the payroll ingestion pipeline: spreadsheet → normalized
// rows → validated rows → payslip documents → chunked writes + one upload
// history record.
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

type UploadInput struct {
	File           io.Reader
	FileName       string
	OrganizationID string
	UploadedBy     string
}

// UploadResult is the programmatic outcome of one upload returned to the
// caller. Errors holds both validation rejects and per-row write failures.
type UploadResult struct {
	Success      bool       `json:"success"`
	BatchID      string     `json:"batchId"`
	TotalRows    int        `json:"totalRows"`
	ValidRows    int        `json:"validRows"`
	InvalidRows  int        `json:"invalidRows"`
	SuccessCount int        `json:"successCount"`
	FailedCount  int        `json:"failedCount"`
	Errors       []RowError `json:"errors"`
}

// ProcessUpload runs one upload end to end. Fatal errors (unreadable or
// undecodable file, zero data rows, chunk commit failure) return a non-nil
// error; everything else is recovered into per-row entries in the result.
func (s *Service) ProcessUpload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	rows, err := ReadWorkbook(in.File, in.FileName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	normalized := make([]NormalizedRow, len(rows))
	for i, row := range rows {
		normalized[i] = Normalize(row)
	}
	valid, invalid := Validate(normalized)

	records := make([]Record, 0, len(valid))
	for _, row := range valid {
		records = append(records, Materialize(row, in.OrganizationID, in.UploadedBy))
	}

	result := &UploadResult{
		BatchID:     uuid.New().String(),
		TotalRows:   len(rows),
		ValidRows:   len(valid),
		InvalidRows: len(invalid),
		Errors:      make([]RowError, 0, len(invalid)),
	}
	for _, row := range invalid {
		result.Errors = append(result.Errors, RowError{
			Row:   row.RowNumber,
			Email: row.Row[FieldEmail],
			Error: strings.Join(row.Errors, "; "),
		})
	}

	writer := &batchWriter{store: s.store, log: s.log}
	batch, err := writer.write(ctx, records, BatchMeta{
		BatchID:        result.BatchID,
		OrganizationID: in.OrganizationID,
		UploadedBy:     in.UploadedBy,
		FileName:       in.FileName,
	})
	if err != nil {
		return nil, err
	}

	result.SuccessCount = batch.SuccessCount
	result.FailedCount = batch.FailedCount
	result.Errors = append(result.Errors, batch.Errors...)
	result.Success = true

	s.log.Info("payroll upload processed",
		zap.String("batch_id", result.BatchID),
		zap.String("organization_id", in.OrganizationID),
		zap.String("file", in.FileName),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailedCount),
		zap.Int("invalid", result.InvalidRows))
	return result, nil
}
