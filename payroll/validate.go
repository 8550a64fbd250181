package payroll

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var salaryFields = []string{FieldBasicSalary, FieldHRA, FieldAllowances, FieldBonus}

// Validation error strings, one per rule.
const (
	errBadEmail          = "invalid or missing email"
	errBadMonth          = "month must be between 1 and 12"
	errBadYear           = "year must be between 2000 and 2100"
	errNoSalaryComponent = "at least one salary component (basic salary, HRA, allowances, bonus) is required"
)

type ValidRow struct {
	RowNumber int
	Row       NormalizedRow
}

type InvalidRow struct {
	RowNumber int
	Row       NormalizedRow
	Errors    []string
}

// Validate checks every normalized row independently and partitions the
// input into valid and invalid rows. Row numbers are 1-based spreadsheet
// positions, offset by the header row (first data row is row 2). A row
// violating several rules accumulates every applicable error.
func Validate(rows []NormalizedRow) ([]ValidRow, []InvalidRow) {
	valid := make([]ValidRow, 0, len(rows))
	invalid := make([]InvalidRow, 0)
	for i, row := range rows {
		rowNumber := i + 2
		var errs []string

		if !emailPattern.MatchString(strings.TrimSpace(row[FieldEmail])) {
			errs = append(errs, errBadEmail)
		}
		if month, ok := parseInt(row[FieldMonth]); !ok || month < 1 || month > 12 {
			errs = append(errs, errBadMonth)
		}
		if year, ok := parseInt(row[FieldYear]); !ok || year < 2000 || year > 2100 {
			errs = append(errs, errBadYear)
		}
		if !hasSalaryComponent(row) {
			errs = append(errs, errNoSalaryComponent)
		}

		if len(errs) > 0 {
			invalid = append(invalid, InvalidRow{RowNumber: rowNumber, Row: row, Errors: errs})
		} else {
			valid = append(valid, ValidRow{RowNumber: rowNumber, Row: row})
		}
	}
	return valid, invalid
}

func hasSalaryComponent(row NormalizedRow) bool {
	for _, field := range salaryFields {
		raw, ok := row[field]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return true
		}
	}
	return false
}

// parseInt accepts both "5" and the "5.0" Excel sometimes emits for
// numeric cells.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
