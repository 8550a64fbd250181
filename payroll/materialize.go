package payroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"paydesk/models"
)

// RowError is one per-row failure surfaced to the caller, keyed by the
// 1-based spreadsheet row number.
type RowError struct {
	Row   int    `json:"row"`
	Email string `json:"email,omitempty"`
	Error string `json:"error"`
}

// Record is a materialized payslip awaiting employee resolution. Email and
// RowNumber travel alongside the document for lookup and error reporting.
type Record struct {
	RowNumber int
	Email     string
	Payslip   models.Payslip
}

// Materialize turns one valid row into a payslip record. Pure; no I/O.
// Every earnings and deductions amount goes through coerceAmount, gross and
// net are derived sums, and the month key is the zero-padded "YYYY-MM" form.
func Materialize(row ValidRow, orgID, adminID string) Record {
	month, _ := parseInt(row.Row[FieldMonth])
	year, _ := parseInt(row.Row[FieldYear])
	email := strings.ToLower(strings.TrimSpace(row.Row[FieldEmail]))

	basic := coerceAmount(row.Row[FieldBasicSalary])
	hra := coerceAmount(row.Row[FieldHRA])
	allowances := coerceAmount(row.Row[FieldAllowances])
	bonus := coerceAmount(row.Row[FieldBonus])
	tax := coerceAmount(row.Row[FieldTax])
	pf := coerceAmount(row.Row[FieldProvidentFund])
	insurance := coerceAmount(row.Row[FieldInsurance])

	gross := basic + hra + allowances + bonus
	deductions := tax + pf + insurance

	return Record{
		RowNumber: row.RowNumber,
		Email:     email,
		Payslip: models.Payslip{
			OrganizationID:  orgID,
			Month:           fmt.Sprintf("%04d-%02d", year, month),
			Year:            year,
			BasicSalary:     basic,
			HRA:             hra,
			Allowances:      allowances,
			Bonus:           bonus,
			Tax:             tax,
			ProvidentFund:   pf,
			Insurance:       insurance,
			GrossSalary:     gross,
			TotalDeductions: deductions,
			NetSalary:       gross - deductions, // may be negative, not clamped
			Status:          "generated",
			GeneratedBy:     adminID,
		},
	}
}

// coerceAmount implements the single coercion contract for every amount
// field: parse as float; absent, unparseable, NaN or infinite values become
// 0; negative values clamp to 0.
func coerceAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 {
		return 0
	}
	return f
}
