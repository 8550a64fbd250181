package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{" 1234.56 ", 1234.56},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"+Inf", 0},
		{"-250", 0}, // negatives clamp to 0
		{"0", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, coerceAmount(tc.in), "input %q", tc.in)
	}
}

func TestMaterialize(t *testing.T) {
	t.Run("Derives Gross And Net", func(t *testing.T) {
		row := ValidRow{RowNumber: 2, Row: NormalizedRow{
			FieldEmail:       "A@Co.com ",
			FieldMonth:       "5",
			FieldYear:        "2025",
			FieldBasicSalary: "5000",
			FieldHRA:         "2000",
			FieldTax:         "800",
		}}
		rec := Materialize(row, "org-1", "admin-1")

		assert.Equal(t, "a@co.com", rec.Email)
		assert.Equal(t, "2025-05", rec.Payslip.Month)
		assert.Equal(t, 2025, rec.Payslip.Year)
		assert.Equal(t, 7000.0, rec.Payslip.GrossSalary)
		assert.Equal(t, 800.0, rec.Payslip.TotalDeductions)
		assert.Equal(t, 6200.0, rec.Payslip.NetSalary)
		assert.Equal(t, "generated", rec.Payslip.Status)
		assert.Equal(t, "org-1", rec.Payslip.OrganizationID)
		assert.Equal(t, "admin-1", rec.Payslip.GeneratedBy)
	})

	t.Run("Absent And Junk Amounts Default To Zero", func(t *testing.T) {
		row := ValidRow{RowNumber: 3, Row: NormalizedRow{
			FieldEmail:       "b@co.com",
			FieldMonth:       "12",
			FieldYear:        "2024",
			FieldBasicSalary: "1000",
			FieldBonus:       "not-a-number",
			FieldInsurance:   "-50",
		}}
		rec := Materialize(row, "org-1", "admin-1")

		assert.Equal(t, 0.0, rec.Payslip.Bonus)
		assert.Equal(t, 0.0, rec.Payslip.HRA)
		assert.Equal(t, 0.0, rec.Payslip.Allowances)
		assert.Equal(t, 0.0, rec.Payslip.Insurance)
		assert.Equal(t, 1000.0, rec.Payslip.GrossSalary)
		assert.Equal(t, 0.0, rec.Payslip.TotalDeductions)
		assert.Equal(t, 1000.0, rec.Payslip.NetSalary)

		sum := rec.Payslip.BasicSalary + rec.Payslip.HRA + rec.Payslip.Allowances + rec.Payslip.Bonus
		assert.Equal(t, sum, rec.Payslip.GrossSalary)
	})

	t.Run("Net Salary May Go Negative", func(t *testing.T) {
		row := ValidRow{RowNumber: 4, Row: NormalizedRow{
			FieldEmail:       "c@co.com",
			FieldMonth:       "1",
			FieldYear:        "2025",
			FieldBasicSalary: "100",
			FieldTax:         "500",
		}}
		rec := Materialize(row, "org-1", "admin-1")
		assert.Equal(t, -400.0, rec.Payslip.NetSalary)
	})

	t.Run("Month Key Is Zero Padded", func(t *testing.T) {
		row := ValidRow{RowNumber: 2, Row: NormalizedRow{
			FieldEmail:       "d@co.com",
			FieldMonth:       "9",
			FieldYear:        "2030",
			FieldBasicSalary: "1",
		}}
		rec := Materialize(row, "org-1", "admin-1")
		assert.Equal(t, "2030-09", rec.Payslip.Month)
	})
}
