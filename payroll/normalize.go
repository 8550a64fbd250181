package payroll

// Canonical payslip input fields.
const (
	FieldEmail         = "email"
	FieldEmployeeID    = "employeeId"
	FieldBasicSalary   = "basicSalary"
	FieldHRA           = "hra"
	FieldAllowances    = "allowances"
	FieldBonus         = "bonus"
	FieldTax           = "tax"
	FieldProvidentFund = "providentFund"
	FieldInsurance     = "insurance"
	FieldMonth         = "month"
	FieldYear          = "year"
)

// NormalizedRow holds raw values keyed by canonical field name. Fields whose
// header had no match in the variant table are absent.
type NormalizedRow map[string]string

// headerVariants maps each canonical field to its accepted spreadsheet
// headers, in match-priority order. Matching is case-sensitive; common
// capitalizations and abbreviations are listed explicitly.
var headerVariants = []struct {
	field    string
	variants []string
}{
	{FieldEmail, []string{"Email", "email", "EMAIL", "Email Address", "E-mail"}},
	{FieldEmployeeID, []string{"Employee ID", "EmployeeID", "employeeId", "employee_id", "Emp ID", "EmpID"}},
	{FieldBasicSalary, []string{"Basic Salary", "BasicSalary", "basicSalary", "basic_salary", "Basic", "Basic Pay"}},
	{FieldHRA, []string{"HRA", "hra", "House Rent Allowance"}},
	{FieldAllowances, []string{"Allowances", "allowances", "Allowance", "Other Allowances"}},
	{FieldBonus, []string{"Bonus", "bonus", "Incentive"}},
	{FieldTax, []string{"Tax", "tax", "TDS", "Income Tax"}},
	{FieldProvidentFund, []string{"PF", "Provident Fund", "ProvidentFund", "providentFund", "provident_fund", "pf"}},
	{FieldInsurance, []string{"Insurance", "insurance", "ESI"}},
	{FieldMonth, []string{"Month", "month", "MONTH"}},
	{FieldYear, []string{"Year", "year", "YEAR"}},
}

// Normalize copies each canonical field's first matching header value out of
// a raw row. Pure; never mutates the input.
func Normalize(row RawRow) NormalizedRow {
	out := make(NormalizedRow, len(headerVariants))
	for _, entry := range headerVariants {
		for _, header := range entry.variants {
			if value, ok := row[header]; ok {
				out[entry.field] = value
				break
			}
		}
	}
	return out
}
