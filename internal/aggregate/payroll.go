package aggregate

// Payroll rates applied to the basic salary
const (
	DARate        = 0.17
	HRARate       = 0.24
	TARate        = 0.08
	MedicalAmount = 1500.0
	PFRate        = 0.12
	ESIRate       = 0.0075
	TDSRate       = 0.05

	// ESIGrossCeiling is the gross salary from which ESI is no longer deducted. The
	// ceiling is inclusive: a gross of exactly 21000 pays no ESI.
	ESIGrossCeiling = 21000.0
)

// Payroll is the derivation of one month's pay from a basic salary
type Payroll struct {
	Basic           float64 `json:"basicSalary"`
	DA              float64 `json:"da"`
	HRA             float64 `json:"hra"`
	TA              float64 `json:"ta"`
	Medical         float64 `json:"medical"`
	Gross           float64 `json:"grossSalary"`
	PF              float64 `json:"pf"`
	ESI             float64 `json:"esi"`
	TDS             float64 `json:"tds"`
	TotalDeductions float64 `json:"totalDeductions"`
	Net             float64 `json:"netSalary"`
}

// DerivePayroll computes allowances, deductions and net pay for basic. Each component
// is rounded to two decimals before it is summed.
func DerivePayroll(basic float64) Payroll {
	p := Payroll{
		Basic:   RoundCurrency(basic),
		DA:      RoundCurrency(DARate * basic),
		HRA:     RoundCurrency(HRARate * basic),
		TA:      RoundCurrency(TARate * basic),
		Medical: MedicalAmount,
		PF:      RoundCurrency(PFRate * basic),
	}
	p.Gross = RoundCurrency(p.Basic + p.DA + p.HRA + p.TA + p.Medical)
	p.ESI = EmployeeStateInsurance(p.Gross)
	p.TDS = RoundCurrency(TDSRate * p.Gross)
	p.TotalDeductions = RoundCurrency(p.PF + p.ESI + p.TDS)
	p.Net = RoundCurrency(p.Gross - p.TotalDeductions)
	return p
}

// EmployeeStateInsurance is 0.75% of gross below the ceiling and nothing from the
// ceiling up
func EmployeeStateInsurance(gross float64) float64 {
	if gross >= ESIGrossCeiling {
		return 0
	}
	return RoundCurrency(ESIRate * gross)
}
