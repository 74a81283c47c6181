// Package credit estimates loan approval, pricing and affordability from a
// borrower's credit score and finances.
package credit

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"propertycalc/server/internal/models"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 850

	// TermMonths is the fixed 30-year mortgage term.
	TermMonths = 360

	highDTIThreshold = 36.0
	maxFairDTI       = 43.0
	affordableDTI    = 0.36
)

type Inputs struct {
	CreditScore int     `json:"credit_score"`
	Salary      float64 `json:"salary"`
	MonthlyDebt float64 `json:"monthly_debt"`
	LoanAmount  float64 `json:"loan_amount"`
}

type Result struct {
	CreditScore       int      `json:"credit_score"`
	Tier              Tier     `json:"tier"`
	LoanApproved      bool     `json:"loan_approved"`
	InterestRate      float64  `json:"interest_rate"`
	DTI               float64  `json:"dti"`
	RequestedLoan     float64  `json:"requested_loan"`
	MaxAffordableLoan float64  `json:"max_affordable_loan"`
	MonthlyPayment    float64  `json:"monthly_payment"`
	Tips              []string `json:"tips"`
}

// Validate checks the score range and that no monetary input is negative.
func (in Inputs) Validate() error {
	if in.CreditScore < MinCreditScore || in.CreditScore > MaxCreditScore {
		return models.NewValidationError("credit_score", "must be between 300 and 850")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"salary", in.Salary},
		{"monthly_debt", in.MonthlyDebt},
		{"loan_amount", in.LoanAmount},
	} {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return models.NewValidationError(f.name, "must be a non-negative number")
		}
	}
	return nil
}

// Evaluate prices a loan request. It has no side effects.
func Evaluate(in Inputs) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	monthlyIncome := in.Salary / 12
	dti := 100.0
	if monthlyIncome > 0 {
		dti = in.MonthlyDebt / monthlyIncome * 100
	}

	t := lookupTier(in.CreditScore)
	approved := t.approved(dti)
	rate := t.rate(dti)

	maxAffordable := (monthlyIncome*affordableDTI - in.MonthlyDebt) * TermMonths

	payment := 0.0
	if approved {
		payment = MonthlyPayment(in.LoanAmount, rate, TermMonths)
	}

	tips := make([]string, len(t.tips))
	copy(tips, t.tips)

	return Result{
		CreditScore:       in.CreditScore,
		Tier:              t.name,
		LoanApproved:      approved,
		InterestRate:      rate,
		DTI:               round2(dti),
		RequestedLoan:     in.LoanAmount,
		MaxAffordableLoan: round2(maxAffordable),
		MonthlyPayment:    round2(payment),
		Tips:              tips,
	}, nil
}

// MonthlyPayment is the fixed amortized payment for principal at the annual
// percentage rate over months payments.
func MonthlyPayment(principal, annualRate float64, months int) float64 {
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+monthlyRate, float64(months))
	return principal * monthlyRate * growth / (growth - 1)
}

// ParseForm reads the four credit fields from submitted form values.
func ParseForm(form url.Values) (Inputs, error) {
	var in Inputs

	raw := strings.TrimSpace(form.Get("credit_score"))
	if raw == "" {
		return in, models.NewValidationError("credit_score", "is required")
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		// Accept integral decimals such as "720.0" from number inputs.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) {
			return in, models.NewValidationError("credit_score", "must be a whole number")
		}
		score = int(f)
	}
	in.CreditScore = score

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"salary", &in.Salary},
		{"monthly_debt", &in.MonthlyDebt},
		{"loan_amount", &in.LoanAmount},
	} {
		raw := strings.TrimSpace(form.Get(f.name))
		if raw == "" {
			return in, models.NewValidationError(f.name, "is required")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return in, models.NewValidationError(f.name, "must be a number")
		}
		*f.dst = v
	}
	return in, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
