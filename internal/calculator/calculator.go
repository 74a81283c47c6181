// Package calculator implements the investment calculators offered on the
// dashboard. All functions are pure and safe for concurrent use.
package calculator

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"propertycalc/server/internal/models"
)

type Category string

const (
	AcquisitionCost   Category = "acquisition_cost"
	OperatingExpenses Category = "operating_expenses"
	CashFlow          Category = "cash_flow"
	AnnualGrowth      Category = "annual_growth"
)

// Categories lists the supported categories in dashboard order.
var Categories = []Category{AcquisitionCost, OperatingExpenses, CashFlow, AnnualGrowth}

var hundred = decimal.NewFromInt(100)

// Accepted amounts stay below 1e15 with at most 10 decimal places.
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 10
)

// Line is a single labelled result value.
type Line struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Result keeps its lines in display order.
type Result []Line

// Get returns the value stored under label.
func (r Result) Get(label string) (decimal.Decimal, bool) {
	for _, line := range r {
		if line.Label == label {
			return line.Value, true
		}
	}
	return decimal.Zero, false
}

type fieldSpec struct {
	name        string
	nonNegative bool
}

type category struct {
	fields  []fieldSpec
	compute func(v map[string]decimal.Decimal) Result
}

var categories = map[Category]category{
	AcquisitionCost: {
		fields: required("purchase_price", "closing_costs", "renovation_budget", "downpayment"),
		compute: func(v map[string]decimal.Decimal) Result {
			total := decimal.Sum(v["purchase_price"], v["closing_costs"], v["renovation_budget"], v["downpayment"])
			return Result{{Label: "Total Fixed Costs", Value: total}}
		},
	},
	OperatingExpenses: {
		fields: required("homeowners_insurance", "property_tax", "other_cost"),
		compute: func(v map[string]decimal.Decimal) Result {
			total := decimal.Sum(v["homeowners_insurance"], v["property_tax"], v["other_cost"])
			return Result{{Label: "Total Operating Expenses", Value: total}}
		},
	},
	CashFlow: {
		fields: required("rent_revenue", "coc_return_goal"),
		compute: func(v map[string]decimal.Decimal) Result {
			flow := v["rent_revenue"].Mul(v["coc_return_goal"].Div(hundred))
			return Result{{Label: "Annual Cash Flow", Value: flow}}
		},
	},
	AnnualGrowth: {
		// Growth figures are summed as entered; negative values are accepted.
		fields: []fieldSpec{{name: "rent_growth"}, {name: "appreciation"}, {name: "other_cost"}},
		compute: func(v map[string]decimal.Decimal) Result {
			total := decimal.Sum(v["rent_growth"], v["appreciation"], v["other_cost"])
			return Result{{Label: "Annual Growth Total", Value: total}}
		},
	},
}

func required(names ...string) []fieldSpec {
	specs := make([]fieldSpec, len(names))
	for i, name := range names {
		specs[i] = fieldSpec{name: name, nonNegative: true}
	}
	return specs
}

// ParseCategory maps a form value onto a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if _, ok := categories[c]; !ok {
		return "", models.NewValidationError("", "invalid category")
	}
	return c, nil
}

// Fields returns the form field names a category reads.
func Fields(c Category) []string {
	cat, ok := categories[c]
	if !ok {
		return nil
	}
	names := make([]string, len(cat.fields))
	for i, f := range cat.fields {
		names[i] = f.name
	}
	return names
}

// Calculate runs the calculator for category over the submitted form values.
// Absent or blank fields count as zero.
func Calculate(c Category, form url.Values) (Result, error) {
	cat, ok := categories[c]
	if !ok {
		return nil, models.NewValidationError("", "invalid category")
	}

	values := make(map[string]decimal.Decimal, len(cat.fields))
	for _, f := range cat.fields {
		v, err := parseAmount(f.name, form.Get(f.name))
		if err != nil {
			return nil, err
		}
		if f.nonNegative && v.IsNegative() {
			return nil, models.NewValidationError(f.name, "must not be negative")
		}
		values[f.name] = v
	}
	return cat.compute(values), nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, models.NewValidationError(field, "must be a number")
	}
	// Inspect exponent and digits only; arithmetic on 1e2147483647 does not return.
	if v.Exponent() < -maxFractionDigits || v.NumDigits()+int(v.Exponent()) > maxIntegerDigits {
		return decimal.Zero, models.NewValidationError(field, "is out of range")
	}
	return v, nil
}
