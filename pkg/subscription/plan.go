package subscription

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BasePlanConfig is a single plan definition priced per month. It is expanded
// into one Plan variant per billing cycle; the variants, not the base config,
// are what tenants subscribe to.
type BasePlanConfig struct {
	ID               string // base identifier (e.g. "growth")
	Name             string
	Description      string
	BaseMonthlyPrice decimal.Decimal
	Limits           map[Resource]int64 // -1 represents unlimited
	Features         []Feature
	Public           bool // available for self-service signup
	TrialDays        int
}

// Plan is one priced edition of a base plan for a specific billing cycle.
type Plan struct {
	ID                string // variant identifier (e.g. "growth_12m")
	BaseID            string
	Name              string
	Description       string
	Cycle             BillingCycle
	BaseMonthly       decimal.Decimal // undiscounted per-month price
	Price             decimal.Decimal // upfront price for the whole cycle
	MonthlyEquivalent decimal.Decimal
	DiscountPercent   int64
	Limits            map[Resource]int64
	Features          []Feature
	Public            bool
	TrialDays         int
}

// VariantID returns the identifier of a cycle variant of a base plan.
func VariantID(baseID string, cycle BillingCycle) string {
	return fmt.Sprintf("%s_%dm", baseID, cycle.Months())
}

// Variants expands the base config into one Plan per supported billing
// cycle, applying the fixed cycle discounts.
func (c BasePlanConfig) Variants() []Plan {
	variants := make([]Plan, 0, len(Cycles()))
	for _, cycle := range Cycles() {
		price := PlanPrice(c.BaseMonthlyPrice, cycle)
		variants = append(variants, Plan{
			ID:                VariantID(c.ID, cycle),
			BaseID:            c.ID,
			Name:              c.Name,
			Description:       c.Description,
			Cycle:             cycle,
			BaseMonthly:       c.BaseMonthlyPrice,
			Price:             price,
			MonthlyEquivalent: MonthlyEquivalent(price, cycle),
			DiscountPercent:   cycle.DiscountPercent(),
			Limits:            c.Limits,
			Features:          c.Features,
			Public:            c.Public,
			TrialDays:         c.TrialDays,
		})
	}
	return variants
}

// PlanPrice computes the upfront price for a cycle:
// base × months × (1 − discount), rounded to 2 decimal places.
func PlanPrice(baseMonthly decimal.Decimal, cycle BillingCycle) decimal.Decimal {
	months := decimal.NewFromInt(int64(cycle.Months()))
	factor := decimal.NewFromInt(100 - cycle.DiscountPercent()).Div(decimal.NewFromInt(100))
	return baseMonthly.Mul(months).Mul(factor).Round(2)
}

// MonthlyEquivalent returns the per-month cost of an upfront cycle price,
// rounded to 2 decimal places. Used by pricing pages to show the effective
// monthly rate of discounted cycles.
func MonthlyEquivalent(total decimal.Decimal, cycle BillingCycle) decimal.Decimal {
	if cycle.Months() <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(cycle.Months()))).Round(2)
}

// HasFeature reports whether the plan enables the given capability.
func (p Plan) HasFeature(feature Feature) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Limit returns the plan's limit for a resource and whether the resource is
// covered by the plan at all.
func (p Plan) Limit(res Resource) (int64, bool) {
	limit, ok := p.Limits[res]
	return limit, ok
}
