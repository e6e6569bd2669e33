package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/tax-calculator/internal/domain"
	pdecimal "github.com/wealthwise/tax-calculator/pkg/decimal"
)

// RateSchedule converts taxable income into tax owed. Implementations are
// pure; the reconciler calls an injected schedule so a new jurisdiction
// or year is a configuration change, not a code change.
type RateSchedule interface {
	Apply(taxableIncome decimal.Decimal) decimal.Decimal
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// NewRateSchedule builds the schedule the rules describe: a flat rate or
// a progressive slab table, exactly one of which must be present.
func NewRateSchedule(rules *domain.TaxRules) (RateSchedule, error) {
	hasFlat := rules.FlatRate != nil
	hasSlabs := len(rules.Slabs) > 0

	switch {
	case hasFlat && hasSlabs:
		return nil, fmt.Errorf("both flat_rate and slabs set: %w", domain.ErrConfiguration)
	case hasFlat:
		if rules.FlatRate.IsNegative() {
			return nil, fmt.Errorf("flat_rate %s is negative: %w", rules.FlatRate, domain.ErrConfiguration)
		}
		return FlatSchedule{Rate: *rules.FlatRate}, nil
	case hasSlabs:
		return newSlabSchedule(rules.Slabs)
	default:
		return nil, fmt.Errorf("no rate schedule configured: %w", domain.ErrConfiguration)
	}
}

// FlatSchedule taxes all taxable income at a single rate.
type FlatSchedule struct {
	Rate decimal.Decimal
}

func (fs FlatSchedule) Name() string { return "flat" }

func (fs FlatSchedule) Apply(taxableIncome decimal.Decimal) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}
	return pdecimal.NewMoneyFromDecimal(taxableIncome).Tax(fs.Rate).Decimal
}

// SlabSchedule applies a progressive table. Each slab taxes the income
// falling inside its band; a zero Max marks the open-ended top band.
type SlabSchedule struct {
	Slabs []domain.Slab
}

func newSlabSchedule(slabs []domain.Slab) (SlabSchedule, error) {
	for i, s := range slabs {
		if s.Min.IsNegative() || s.Rate.IsNegative() {
			return SlabSchedule{}, fmt.Errorf("slab %d has negative min or rate: %w", i, domain.ErrConfiguration)
		}
		if !s.Max.IsZero() && s.Max.LessThanOrEqual(s.Min) {
			return SlabSchedule{}, fmt.Errorf("slab %d max %s not above min %s: %w", i, s.Max, s.Min, domain.ErrConfiguration)
		}
		// Slabs must tile the income range: a gap leaves a band untaxed
		// and an overlap taxes it twice.
		if i > 0 {
			prev := slabs[i-1]
			if prev.Max.IsZero() {
				return SlabSchedule{}, fmt.Errorf("slab %d follows the open-ended slab: %w", i, domain.ErrConfiguration)
			}
			if !s.Min.Equal(prev.Max) {
				return SlabSchedule{}, fmt.Errorf("slab %d min %s does not continue from previous max %s: %w", i, s.Min, prev.Max, domain.ErrConfiguration)
			}
		}
	}
	return SlabSchedule{Slabs: slabs}, nil
}

func (ss SlabSchedule) Name() string { return "slab" }

func (ss SlabSchedule) Apply(taxableIncome decimal.Decimal) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, slab := range ss.Slabs {
		if taxableIncome.LessThanOrEqual(slab.Min) {
			break
		}
		upper := taxableIncome
		if !slab.Max.IsZero() {
			upper = decimal.Min(taxableIncome, slab.Max)
		}
		incomeInSlab := upper.Sub(slab.Min)
		if incomeInSlab.IsPositive() {
			totalTax = totalTax.Add(incomeInSlab.Mul(slab.Rate))
		}
	}

	// Statutory rounding happens once, on the final liability.
	return pdecimal.NewMoneyFromDecimal(totalTax).RoundTax().Decimal
}
