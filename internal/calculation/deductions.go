package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/tax-calculator/internal/domain"
	pdecimal "github.com/wealthwise/tax-calculator/pkg/decimal"
)

// DeductionTracker groups tax-saving contributions by statutory section
// and enforces each section's cap. Entries beyond a cap stay recorded in
// the contributed figure but are excluded from the deductible total.
type DeductionTracker struct {
	// Caps maps section tag to its contribution cap; zero means the
	// section has no fixed limit.
	Caps map[string]decimal.Decimal
}

// NewDeductionTracker creates a tracker from the rules' cap table.
// Negative caps are a configuration error.
func NewDeductionTracker(caps map[string]decimal.Decimal) (*DeductionTracker, error) {
	for section, cap := range caps {
		if cap.IsNegative() {
			return nil, fmt.Errorf("section %s cap %s is negative: %w", section, cap, domain.ErrConfiguration)
		}
	}
	return &DeductionTracker{Caps: caps}, nil
}

// Track aggregates entries into per-section status records and the capped
// total. A section tag missing from the cap table is a configuration
// error: caps must be declared, not guessed.
func (dt *DeductionTracker) Track(entries []domain.DeductionEntry) (*domain.DeductionSummary, error) {
	contributed := make(map[string]decimal.Decimal)
	for i, e := range entries {
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("deduction entry %d (%s): amount %s: %w", i, e.InvestmentName, e.Amount, domain.ErrInvalidAmount)
		}
		if _, ok := dt.Caps[e.Section]; !ok {
			return nil, fmt.Errorf("deduction entry %d (%s): unknown section %q: %w", i, e.InvestmentName, e.Section, domain.ErrConfiguration)
		}
		contributed[e.Section] = contributed[e.Section].Add(e.Amount)
	}

	summary := &domain.DeductionSummary{
		Sections:        make(map[string]domain.SectionStatus, len(contributed)),
		TotalDeductible: decimal.Zero,
	}

	for section, amount := range contributed {
		cap := dt.Caps[section]
		status := domain.SectionStatus{
			Section:     section,
			Cap:         cap,
			Contributed: amount,
			Deductible:  amount,
		}
		if cap.IsPositive() {
			status.Deductible = decimal.Min(amount, cap)
			remaining := decimal.Max(decimal.Zero, cap.Sub(amount))
			status.Remaining = &remaining
			utilization := pdecimal.NewMoneyFromDecimal(status.Deductible).Percent(pdecimal.NewMoneyFromDecimal(cap))
			status.UtilizationPct = &utilization
		}
		// Uncapped sections leave Remaining and UtilizationPct nil:
		// headroom against no limit is not a number.
		summary.Sections[section] = status
		summary.TotalDeductible = summary.TotalDeductible.Add(status.Deductible)
	}

	return summary, nil
}
