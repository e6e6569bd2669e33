package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/tax-calculator/internal/domain"
)

// IncomeAggregator sums dividend and interest records into category
// totals. Pure aggregation: no classification logic, no side effects.
type IncomeAggregator struct{}

// NewIncomeAggregator creates a new income aggregator
func NewIncomeAggregator() *IncomeAggregator {
	return &IncomeAggregator{}
}

// Aggregate totals both categories. Gross amounts feed taxable income;
// TDS is a prepayment, so net amounts are carried for reconciliation and
// display only.
func (ia *IncomeAggregator) Aggregate(dividends, interest []domain.IncomeRecord) (*domain.IncomeTotals, error) {
	dividendTotal, err := sumCategory("dividend", dividends)
	if err != nil {
		return nil, err
	}
	interestTotal, err := sumCategory("interest", interest)
	if err != nil {
		return nil, err
	}
	return &domain.IncomeTotals{Dividend: dividendTotal, Interest: interestTotal}, nil
}

func sumCategory(kind string, records []domain.IncomeRecord) (domain.IncomeCategoryTotal, error) {
	total := domain.IncomeCategoryTotal{
		Gross:    decimal.Zero,
		Withheld: decimal.Zero,
		Net:      decimal.Zero,
	}
	for i, r := range records {
		if r.Gross.IsNegative() {
			return total, fmt.Errorf("%s record %d (%s): gross %s: %w", kind, i, r.Source, r.Gross, domain.ErrInvalidAmount)
		}
		if r.TaxWithheld.IsNegative() {
			return total, fmt.Errorf("%s record %d (%s): withheld %s: %w", kind, i, r.Source, r.TaxWithheld, domain.ErrInvalidAmount)
		}
		if r.TaxWithheld.GreaterThan(r.Gross) {
			return total, fmt.Errorf("%s record %d (%s): withheld %s > gross %s: %w",
				kind, i, r.Source, r.TaxWithheld, r.Gross, domain.ErrInvalidWithholding)
		}
		total.Gross = total.Gross.Add(r.Gross)
		total.Withheld = total.Withheld.Add(r.TaxWithheld)
		total.Net = total.Net.Add(r.Net())
	}
	return total, nil
}
