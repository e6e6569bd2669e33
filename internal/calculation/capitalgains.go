package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/tax-calculator/internal/domain"
	pdecimal "github.com/wealthwise/tax-calculator/pkg/decimal"
)

// CapitalGainsCalculator turns a batch of disposals into per-disposal tax
// lines plus signed short/long-term aggregates. Any invalid record fails
// the whole batch: a report with a silently-dropped disposal masks
// data-entry errors.
type CapitalGainsCalculator struct {
	Classifier *HoldingClassifier
	Rates      domain.CapitalGainsRates
	Logger     Logger
}

// NewCapitalGainsCalculator creates a calculator with the given
// classifier and classification rate table.
func NewCapitalGainsCalculator(classifier *HoldingClassifier, rates domain.CapitalGainsRates) *CapitalGainsCalculator {
	return &CapitalGainsCalculator{
		Classifier: classifier,
		Rates:      rates,
		Logger:     NopLogger{},
	}
}

// Compute processes every disposal. An empty batch yields an all-zero
// result, not an error. Gains are signed throughout; tax is computed only
// on positive gains and rounded to the currency unit per line, the one
// point where statutory rounding applies.
func (cgc *CapitalGainsCalculator) Compute(disposals []domain.Disposal) (*domain.CapitalGainsResult, error) {
	result := &domain.CapitalGainsResult{
		ShortTermTotal: decimal.Zero,
		LongTermTotal:  decimal.Zero,
		Total:          decimal.Zero,
		TaxOnGains:     decimal.Zero,
	}

	for i, d := range disposals {
		if d.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("disposal %d (%s): purchase price %s: %w", i, d.AssetName, d.PurchasePrice, domain.ErrInvalidAmount)
		}
		if d.SalePrice.IsNegative() {
			return nil, fmt.Errorf("disposal %d (%s): sale price %s: %w", i, d.AssetName, d.SalePrice, domain.ErrInvalidAmount)
		}

		days, longTerm, err := cgc.Classifier.Classify(d.Category, d.PurchaseDate, d.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("disposal %d (%s): %w", i, d.AssetName, err)
		}

		rate := cgc.Rates.ShortTerm
		if longTerm {
			rate = cgc.Rates.LongTerm
		}

		gain := d.Gain()
		tax := decimal.Zero
		if gain.IsPositive() {
			tax = pdecimal.NewMoneyFromDecimal(gain).Tax(rate).Decimal
		}

		line := domain.TaxLine{
			AssetName:  d.AssetName,
			Category:   d.Category,
			Days:       days,
			IsLongTerm: longTerm,
			Gain:       gain,
			Rate:       rate,
			Tax:        tax,
		}
		result.Lines = append(result.Lines, line)

		if longTerm {
			result.LongTermTotal = result.LongTermTotal.Add(gain)
		} else {
			result.ShortTermTotal = result.ShortTermTotal.Add(gain)
		}
		result.TaxOnGains = result.TaxOnGains.Add(tax)

		cgc.Logger.Debugf("disposal %s: %d days %s gain=%s tax=%s",
			d.AssetName, days, classificationLabel(longTerm), gain.StringFixed(2), tax.StringFixed(2))
	}

	result.Total = result.ShortTermTotal.Add(result.LongTermTotal)
	return result, nil
}

func classificationLabel(longTerm bool) string {
	if longTerm {
		return "long-term"
	}
	return "short-term"
}
