package calculation

import (
	"fmt"
	"time"

	"github.com/wealthwise/tax-calculator/internal/domain"
	"github.com/wealthwise/tax-calculator/pkg/dateutil"
)

// HoldingClassifier classifies disposals as short-term or long-term using
// category-specific day thresholds. Thresholds are configuration, not
// constants, so jurisdictions can vary them.
type HoldingClassifier struct {
	Thresholds map[domain.AssetCategory]int
}

// NewHoldingClassifier creates a classifier from the rules' threshold
// table. Every known asset category must have a positive threshold.
func NewHoldingClassifier(thresholds map[domain.AssetCategory]int) (*HoldingClassifier, error) {
	for _, cat := range []domain.AssetCategory{domain.AssetCategoryEquity, domain.AssetCategoryDebt, domain.AssetCategoryOther} {
		days, ok := thresholds[cat]
		if !ok {
			return nil, fmt.Errorf("no holding threshold for category %q: %w", cat, domain.ErrConfiguration)
		}
		if days <= 0 {
			return nil, fmt.Errorf("holding threshold for category %q must be positive, got %d: %w", cat, days, domain.ErrConfiguration)
		}
	}
	return &HoldingClassifier{Thresholds: thresholds}, nil
}

// Classify returns the whole-day holding period and whether the disposal
// is long-term. The boundary is exclusive: a holding of exactly the
// threshold is short-term. Pure function, safe for concurrent use.
func (hc *HoldingClassifier) Classify(category domain.AssetCategory, purchase, sale time.Time) (int, bool, error) {
	if !category.Valid() {
		return 0, false, fmt.Errorf("unknown asset category %q: %w", category, domain.ErrConfiguration)
	}
	days := dateutil.WholeDays(purchase, sale)
	if days < 0 {
		return 0, false, fmt.Errorf("sale %s before purchase %s: %w",
			sale.Format("2006-01-02"), purchase.Format("2006-01-02"), domain.ErrInvalidDateRange)
	}
	return days, days > hc.Thresholds[category], nil
}
