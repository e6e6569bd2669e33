package output

import (
	"encoding/json"

	"github.com/wealthwise/tax-calculator/internal/domain"
)

// JSONFormatter serializes the calculation as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(calc *domain.TaxCalculation) ([]byte, error) {
	return json.MarshalIndent(calc, "", "  ")
}
