package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/tax-calculator/internal/domain"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validRulesYAML = `
jurisdiction: "IN"
tax_year: "2023-24"
fiscal_year_start_month: 4
holding_thresholds:
  equity: 365
  debt: 1095
  other: 1095
capital_gains_rates:
  short_term: "0.15"
  long_term: "0.10"
slabs:
  - min: "0"
    max: "250000"
    rate: "0"
  - min: "250000"
    max: "0"
    rate: "0.05"
section_caps:
  "80C": "150000"
  "80G": "0"
`

const validStatementYAML = `
disposals:
  - asset_name: "NIFTYBEES"
    category: "equity"
    purchase_date: "2022-01-01"
    sale_date: "2023-06-01"
    purchase_price: "100000"
    sale_price: "150000"
dividends:
  - source: "TECHCO"
    gross: "10000"
    tax_withheld: "1000"
interest:
  - source: "Savings account"
    category: "savings"
    gross: "8000"
deductions:
  - section: "80C"
    investment_name: "ELSS fund"
    amount: "120000"
    contributed_on: "2023-07-05"
rental_income: "240000"
taxes_paid:
  tds: "5200"
  advance_tax: "30000"
`

func TestLoadRules(t *testing.T) {
	parser := NewInputParser()
	path := writeTempFile(t, "rules.yaml", validRulesYAML)

	rules, err := parser.LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, "IN", rules.Jurisdiction)
	assert.Equal(t, "2023-24", rules.TaxYear)
	assert.Equal(t, 4, rules.FiscalYearStartMonth)
	assert.Equal(t, 365, rules.HoldingThresholds[domain.AssetCategoryEquity])
	assert.Equal(t, 1095, rules.HoldingThresholds[domain.AssetCategoryDebt])
	assert.True(t, rules.CapitalGainsRates.ShortTerm.Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, rules.CapitalGainsRates.LongTerm.Equal(decimal.NewFromFloat(0.10)))

	require.Len(t, rules.Slabs, 2)
	assert.True(t, rules.Slabs[1].Min.Equal(decimal.NewFromInt(250000)))
	assert.True(t, rules.Slabs[1].Max.IsZero(), "open-ended top slab")

	assert.True(t, rules.SectionCaps["80C"].Equal(decimal.NewFromInt(150000)))
	assert.True(t, rules.SectionCaps["80G"].IsZero(), "zero cap means no fixed limit")
	assert.Nil(t, rules.FlatRate)
}

func TestLoadRules_Errors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name        string
		content     string
		description string
	}{
		{
			name:        "Missing file",
			content:     "",
			description: "Unreadable path reported with the filename",
		},
		{
			name: "Malformed YAML",
			content: `jurisdiction: "IN"
  holding_thresholds: [`,
			description: "Parse failure surfaces",
		},
		{
			name: "Non-numeric rate",
			content: `
jurisdiction: "IN"
holding_thresholds:
  equity: 365
  debt: 1095
  other: 1095
capital_gains_rates:
  short_term: "fifteen"
  long_term: "0.10"
flat_rate: "0.10"
`,
			description: "Decimal parse failure surfaces",
		},
		{
			name: "No thresholds",
			content: `
jurisdiction: "IN"
capital_gains_rates:
  short_term: "0.15"
  long_term: "0.10"
flat_rate: "0.10"
`,
			description: "Validation requires holding thresholds",
		},
		{
			name: "Unknown threshold category",
			content: `
jurisdiction: "IN"
holding_thresholds:
  crypto: 365
capital_gains_rates:
  short_term: "0.15"
  long_term: "0.10"
flat_rate: "0.10"
`,
			description: "Unknown categories rejected",
		},
		{
			name: "No rate schedule",
			content: `
jurisdiction: "IN"
holding_thresholds:
  equity: 365
  debt: 1095
  other: 1095
capital_gains_rates:
  short_term: "0.15"
  long_term: "0.10"
`,
			description: "A flat rate or slab table is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.content != "" {
				path = writeTempFile(t, "rules.yaml", tt.content)
			}

			rules, err := parser.LoadRules(path)
			require.Error(t, err, tt.description)
			assert.Nil(t, rules)
		})
	}
}

func TestLoadStatement(t *testing.T) {
	parser := NewInputParser()
	path := writeTempFile(t, "statement.yaml", validStatementYAML)

	stmt, err := parser.LoadStatement(path)
	require.NoError(t, err)

	require.Len(t, stmt.Disposals, 1)
	d := stmt.Disposals[0]
	assert.Equal(t, "NIFTYBEES", d.AssetName)
	assert.Equal(t, domain.AssetCategoryEquity, d.Category)
	assert.Equal(t, "2022-01-01", d.PurchaseDate.Format("2006-01-02"))
	assert.True(t, d.Gain().Equal(decimal.NewFromInt(50000)))

	require.Len(t, stmt.Dividends, 1)
	assert.True(t, stmt.Dividends[0].Net().Equal(decimal.NewFromInt(9000)))

	require.Len(t, stmt.Interest, 1)
	assert.Equal(t, domain.InterestSavings, stmt.Interest[0].Category)
	assert.True(t, stmt.Interest[0].TaxWithheld.IsZero(), "tax_withheld defaults to zero")

	require.Len(t, stmt.Deductions, 1)
	assert.Equal(t, "80C", stmt.Deductions[0].Section)

	assert.True(t, stmt.RentalIncome.Equal(decimal.NewFromInt(240000)))
	assert.True(t, stmt.BusinessIncome.IsZero(), "omitted figures default to zero")
	assert.True(t, stmt.TaxesPaid.Total().Equal(decimal.NewFromInt(35200)))
}

func TestValidateStatement(t *testing.T) {
	parser := NewInputParser()

	base := func() *domain.Statement {
		stmt, err := parser.LoadStatement(writeTempFile(t, "statement.yaml", validStatementYAML))
		require.NoError(t, err)
		return stmt
	}

	tests := []struct {
		name        string
		mutate      func(*domain.Statement)
		expectedErr error
		description string
	}{
		{
			name: "Sale before purchase",
			mutate: func(s *domain.Statement) {
				s.Disposals[0].SaleDate = s.Disposals[0].PurchaseDate.AddDate(0, 0, -1)
			},
			expectedErr: domain.ErrInvalidDateRange,
			description: "Reversed disposal dates rejected",
		},
		{
			name: "Unknown asset category",
			mutate: func(s *domain.Statement) {
				s.Disposals[0].Category = "crypto"
			},
			expectedErr: domain.ErrConfiguration,
			description: "Category must be a known value",
		},
		{
			name: "Negative purchase price",
			mutate: func(s *domain.Statement) {
				s.Disposals[0].PurchasePrice = decimal.NewFromInt(-1)
			},
			expectedErr: domain.ErrInvalidAmount,
			description: "Prices must not be negative",
		},
		{
			name: "Withholding above gross",
			mutate: func(s *domain.Statement) {
				s.Dividends[0].TaxWithheld = decimal.NewFromInt(20000)
			},
			expectedErr: domain.ErrInvalidWithholding,
			description: "TDS cannot exceed the gross amount",
		},
		{
			name: "Negative deduction amount",
			mutate: func(s *domain.Statement) {
				s.Deductions[0].Amount = decimal.NewFromInt(-500)
			},
			expectedErr: domain.ErrInvalidAmount,
			description: "Contributions must not be negative",
		},
		{
			name: "Negative TDS",
			mutate: func(s *domain.Statement) {
				s.TaxesPaid.TDS = decimal.NewFromInt(-1)
			},
			expectedErr: domain.ErrInvalidAmount,
			description: "Taxes paid must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := base()
			tt.mutate(stmt)

			err := parser.ValidateStatement(stmt)
			require.Error(t, err, tt.description)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

// TestExamples tests that the generated starter data passes its own
// validation
func TestExamples(t *testing.T) {
	parser := NewInputParser()

	rules := parser.ExampleRules()
	require.NoError(t, parser.ValidateRules(rules))

	stmt := parser.ExampleStatement()
	require.NoError(t, parser.ValidateStatement(stmt))
}
