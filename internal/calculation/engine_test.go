package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/tax-calculator/internal/domain"
)

func engineRules() *domain.TaxRules {
	return &domain.TaxRules{
		Jurisdiction:         "IN",
		TaxYear:              "2024-25",
		FiscalYearStartMonth: 4,
		HoldingThresholds:    defaultThresholds(),
		CapitalGainsRates:    defaultRates(),
		Slabs:                defaultSlabs(),
		SectionCaps: map[string]decimal.Decimal{
			"80C": decimal.NewFromInt(150000),
			"80D": decimal.NewFromInt(25000),
		},
	}
}

func engineStatement(t *testing.T) *domain.Statement {
	t.Helper()
	return &domain.Statement{
		Disposals: []domain.Disposal{
			{
				AssetName:     "INDEXFUND",
				Category:      domain.AssetCategoryEquity,
				PurchaseDate:  date(t, "2022-04-01"),
				SaleDate:      date(t, "2023-06-01"),
				PurchasePrice: decimal.NewFromInt(100000),
				SalePrice:     decimal.NewFromInt(150000),
			},
			{
				AssetName:     "GROWTHCO",
				Category:      domain.AssetCategoryEquity,
				PurchaseDate:  date(t, "2023-05-01"),
				SaleDate:      date(t, "2023-12-01"),
				PurchasePrice: decimal.NewFromInt(100000),
				SalePrice:     decimal.NewFromInt(200000),
			},
		},
		Dividends: []domain.IncomeRecord{
			{Source: "GROWTHCO", Gross: decimal.NewFromInt(20000), TaxWithheld: decimal.NewFromInt(2000)},
		},
		Interest: []domain.IncomeRecord{
			{Source: "Fixed deposit", Category: domain.InterestFixedDeposit, Gross: decimal.NewFromInt(30000), TaxWithheld: decimal.NewFromInt(3000)},
		},
		Deductions: []domain.DeductionEntry{
			{Section: "80C", InvestmentName: "ELSS fund", Amount: decimal.NewFromInt(200000), ContributedOn: date(t, "2023-07-05")},
		},
		RentalIncome: decimal.NewFromInt(480000),
		TaxesPaid: domain.TaxesPaid{
			TDS:        decimal.NewFromInt(5000),
			AdvanceTax: decimal.NewFromInt(10000),
		},
	}
}

// TestEngineCalculate tests the full pipeline on a worked statement
func TestEngineCalculate(t *testing.T) {
	engine, err := NewEngine(engineRules())
	require.NoError(t, err)

	asOf := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	calc, err := engine.Calculate(engineStatement(t), asOf)
	require.NoError(t, err)

	assert.Equal(t, "2024-25", calc.FinancialYear)
	assert.Equal(t, "IN", calc.Jurisdiction)
	assert.Equal(t, asOf, calc.CalculatedAt)

	// Capital gains: one long-term gain of 50000, one short-term of 100000.
	require.Len(t, calc.CapitalGains.Lines, 2)
	assert.True(t, calc.CapitalGains.Lines[0].IsLongTerm)
	assert.False(t, calc.CapitalGains.Lines[1].IsLongTerm)
	assert.True(t, calc.CapitalGains.LongTermTotal.Equal(decimal.NewFromInt(50000)))
	assert.True(t, calc.CapitalGains.ShortTermTotal.Equal(decimal.NewFromInt(100000)))
	assert.True(t, calc.CapitalGains.Total.Equal(decimal.NewFromInt(150000)))
	// 50000 at 10% plus 100000 at 15%.
	assert.True(t, calc.CapitalGains.TaxOnGains.Equal(decimal.NewFromInt(20000)),
		"tax on gains %s", calc.CapitalGains.TaxOnGains)

	// Income aggregates report gross, withheld and net.
	assert.True(t, calc.Income.Dividend.Gross.Equal(decimal.NewFromInt(20000)))
	assert.True(t, calc.Income.Dividend.Net.Equal(decimal.NewFromInt(18000)))
	assert.True(t, calc.Income.Interest.Gross.Equal(decimal.NewFromInt(30000)))

	// 200000 contributed under 80C, deductible clamped at the 150000 cap.
	assert.True(t, calc.Deductions.TotalDeductible.Equal(decimal.NewFromInt(150000)))

	// 150000 gains + 20000 dividend + 30000 interest + 480000 rent.
	assert.True(t, calc.GrossIncome.Equal(decimal.NewFromInt(680000)), "gross %s", calc.GrossIncome)
	assert.True(t, calc.TaxableIncome.Equal(decimal.NewFromInt(530000)), "taxable %s", calc.TaxableIncome)

	// Slab walk: 250000 at 5% plus 30000 at 20%.
	assert.True(t, calc.TaxOwed.Equal(decimal.NewFromInt(18500)), "owed %s", calc.TaxOwed)
	assert.True(t, calc.TaxPaid.Equal(decimal.NewFromInt(15000)))
	assert.True(t, calc.RefundDue.IsZero())
	assert.True(t, calc.AdditionalTaxDue.Equal(decimal.NewFromInt(3500)), "additional %s", calc.AdditionalTaxDue)
}

func TestEngineCalculate_Determinism(t *testing.T) {
	engine, err := NewEngine(engineRules())
	require.NoError(t, err)

	asOf := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	first, err := engine.Calculate(engineStatement(t), asOf)
	require.NoError(t, err)
	second, err := engine.Calculate(engineStatement(t), asOf)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngineCalculate_ValidationErrors(t *testing.T) {
	engine, err := NewEngine(engineRules())
	require.NoError(t, err)

	asOf := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mutate      func(*domain.Statement)
		expectedErr error
		description string
	}{
		{
			name: "Negative rental income",
			mutate: func(s *domain.Statement) {
				s.RentalIncome = decimal.NewFromInt(-1000)
			},
			expectedErr: domain.ErrInvalidAmount,
			description: "Income figures must not be negative",
		},
		{
			name: "Negative advance tax",
			mutate: func(s *domain.Statement) {
				s.TaxesPaid.AdvanceTax = decimal.NewFromInt(-1)
			},
			expectedErr: domain.ErrInvalidAmount,
			description: "Taxes paid must not be negative",
		},
		{
			name: "Disposal sold before purchase",
			mutate: func(s *domain.Statement) {
				s.Disposals[0].SaleDate = date(t, "2022-01-01")
			},
			expectedErr: domain.ErrInvalidDateRange,
			description: "Stage errors propagate through the engine",
		},
		{
			name: "Unknown deduction section",
			mutate: func(s *domain.Statement) {
				s.Deductions[0].Section = "80Z"
			},
			expectedErr: domain.ErrConfiguration,
			description: "Undeclared sections abort the run",
		},
		{
			name: "Withholding above gross",
			mutate: func(s *domain.Statement) {
				s.Dividends[0].TaxWithheld = decimal.NewFromInt(25000)
			},
			expectedErr: domain.ErrInvalidWithholding,
			description: "Income validation aborts the run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := engineStatement(t)
			tt.mutate(stmt)

			calc, err := engine.Calculate(stmt, asOf)
			require.Error(t, err, tt.description)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, calc, "no partial calculation on failure")
		})
	}
}

func TestNewEngine_RulesErrors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*domain.TaxRules)
		description string
	}{
		{
			name: "Missing holding threshold",
			mutate: func(r *domain.TaxRules) {
				delete(r.HoldingThresholds, domain.AssetCategoryDebt)
			},
			description: "Every category needs a threshold",
		},
		{
			name: "Negative gains rate",
			mutate: func(r *domain.TaxRules) {
				r.CapitalGainsRates.ShortTerm = decimal.NewFromFloat(-0.15)
			},
			description: "Rates must not be negative",
		},
		{
			name: "Negative section cap",
			mutate: func(r *domain.TaxRules) {
				r.SectionCaps["80C"] = decimal.NewFromInt(-1)
			},
			description: "Caps must not be negative",
		},
		{
			name: "No rate schedule",
			mutate: func(r *domain.TaxRules) {
				r.Slabs = nil
			},
			description: "A flat rate or slab table is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := engineRules()
			tt.mutate(rules)

			engine, err := NewEngine(rules)
			require.Error(t, err, tt.description)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Nil(t, engine)
		})
	}
}
