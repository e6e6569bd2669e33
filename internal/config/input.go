package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/wealthwise/tax-calculator/internal/domain"
)

// InputParser handles parsing of the rules and statement input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRules loads a jurisdiction's tax rules from a YAML file.
func (ip *InputParser) LoadRules(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	return &rules, nil
}

// LoadStatement loads the reporting run's input records from a YAML file.
func (ip *InputParser) LoadStatement(filename string) (*domain.Statement, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var stmt domain.Statement
	if err := yaml.Unmarshal(data, &stmt); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateStatement(&stmt); err != nil {
		return nil, fmt.Errorf("statement validation failed: %w", err)
	}

	return &stmt, nil
}

// ValidateRules checks the shape of the rules before the engine runs.
// Rate and cap semantics are validated again when the engine is built;
// this catches malformed files with a file-oriented message.
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	if rules.FiscalYearStartMonth < 0 || rules.FiscalYearStartMonth > 12 {
		return fmt.Errorf("fiscal_year_start_month must be 1-12, got %d: %w", rules.FiscalYearStartMonth, domain.ErrConfiguration)
	}
	if len(rules.HoldingThresholds) == 0 {
		return fmt.Errorf("holding_thresholds is required: %w", domain.ErrConfiguration)
	}
	for cat, days := range rules.HoldingThresholds {
		if !cat.Valid() {
			return fmt.Errorf("holding_thresholds: unknown category %q: %w", cat, domain.ErrConfiguration)
		}
		if days <= 0 {
			return fmt.Errorf("holding_thresholds[%s] must be positive, got %d: %w", cat, days, domain.ErrConfiguration)
		}
	}
	if rules.CapitalGainsRates.ShortTerm.IsNegative() || rules.CapitalGainsRates.LongTerm.IsNegative() {
		return fmt.Errorf("capital_gains_rates must not be negative: %w", domain.ErrConfiguration)
	}
	if rules.FlatRate == nil && len(rules.Slabs) == 0 {
		return fmt.Errorf("either flat_rate or slabs is required: %w", domain.ErrConfiguration)
	}
	for section, cap := range rules.SectionCaps {
		if cap.IsNegative() {
			return fmt.Errorf("section_caps[%s] must not be negative, got %s: %w", section, cap, domain.ErrConfiguration)
		}
	}
	return nil
}

// ValidateStatement checks record-level preconditions so a bad file fails
// with the offending record's identity rather than deep in the math.
func (ip *InputParser) ValidateStatement(stmt *domain.Statement) error {
	for i, d := range stmt.Disposals {
		if d.AssetName == "" {
			return fmt.Errorf("disposal %d: asset_name is required", i)
		}
		if !d.Category.Valid() {
			return fmt.Errorf("disposal %d (%s): unknown category %q: %w", i, d.AssetName, d.Category, domain.ErrConfiguration)
		}
		if d.PurchaseDate.IsZero() || d.SaleDate.IsZero() {
			return fmt.Errorf("disposal %d (%s): purchase_date and sale_date are required", i, d.AssetName)
		}
		if d.SaleDate.Before(d.PurchaseDate) {
			return fmt.Errorf("disposal %d (%s): %w", i, d.AssetName, domain.ErrInvalidDateRange)
		}
		if d.PurchasePrice.IsNegative() || d.SalePrice.IsNegative() {
			return fmt.Errorf("disposal %d (%s): prices must not be negative: %w", i, d.AssetName, domain.ErrInvalidAmount)
		}
	}
	for i, r := range stmt.Dividends {
		if err := validateIncomeRecord("dividend", i, r); err != nil {
			return err
		}
	}
	for i, r := range stmt.Interest {
		if err := validateIncomeRecord("interest", i, r); err != nil {
			return err
		}
	}
	for i, e := range stmt.Deductions {
		if e.Section == "" {
			return fmt.Errorf("deduction %d (%s): section is required", i, e.InvestmentName)
		}
		if e.Amount.IsNegative() {
			return fmt.Errorf("deduction %d (%s): amount must not be negative: %w", i, e.InvestmentName, domain.ErrInvalidAmount)
		}
	}
	if stmt.RentalIncome.IsNegative() || stmt.BusinessIncome.IsNegative() || stmt.OtherIncome.IsNegative() {
		return fmt.Errorf("income figures must not be negative: %w", domain.ErrInvalidAmount)
	}
	if stmt.TaxesPaid.TDS.IsNegative() || stmt.TaxesPaid.AdvanceTax.IsNegative() {
		return fmt.Errorf("taxes_paid must not be negative: %w", domain.ErrInvalidAmount)
	}
	return nil
}

func validateIncomeRecord(kind string, i int, r domain.IncomeRecord) error {
	if r.Source == "" {
		return fmt.Errorf("%s record %d: source is required", kind, i)
	}
	if r.Gross.IsNegative() || r.TaxWithheld.IsNegative() {
		return fmt.Errorf("%s record %d (%s): amounts must not be negative: %w", kind, i, r.Source, domain.ErrInvalidAmount)
	}
	if r.TaxWithheld.GreaterThan(r.Gross) {
		return fmt.Errorf("%s record %d (%s): %w", kind, i, r.Source, domain.ErrInvalidWithholding)
	}
	if r.PeriodStart != nil && r.PeriodEnd != nil && r.PeriodEnd.Before(*r.PeriodStart) {
		return fmt.Errorf("%s record %d (%s): period end before start: %w", kind, i, r.Source, domain.ErrInvalidDateRange)
	}
	return nil
}

// ExampleRules creates a starter rules file: April fiscal start,
// 365/1095-day thresholds, 15%/10% gains rates, familiar section caps and
// a progressive slab table.
func (ip *InputParser) ExampleRules() *domain.TaxRules {
	cap80C := decimal.NewFromInt(150000)
	cap80D := decimal.NewFromInt(25000)
	cap80CCD := decimal.NewFromInt(50000)
	cap24B := decimal.NewFromInt(200000)

	return &domain.TaxRules{
		Jurisdiction:         "IN",
		TaxYear:              "2023-24",
		FiscalYearStartMonth: 4,
		HoldingThresholds: map[domain.AssetCategory]int{
			domain.AssetCategoryEquity: 365,
			domain.AssetCategoryDebt:   1095,
			domain.AssetCategoryOther:  1095,
		},
		CapitalGainsRates: domain.CapitalGainsRates{
			ShortTerm: decimal.NewFromFloat(0.15),
			LongTerm:  decimal.NewFromFloat(0.10),
		},
		Slabs: []domain.Slab{
			{Min: decimal.Zero, Max: decimal.NewFromInt(250000), Rate: decimal.Zero},
			{Min: decimal.NewFromInt(250000), Max: decimal.NewFromInt(500000), Rate: decimal.NewFromFloat(0.05)},
			{Min: decimal.NewFromInt(500000), Max: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.20)},
			{Min: decimal.NewFromInt(1000000), Max: decimal.Zero, Rate: decimal.NewFromFloat(0.30)},
		},
		SectionCaps: map[string]decimal.Decimal{
			"80C":   cap80C,
			"80D":   cap80D,
			"80CCD": cap80CCD,
			"24B":   cap24B,
			"80G":   decimal.Zero, // donations, no fixed limit
			"80EEA": decimal.NewFromInt(150000),
			"80TTA": decimal.NewFromInt(10000),
		},
	}
}

// ExampleStatement creates a small worked statement matching the example
// rules: one long-term and one short-term equity disposal, dividend and
// interest records with TDS, and contributions that overshoot the 80C cap.
func (ip *InputParser) ExampleStatement() *domain.Statement {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	return &domain.Statement{
		Disposals: []domain.Disposal{
			{
				AssetName:     "NIFTYBEES",
				Category:      domain.AssetCategoryEquity,
				PurchaseDate:  date("2022-01-01"),
				SaleDate:      date("2023-06-01"),
				PurchasePrice: decimal.NewFromInt(100000),
				SalePrice:     decimal.NewFromInt(150000),
			},
			{
				AssetName:     "TECHCO",
				Category:      domain.AssetCategoryEquity,
				PurchaseDate:  date("2023-02-15"),
				SaleDate:      date("2023-09-20"),
				PurchasePrice: decimal.NewFromInt(80000),
				SalePrice:     decimal.NewFromInt(95000),
			},
		},
		Dividends: []domain.IncomeRecord{
			{Source: "TECHCO", Gross: decimal.NewFromInt(10000), TaxWithheld: decimal.NewFromInt(1000)},
		},
		Interest: []domain.IncomeRecord{
			{Source: "Savings account", Category: domain.InterestSavings, Gross: decimal.NewFromInt(8000), TaxWithheld: decimal.Zero},
			{Source: "Fixed deposit", Category: domain.InterestFixedDeposit, Gross: decimal.NewFromInt(42000), TaxWithheld: decimal.NewFromInt(4200)},
		},
		Deductions: []domain.DeductionEntry{
			{Section: "80C", InvestmentName: "ELSS fund", Amount: decimal.NewFromInt(120000), ContributedOn: date("2023-07-05")},
			{Section: "80C", InvestmentName: "PPF", Amount: decimal.NewFromInt(80000), ContributedOn: date("2024-01-12")},
			{Section: "80D", InvestmentName: "Health insurance", Amount: decimal.NewFromInt(18000), ContributedOn: date("2023-05-30")},
		},
		RentalIncome:   decimal.NewFromInt(240000),
		BusinessIncome: decimal.Zero,
		OtherIncome:    decimal.Zero,
		TaxesPaid: domain.TaxesPaid{
			TDS:        decimal.NewFromInt(5200),
			AdvanceTax: decimal.NewFromInt(30000),
		},
	}
}
