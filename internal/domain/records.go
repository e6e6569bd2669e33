package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AssetCategory groups investments by the holding-period rules that apply
// to their disposal.
type AssetCategory string

const (
	AssetCategoryEquity AssetCategory = "equity"
	AssetCategoryDebt   AssetCategory = "debt"
	AssetCategoryOther  AssetCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c AssetCategory) Valid() bool {
	switch c {
	case AssetCategoryEquity, AssetCategoryDebt, AssetCategoryOther:
		return true
	}
	return false
}

// InterestCategory identifies the source of an interest income record.
type InterestCategory string

const (
	InterestSavings      InterestCategory = "savings"
	InterestFixedDeposit InterestCategory = "fixed_deposit"
	InterestBond         InterestCategory = "bond"
	InterestDebtFund     InterestCategory = "debt_fund"
	InterestOther        InterestCategory = "other"
)

// Disposal represents the sale of one investment lot. Immutable once
// constructed; derived values (holding days, gain, classification, tax)
// are computed by the calculation package, never stored here.
type Disposal struct {
	AssetName     string          `yaml:"asset_name" json:"asset_name"`
	Category      AssetCategory   `yaml:"category" json:"category"`
	PurchaseDate  time.Time       `yaml:"purchase_date" json:"purchase_date"`
	SaleDate      time.Time       `yaml:"sale_date" json:"sale_date"`
	PurchasePrice decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	SalePrice     decimal.Decimal `yaml:"sale_price" json:"sale_price"`
}

// Gain returns the signed gain on the disposal (sale minus purchase).
func (d Disposal) Gain() decimal.Decimal {
	return d.SalePrice.Sub(d.PurchasePrice)
}

// UnmarshalYAML implements custom YAML unmarshaling for Disposal
func (d *Disposal) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		AssetName     string `yaml:"asset_name"`
		Category      string `yaml:"category"`
		PurchaseDate  string `yaml:"purchase_date"`
		SaleDate      string `yaml:"sale_date"`
		PurchasePrice string `yaml:"purchase_price"`
		SalePrice     string `yaml:"sale_price"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	d.AssetName = aux.AssetName
	d.Category = AssetCategory(aux.Category)

	var err error
	if d.PurchaseDate, err = parseDate(aux.PurchaseDate); err != nil {
		return fmt.Errorf("purchase_date: %w", err)
	}
	if d.SaleDate, err = parseDate(aux.SaleDate); err != nil {
		return fmt.Errorf("sale_date: %w", err)
	}
	if d.PurchasePrice, err = decimal.NewFromString(aux.PurchasePrice); err != nil {
		return fmt.Errorf("purchase_price: %w", err)
	}
	if d.SalePrice, err = decimal.NewFromString(aux.SalePrice); err != nil {
		return fmt.Errorf("sale_price: %w", err)
	}

	return nil
}

// IncomeRecord is a single dividend or interest receipt. Tax withheld at
// source (TDS) is a prepayment: the gross amount feeds taxable income and
// the net amount is reporting-only.
type IncomeRecord struct {
	Source      string           `yaml:"source" json:"source"`
	Category    InterestCategory `yaml:"category,omitempty" json:"category,omitempty"`
	Gross       decimal.Decimal  `yaml:"gross" json:"gross"`
	TaxWithheld decimal.Decimal  `yaml:"tax_withheld" json:"tax_withheld"`
	PeriodStart *time.Time       `yaml:"period_start,omitempty" json:"period_start,omitempty"`
	PeriodEnd   *time.Time       `yaml:"period_end,omitempty" json:"period_end,omitempty"`
}

// Net returns the amount actually received after withholding.
func (r IncomeRecord) Net() decimal.Decimal {
	return r.Gross.Sub(r.TaxWithheld)
}

// UnmarshalYAML implements custom YAML unmarshaling for IncomeRecord
func (r *IncomeRecord) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Source      string  `yaml:"source"`
		Category    string  `yaml:"category"`
		Gross       string  `yaml:"gross"`
		TaxWithheld string  `yaml:"tax_withheld"`
		PeriodStart *string `yaml:"period_start"`
		PeriodEnd   *string `yaml:"period_end"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	r.Source = aux.Source
	r.Category = InterestCategory(aux.Category)

	var err error
	if r.Gross, err = decimal.NewFromString(aux.Gross); err != nil {
		return fmt.Errorf("gross: %w", err)
	}
	r.TaxWithheld = decimal.Zero
	if aux.TaxWithheld != "" {
		if r.TaxWithheld, err = decimal.NewFromString(aux.TaxWithheld); err != nil {
			return fmt.Errorf("tax_withheld: %w", err)
		}
	}
	if aux.PeriodStart != nil {
		start, err := parseDate(*aux.PeriodStart)
		if err != nil {
			return fmt.Errorf("period_start: %w", err)
		}
		r.PeriodStart = &start
	}
	if aux.PeriodEnd != nil {
		end, err := parseDate(*aux.PeriodEnd)
		if err != nil {
			return fmt.Errorf("period_end: %w", err)
		}
		r.PeriodEnd = &end
	}

	return nil
}

// DeductionEntry is one tax-saving contribution tagged with its statutory
// section. Entries are not self-capping: cap enforcement happens when the
// tracker aggregates entries by section.
type DeductionEntry struct {
	Section        string          `yaml:"section" json:"section"`
	InvestmentName string          `yaml:"investment_name" json:"investment_name"`
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	ContributedOn  time.Time       `yaml:"contributed_on" json:"contributed_on"`
}

// UnmarshalYAML implements custom YAML unmarshaling for DeductionEntry
func (e *DeductionEntry) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Section        string `yaml:"section"`
		InvestmentName string `yaml:"investment_name"`
		Amount         string `yaml:"amount"`
		ContributedOn  string `yaml:"contributed_on"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	e.Section = aux.Section
	e.InvestmentName = aux.InvestmentName

	var err error
	if e.Amount, err = decimal.NewFromString(aux.Amount); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if aux.ContributedOn != "" {
		if e.ContributedOn, err = parseDate(aux.ContributedOn); err != nil {
			return fmt.Errorf("contributed_on: %w", err)
		}
	}

	return nil
}

// TaxesPaid records tax already remitted for the year.
type TaxesPaid struct {
	TDS        decimal.Decimal `yaml:"tds" json:"tds"`
	AdvanceTax decimal.Decimal `yaml:"advance_tax" json:"advance_tax"`
}

// Total returns TDS plus advance tax.
func (p TaxesPaid) Total() decimal.Decimal {
	return p.TDS.Add(p.AdvanceTax)
}

// UnmarshalYAML implements custom YAML unmarshaling for TaxesPaid
func (p *TaxesPaid) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		TDS        string `yaml:"tds"`
		AdvanceTax string `yaml:"advance_tax"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if p.TDS, err = optionalDecimal(aux.TDS); err != nil {
		return fmt.Errorf("tds: %w", err)
	}
	if p.AdvanceTax, err = optionalDecimal(aux.AdvanceTax); err != nil {
		return fmt.Errorf("advance_tax: %w", err)
	}

	return nil
}

// Statement is the full set of input records for one reporting run. The
// engine never mutates it; recomputing after a correction means loading a
// new statement and producing a new calculation.
type Statement struct {
	Disposals  []Disposal       `yaml:"disposals" json:"disposals"`
	Dividends  []IncomeRecord   `yaml:"dividends" json:"dividends"`
	Interest   []IncomeRecord   `yaml:"interest" json:"interest"`
	Deductions []DeductionEntry `yaml:"deductions" json:"deductions"`

	RentalIncome   decimal.Decimal `yaml:"rental_income" json:"rental_income"`
	BusinessIncome decimal.Decimal `yaml:"business_income" json:"business_income"`
	OtherIncome    decimal.Decimal `yaml:"other_income" json:"other_income"`

	TaxesPaid TaxesPaid `yaml:"taxes_paid" json:"taxes_paid"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Statement
func (s *Statement) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Disposals      []Disposal       `yaml:"disposals"`
		Dividends      []IncomeRecord   `yaml:"dividends"`
		Interest       []IncomeRecord   `yaml:"interest"`
		Deductions     []DeductionEntry `yaml:"deductions"`
		RentalIncome   string           `yaml:"rental_income"`
		BusinessIncome string           `yaml:"business_income"`
		OtherIncome    string           `yaml:"other_income"`
		TaxesPaid      TaxesPaid        `yaml:"taxes_paid"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	s.Disposals = aux.Disposals
	s.Dividends = aux.Dividends
	s.Interest = aux.Interest
	s.Deductions = aux.Deductions
	s.TaxesPaid = aux.TaxesPaid

	var err error
	if s.RentalIncome, err = optionalDecimal(aux.RentalIncome); err != nil {
		return fmt.Errorf("rental_income: %w", err)
	}
	if s.BusinessIncome, err = optionalDecimal(aux.BusinessIncome); err != nil {
		return fmt.Errorf("business_income: %w", err)
	}
	if s.OtherIncome, err = optionalDecimal(aux.OtherIncome); err != nil {
		return fmt.Errorf("other_income: %w", err)
	}

	return nil
}

// parseDate accepts the date-only form used in statement files as well as
// full RFC 3339 timestamps; the time-of-day component is discarded either
// way since all holding arithmetic is calendar-day based.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
