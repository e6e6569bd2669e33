package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxLine is the computed result for a single disposal: the holding
// classification, the signed gain, and the tax due when the gain is
// positive. Losses produce a zero tax amount but keep their signed gain
// so they offset other gains of the same classification in the totals.
type TaxLine struct {
	AssetName  string          `json:"asset_name"`
	Category   AssetCategory   `json:"category"`
	Days       int             `json:"holding_days"`
	IsLongTerm bool            `json:"is_long_term"`
	Gain       decimal.Decimal `json:"gain"`
	Rate       decimal.Decimal `json:"rate"`
	Tax        decimal.Decimal `json:"tax"`
}

// CapitalGainsResult aggregates the per-disposal lines. The short and
// long term totals are signed: a net loss in a classification stays
// negative rather than being clamped. Cross-classification offset is
// deliberately not applied; the two totals remain independent.
type CapitalGainsResult struct {
	Lines []TaxLine `json:"lines,omitempty"`

	ShortTermTotal decimal.Decimal `json:"short_term_total"`
	LongTermTotal  decimal.Decimal `json:"long_term_total"`
	// Total is ShortTermTotal + LongTermTotal by construction.
	Total decimal.Decimal `json:"total"`

	// TaxOnGains is the sum of the per-line tax amounts, reported for
	// display alongside the schedule-based liability.
	TaxOnGains decimal.Decimal `json:"tax_on_gains"`
}

// IncomeCategoryTotal sums one income category. Gross feeds taxable
// income; net (gross minus withholding) is reporting-only.
type IncomeCategoryTotal struct {
	Gross    decimal.Decimal `json:"gross"`
	Withheld decimal.Decimal `json:"withheld"`
	Net      decimal.Decimal `json:"net"`
}

// IncomeTotals holds the aggregated dividend and interest categories.
type IncomeTotals struct {
	Dividend IncomeCategoryTotal `json:"dividend"`
	Interest IncomeCategoryTotal `json:"interest"`
}

// SectionStatus reports one statutory section's deduction position.
// Remaining and UtilizationPct are nil for uncapped sections, where
// headroom and utilization are not meaningful.
type SectionStatus struct {
	Section     string          `json:"section"`
	Cap         decimal.Decimal `json:"cap"`
	Contributed decimal.Decimal `json:"contributed"`
	// Deductible is the contributed amount clamped to the cap; this,
	// not the raw contribution, enters the total.
	Deductible     decimal.Decimal  `json:"deductible"`
	Remaining      *decimal.Decimal `json:"remaining,omitempty"`
	UtilizationPct *decimal.Decimal `json:"utilization_pct,omitempty"`
}

// DeductionSummary maps sections to their status plus the capped total
// the reconciler subtracts from gross income.
type DeductionSummary struct {
	Sections        map[string]SectionStatus `json:"sections"`
	TotalDeductible decimal.Decimal          `json:"total_deductible"`
}

// TaxCalculation is the root result of a reporting run. It is created
// once from immutable inputs and never mutated: a recalculation with a
// later CalculatedAt supersedes an earlier one.
//
// Invariants: CapitalGains.Total == ShortTermTotal + LongTermTotal;
// RefundDue and AdditionalTaxDue are both non-negative and at most one is
// nonzero; no section's Deductible exceeds its cap.
type TaxCalculation struct {
	FinancialYear string    `json:"financial_year"`
	Jurisdiction  string    `json:"jurisdiction,omitempty"`
	CalculatedAt  time.Time `json:"calculated_at"`

	CapitalGains CapitalGainsResult `json:"capital_gains"`
	Income       IncomeTotals       `json:"income"`
	Deductions   DeductionSummary   `json:"deductions"`

	RentalIncome   decimal.Decimal `json:"rental_income"`
	BusinessIncome decimal.Decimal `json:"business_income"`
	OtherIncome    decimal.Decimal `json:"other_income"`

	GrossIncome   decimal.Decimal `json:"gross_income"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`

	TaxOwed          decimal.Decimal `json:"tax_owed"`
	TaxPaid          decimal.Decimal `json:"tax_paid"`
	RefundDue        decimal.Decimal `json:"refund_due"`
	AdditionalTaxDue decimal.Decimal `json:"additional_tax_due"`

	// EffectiveTaxRate is reporting-only: owed as a percentage of gross
	// income, zero when gross income is not positive.
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"`
}
