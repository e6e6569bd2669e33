package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/tax-calculator/internal/domain"
	pdecimal "github.com/wealthwise/tax-calculator/pkg/decimal"
)

// TaxReconciler combines the three aggregate results into the final
// TaxCalculation: gross income, taxable income after deductions, tax owed
// via the injected schedule, and the refund / additional-due split
// against tax already paid. Single-pass and pure; it never returns a
// partial calculation.
type TaxReconciler struct {
	Schedule RateSchedule
	Logger   Logger
}

// NewTaxReconciler creates a reconciler over the given rate schedule.
func NewTaxReconciler(schedule RateSchedule) *TaxReconciler {
	return &TaxReconciler{Schedule: schedule, Logger: NopLogger{}}
}

// ReconcileInput carries everything the reconciler joins. The capital
// gains total is signed: a net loss reduces gross income below the sum of
// the income categories.
type ReconcileInput struct {
	CapitalGains *domain.CapitalGainsResult
	Income       *domain.IncomeTotals
	Deductions   *domain.DeductionSummary

	RentalIncome   decimal.Decimal
	BusinessIncome decimal.Decimal
	OtherIncome    decimal.Decimal

	TaxPaid decimal.Decimal

	FinancialYear string
	Jurisdiction  string
	CalculatedAt  time.Time
}

// Reconcile produces the immutable root result. Deterministic: identical
// inputs (including CalculatedAt) yield identical output.
func (tr *TaxReconciler) Reconcile(in ReconcileInput) *domain.TaxCalculation {
	grossIncome := in.CapitalGains.Total.
		Add(in.Income.Dividend.Gross).
		Add(in.Income.Interest.Gross).
		Add(in.RentalIncome).
		Add(in.BusinessIncome).
		Add(in.OtherIncome)

	taxableIncome := decimal.Max(decimal.Zero, grossIncome.Sub(in.Deductions.TotalDeductible))

	taxOwed := tr.Schedule.Apply(taxableIncome)

	refundDue := decimal.Max(decimal.Zero, in.TaxPaid.Sub(taxOwed))
	additionalDue := decimal.Max(decimal.Zero, taxOwed.Sub(in.TaxPaid))

	effectiveRate := pdecimal.NewMoneyFromDecimal(taxOwed).Percent(pdecimal.NewMoneyFromDecimal(grossIncome))

	tr.Logger.Debugf("reconcile %s: gross=%s deductible=%s taxable=%s owed=%s paid=%s",
		in.FinancialYear, grossIncome.StringFixed(2), in.Deductions.TotalDeductible.StringFixed(2),
		taxableIncome.StringFixed(2), taxOwed.StringFixed(2), in.TaxPaid.StringFixed(2))

	return &domain.TaxCalculation{
		FinancialYear: in.FinancialYear,
		Jurisdiction:  in.Jurisdiction,
		CalculatedAt:  in.CalculatedAt,

		CapitalGains: *in.CapitalGains,
		Income:       *in.Income,
		Deductions:   *in.Deductions,

		RentalIncome:   in.RentalIncome,
		BusinessIncome: in.BusinessIncome,
		OtherIncome:    in.OtherIncome,

		GrossIncome:   grossIncome,
		TaxableIncome: taxableIncome,

		TaxOwed:          taxOwed,
		TaxPaid:          in.TaxPaid,
		RefundDue:        refundDue,
		AdditionalTaxDue: additionalDue,

		EffectiveTaxRate: effectiveRate,
	}
}
