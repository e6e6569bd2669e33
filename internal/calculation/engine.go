package calculation

import (
	"fmt"
	"time"

	"github.com/wealthwise/tax-calculator/internal/domain"
	"github.com/wealthwise/tax-calculator/pkg/dateutil"
)

// Engine orchestrates one reporting run: capital gains, income and
// deduction aggregation fan out over the statement independently, then
// the reconciler joins the three results into the final TaxCalculation.
// The engine reads no clock and keeps no state between runs; identical
// statement and asOf inputs produce identical calculations.
type Engine struct {
	Rules      *domain.TaxRules
	GainsCalc  *CapitalGainsCalculator
	IncomeAgg  *IncomeAggregator
	Deductions *DeductionTracker
	Reconciler *TaxReconciler
	Logger     Logger
}

// NewEngine creates an engine for one jurisdiction's rules. All rule
// validation happens here, before any statement is processed.
func NewEngine(rules *domain.TaxRules) (*Engine, error) {
	classifier, err := NewHoldingClassifier(rules.HoldingThresholds)
	if err != nil {
		return nil, fmt.Errorf("holding thresholds: %w", err)
	}
	if rules.CapitalGainsRates.ShortTerm.IsNegative() || rules.CapitalGainsRates.LongTerm.IsNegative() {
		return nil, fmt.Errorf("capital gains rates must not be negative: %w", domain.ErrConfiguration)
	}
	tracker, err := NewDeductionTracker(rules.SectionCaps)
	if err != nil {
		return nil, fmt.Errorf("section caps: %w", err)
	}
	schedule, err := NewRateSchedule(rules)
	if err != nil {
		return nil, fmt.Errorf("rate schedule: %w", err)
	}

	return &Engine{
		Rules:      rules,
		GainsCalc:  NewCapitalGainsCalculator(classifier, rules.CapitalGainsRates),
		IncomeAgg:  NewIncomeAggregator(),
		Deductions: tracker,
		Reconciler: NewTaxReconciler(schedule),
		Logger:     NopLogger{},
	}, nil
}

// SetLogger sets the logger for the engine and its stages. If nil is
// provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.GainsCalc.Logger = l
	e.Reconciler.Logger = l
}

// Calculate runs the full pipeline for a statement. asOf determines the
// financial-year label and the CalculatedAt stamp; callers supply it
// explicitly so runs are reproducible without clock mocking. Any
// validation failure aborts the run; no partial calculation is returned.
func (e *Engine) Calculate(stmt *domain.Statement, asOf time.Time) (*domain.TaxCalculation, error) {
	if stmt.RentalIncome.IsNegative() || stmt.BusinessIncome.IsNegative() || stmt.OtherIncome.IsNegative() {
		return nil, fmt.Errorf("rental, business and other income must not be negative: %w", domain.ErrInvalidAmount)
	}
	if stmt.TaxesPaid.TDS.IsNegative() || stmt.TaxesPaid.AdvanceTax.IsNegative() {
		return nil, fmt.Errorf("taxes paid must not be negative: %w", domain.ErrInvalidAmount)
	}

	gains, err := e.GainsCalc.Compute(stmt.Disposals)
	if err != nil {
		return nil, fmt.Errorf("capital gains: %w", err)
	}

	income, err := e.IncomeAgg.Aggregate(stmt.Dividends, stmt.Interest)
	if err != nil {
		return nil, fmt.Errorf("income: %w", err)
	}

	deductions, err := e.Deductions.Track(stmt.Deductions)
	if err != nil {
		return nil, fmt.Errorf("deductions: %w", err)
	}

	fy := dateutil.FinancialYear(asOf, e.Rules.FiscalStartMonth())

	calc := e.Reconciler.Reconcile(ReconcileInput{
		CapitalGains:   gains,
		Income:         income,
		Deductions:     deductions,
		RentalIncome:   stmt.RentalIncome,
		BusinessIncome: stmt.BusinessIncome,
		OtherIncome:    stmt.OtherIncome,
		TaxPaid:        stmt.TaxesPaid.Total(),
		FinancialYear:  fy,
		Jurisdiction:   e.Rules.Jurisdiction,
		CalculatedAt:   asOf,
	})

	e.logBreakdown(calc)
	return calc, nil
}

// logBreakdown emits the run summary at debug level.
func (e *Engine) logBreakdown(calc *domain.TaxCalculation) {
	e.Logger.Debugf("TAX CALCULATION BREAKDOWN (%s):", calc.FinancialYear)
	e.Logger.Debugf("==================================")
	e.Logger.Debugf("Short-term gains:   %s", calc.CapitalGains.ShortTermTotal.StringFixed(2))
	e.Logger.Debugf("Long-term gains:    %s", calc.CapitalGains.LongTermTotal.StringFixed(2))
	e.Logger.Debugf("Dividend (gross):   %s", calc.Income.Dividend.Gross.StringFixed(2))
	e.Logger.Debugf("Interest (gross):   %s", calc.Income.Interest.Gross.StringFixed(2))
	e.Logger.Debugf("Gross income:       %s", calc.GrossIncome.StringFixed(2))
	e.Logger.Debugf("Deductions:         %s", calc.Deductions.TotalDeductible.StringFixed(2))
	e.Logger.Debugf("Taxable income:     %s", calc.TaxableIncome.StringFixed(2))
	e.Logger.Debugf("Tax owed:           %s", calc.TaxOwed.StringFixed(2))
	e.Logger.Debugf("Tax paid:           %s", calc.TaxPaid.StringFixed(2))
	e.Logger.Debugf("Refund due:         %s", calc.RefundDue.StringFixed(2))
	e.Logger.Debugf("Additional due:     %s", calc.AdditionalTaxDue.StringFixed(2))
}
