package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wealthwise/tax-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(calc *domain.TaxCalculation) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX CALCULATION %s\n", calc.FinancialYear)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Calculated at: %s\n", calc.CalculatedAt.Format("2006-01-02"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CAPITAL GAINS")
	for _, line := range calc.CapitalGains.Lines {
		term := "ST"
		if line.IsLongTerm {
			term = "LT"
		}
		fmt.Fprintf(&buf, "  %-20s %s %4dd gain=%s tax=%s\n",
			line.AssetName, term, line.Days, FormatAmount(line.Gain), FormatAmount(line.Tax))
	}
	fmt.Fprintf(&buf, "  Short-term total: %s\n", FormatAmount(calc.CapitalGains.ShortTermTotal))
	fmt.Fprintf(&buf, "  Long-term total:  %s\n", FormatAmount(calc.CapitalGains.LongTermTotal))
	fmt.Fprintf(&buf, "  Total:            %s\n", FormatAmount(calc.CapitalGains.Total))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME")
	fmt.Fprintf(&buf, "  Dividend: gross=%s net=%s\n", FormatAmount(calc.Income.Dividend.Gross), FormatAmount(calc.Income.Dividend.Net))
	fmt.Fprintf(&buf, "  Interest: gross=%s net=%s\n", FormatAmount(calc.Income.Interest.Gross), FormatAmount(calc.Income.Interest.Net))
	fmt.Fprintf(&buf, "  Rental=%s Business=%s Other=%s\n",
		FormatAmount(calc.RentalIncome), FormatAmount(calc.BusinessIncome), FormatAmount(calc.OtherIncome))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "DEDUCTIONS")
	sections := make([]string, 0, len(calc.Deductions.Sections))
	for s := range calc.Deductions.Sections {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	for _, s := range sections {
		status := calc.Deductions.Sections[s]
		if status.UtilizationPct != nil {
			fmt.Fprintf(&buf, "  %-6s contributed=%s deductible=%s remaining=%s (%s used)\n",
				status.Section, FormatAmount(status.Contributed), FormatAmount(status.Deductible),
				FormatAmount(*status.Remaining), FormatPercentage(*status.UtilizationPct))
		} else {
			fmt.Fprintf(&buf, "  %-6s contributed=%s deductible=%s (no limit)\n",
				status.Section, FormatAmount(status.Contributed), FormatAmount(status.Deductible))
		}
	}
	fmt.Fprintf(&buf, "  Total deductible: %s\n", FormatAmount(calc.Deductions.TotalDeductible))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Gross income:     %s\n", FormatAmount(calc.GrossIncome))
	fmt.Fprintf(&buf, "Taxable income:   %s\n", FormatAmount(calc.TaxableIncome))
	fmt.Fprintf(&buf, "Tax owed:         %s\n", FormatAmount(calc.TaxOwed))
	fmt.Fprintf(&buf, "Tax paid:         %s\n", FormatAmount(calc.TaxPaid))
	if calc.RefundDue.IsPositive() {
		fmt.Fprintf(&buf, "Refund due:       %s\n", FormatAmount(calc.RefundDue))
	} else if calc.AdditionalTaxDue.IsPositive() {
		fmt.Fprintf(&buf, "Additional due:   %s\n", FormatAmount(calc.AdditionalTaxDue))
	} else {
		fmt.Fprintln(&buf, "Settled: tax paid matches tax owed")
	}
	fmt.Fprintf(&buf, "Effective rate:   %s\n", FormatPercentage(calc.EffectiveTaxRate))

	return buf.Bytes(), nil
}
