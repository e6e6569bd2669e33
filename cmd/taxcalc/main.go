package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wealthwise/tax-calculator/internal/calculation"
	"github.com/wealthwise/tax-calculator/internal/config"
	"github.com/wealthwise/tax-calculator/internal/output"
)

var (
	rulesFile     string
	statementFile string
	formatName    string
	asOfFlag      string
	debug         bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taxcalc",
		Short: "Capital gains and income tax calculator",
		Long: `taxcalc computes capital gains classification, income aggregation,
section-capped deductions and the final tax reconciliation for one
financial year, from a jurisdiction rules file and a statement of
disposals, income records and deduction entries.`,
		SilenceUsage: true,
	}

	calculateCmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run a full tax calculation from rules and statement files",
		RunE:  runCalculate,
	}
	calculateCmd.Flags().StringVar(&rulesFile, "rules", "rules.yaml", "jurisdiction tax rules YAML file")
	calculateCmd.Flags().StringVar(&statementFile, "statement", "statement.yaml", "statement YAML file with disposals, income and deductions")
	calculateCmd.Flags().StringVar(&formatName, "format", "console", "output format (console, json)")
	calculateCmd.Flags().StringVar(&asOfFlag, "as-of", "", "calculation date YYYY-MM-DD (default: today)")
	calculateCmd.Flags().BoolVar(&debug, "debug", false, "print per-stage calculation breakdowns to stderr")

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Write starter rules.yaml and statement.yaml files",
		RunE:  runExample,
	}

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(exampleCmd)
	return rootCmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()

	rules, err := parser.LoadRules(rulesFile)
	if err != nil {
		return err
	}
	stmt, err := parser.LoadStatement(statementFile)
	if err != nil {
		return err
	}

	// The engine reads no clock; the CLI resolves "now" once and passes
	// it in so a run can be reproduced with --as-of.
	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if asOfFlag != "" {
		asOf, err = time.Parse("2006-01-02", asOfFlag)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD): %w", asOfFlag, err)
		}
	}

	engine, err := calculation.NewEngine(rules)
	if err != nil {
		return err
	}
	if debug {
		engine.SetLogger(stderrLogger{})
	}

	calc, err := engine.Calculate(stmt, asOf)
	if err != nil {
		return err
	}

	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %v)", formatName, output.AvailableFormatterNames())
	}
	data, err := formatter.Format(calc)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}

func runExample(cmd *cobra.Command, args []string) error {
	files := map[string]string{
		"rules.yaml":     exampleRulesYAML,
		"statement.yaml": exampleStatementYAML,
	}
	for name, content := range files {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", name)
		}
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
	}
	return nil
}

// stderrLogger routes engine debug output to stderr so stdout stays
// machine-readable.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { fmt.Fprintf(os.Stderr, format+"\n", args...) }
func (stderrLogger) Infof(format string, args ...any)  { fmt.Fprintf(os.Stderr, format+"\n", args...) }
func (stderrLogger) Warnf(format string, args ...any)  { fmt.Fprintf(os.Stderr, format+"\n", args...) }
func (stderrLogger) Errorf(format string, args ...any) { fmt.Fprintf(os.Stderr, format+"\n", args...) }
