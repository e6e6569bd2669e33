package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// TaxRules is the full jurisdiction configuration for one tax year:
// holding-period thresholds, capital gains rates, the income tax schedule,
// section caps and the fiscal-year start month. A new year's rules are a
// data change, not a code change.
type TaxRules struct {
	Jurisdiction         string `yaml:"jurisdiction" json:"jurisdiction"`
	TaxYear              string `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	FiscalYearStartMonth int    `yaml:"fiscal_year_start_month" json:"fiscal_year_start_month"`

	// HoldingThresholds maps asset category to the number of whole days
	// beyond which a disposal is long-term (exclusive boundary).
	HoldingThresholds map[AssetCategory]int `yaml:"holding_thresholds" json:"holding_thresholds"`

	CapitalGainsRates CapitalGainsRates `yaml:"capital_gains_rates" json:"capital_gains_rates"`

	// Slabs define a progressive schedule for income tax. Mutually
	// exclusive with FlatRate; exactly one must be set.
	Slabs    []Slab           `yaml:"slabs,omitempty" json:"slabs,omitempty"`
	FlatRate *decimal.Decimal `yaml:"flat_rate,omitempty" json:"flat_rate,omitempty"`

	// SectionCaps maps statutory section tags to their contribution cap.
	// A zero cap means the section has no fixed limit.
	SectionCaps map[string]decimal.Decimal `yaml:"section_caps" json:"section_caps"`
}

// FiscalStartMonth returns the configured start month, defaulting to
// January when unset.
func (r *TaxRules) FiscalStartMonth() time.Month {
	if r.FiscalYearStartMonth == 0 {
		return time.January
	}
	return time.Month(r.FiscalYearStartMonth)
}

// UnmarshalYAML implements custom YAML unmarshaling for TaxRules
func (r *TaxRules) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Jurisdiction         string            `yaml:"jurisdiction"`
		TaxYear              string            `yaml:"tax_year"`
		FiscalYearStartMonth int               `yaml:"fiscal_year_start_month"`
		HoldingThresholds    map[string]int    `yaml:"holding_thresholds"`
		CapitalGainsRates    CapitalGainsRates `yaml:"capital_gains_rates"`
		Slabs                []Slab            `yaml:"slabs"`
		FlatRate             *string           `yaml:"flat_rate"`
		SectionCaps          map[string]string `yaml:"section_caps"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	r.Jurisdiction = aux.Jurisdiction
	r.TaxYear = aux.TaxYear
	r.FiscalYearStartMonth = aux.FiscalYearStartMonth
	r.CapitalGainsRates = aux.CapitalGainsRates
	r.Slabs = aux.Slabs

	r.HoldingThresholds = make(map[AssetCategory]int, len(aux.HoldingThresholds))
	for cat, days := range aux.HoldingThresholds {
		r.HoldingThresholds[AssetCategory(cat)] = days
	}

	if aux.FlatRate != nil {
		rate, err := decimal.NewFromString(*aux.FlatRate)
		if err != nil {
			return fmt.Errorf("flat_rate: %w", err)
		}
		r.FlatRate = &rate
	}

	r.SectionCaps = make(map[string]decimal.Decimal, len(aux.SectionCaps))
	for section, cap := range aux.SectionCaps {
		amount, err := decimal.NewFromString(cap)
		if err != nil {
			return fmt.Errorf("section_caps[%s]: %w", section, err)
		}
		r.SectionCaps[section] = amount
	}

	return nil
}

// CapitalGainsRates holds the flat rates applied per classification.
type CapitalGainsRates struct {
	ShortTerm decimal.Decimal `yaml:"short_term" json:"short_term"`
	LongTerm  decimal.Decimal `yaml:"long_term" json:"long_term"`
}

// UnmarshalYAML implements custom YAML unmarshaling for CapitalGainsRates
func (c *CapitalGainsRates) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		ShortTerm string `yaml:"short_term"`
		LongTerm  string `yaml:"long_term"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if c.ShortTerm, err = decimal.NewFromString(aux.ShortTerm); err != nil {
		return fmt.Errorf("short_term: %w", err)
	}
	if c.LongTerm, err = decimal.NewFromString(aux.LongTerm); err != nil {
		return fmt.Errorf("long_term: %w", err)
	}

	return nil
}

// Slab is one band of a progressive tax schedule. Max of zero marks the
// open-ended top band.
type Slab struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Slab
func (s *Slab) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Min  string `yaml:"min"`
		Max  string `yaml:"max"`
		Rate string `yaml:"rate"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if s.Min, err = decimal.NewFromString(aux.Min); err != nil {
		return fmt.Errorf("min: %w", err)
	}
	s.Max = decimal.Zero
	if aux.Max != "" {
		if s.Max, err = decimal.NewFromString(aux.Max); err != nil {
			return fmt.Errorf("max: %w", err)
		}
	}
	if s.Rate, err = decimal.NewFromString(aux.Rate); err != nil {
		return fmt.Errorf("rate: %w", err)
	}

	return nil
}
