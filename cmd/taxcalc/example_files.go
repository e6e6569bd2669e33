package main

// Starter files written by `taxcalc example`. Amounts are YAML strings so
// they parse into exact decimals.

const exampleRulesYAML = `# Jurisdiction tax rules for one tax year.
jurisdiction: "IN"
tax_year: "2023-24"
fiscal_year_start_month: 4

# Whole days beyond which a disposal is long-term (exclusive boundary).
holding_thresholds:
  equity: 365
  debt: 1095
  other: 1095

capital_gains_rates:
  short_term: "0.15"
  long_term: "0.10"

# Progressive income tax slabs; max 0 marks the open-ended top slab.
# Use flat_rate instead of slabs for flat-tax jurisdictions.
slabs:
  - min: "0"
    max: "250000"
    rate: "0"
  - min: "250000"
    max: "500000"
    rate: "0.05"
  - min: "500000"
    max: "1000000"
    rate: "0.20"
  - min: "1000000"
    max: "0"
    rate: "0.30"

# Contribution caps per statutory section; 0 means no fixed limit.
section_caps:
  "80C": "150000"
  "80D": "25000"
  "80CCD": "50000"
  "24B": "200000"
  "80G": "0"
  "80EEA": "150000"
  "80TTA": "10000"
`

const exampleStatementYAML = `# Statement of records for one reporting run.
disposals:
  - asset_name: "NIFTYBEES"
    category: "equity"
    purchase_date: "2022-01-01"
    sale_date: "2023-06-01"
    purchase_price: "100000"
    sale_price: "150000"
  - asset_name: "TECHCO"
    category: "equity"
    purchase_date: "2023-02-15"
    sale_date: "2023-09-20"
    purchase_price: "80000"
    sale_price: "95000"

dividends:
  - source: "TECHCO"
    gross: "10000"
    tax_withheld: "1000"

interest:
  - source: "Savings account"
    category: "savings"
    gross: "8000"
  - source: "Fixed deposit"
    category: "fixed_deposit"
    gross: "42000"
    tax_withheld: "4200"

deductions:
  - section: "80C"
    investment_name: "ELSS fund"
    amount: "120000"
    contributed_on: "2023-07-05"
  - section: "80C"
    investment_name: "PPF"
    amount: "80000"
    contributed_on: "2024-01-12"
  - section: "80D"
    investment_name: "Health insurance"
    amount: "18000"
    contributed_on: "2023-05-30"

rental_income: "240000"

taxes_paid:
  tds: "5200"
  advance_tax: "30000"
`
