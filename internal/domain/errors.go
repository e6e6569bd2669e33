package domain

import "errors"

// Validation errors surfaced by the calculation engine. Every one is a
// data-quality error, not a system fault: a single bad record aborts the
// whole batch for that reporting run rather than silently dropping it.
// Callers match with errors.Is; the wrapping message carries the
// offending record's identity.
var (
	// ErrInvalidDateRange indicates a sale dated before its purchase.
	ErrInvalidDateRange = errors.New("sale date precedes purchase date")

	// ErrInvalidAmount indicates a negative price or amount.
	ErrInvalidAmount = errors.New("negative amount")

	// ErrInvalidWithholding indicates tax withheld exceeding the gross amount.
	ErrInvalidWithholding = errors.New("tax withheld exceeds gross amount")

	// ErrConfiguration indicates malformed rules: a missing rate for a
	// classification, an unknown asset category, or a negative cap.
	ErrConfiguration = errors.New("invalid tax rules configuration")
)
