// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType indicates a required kind that neither the generator
	// nor the derivation engine can produce.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDerivationNonConvergent indicates the oracle kept reporting the same
	// violation after a fix, or derivation ran out of rounds.
	ErrDerivationNonConvergent = errors.New("schema derivation did not converge")

	// ErrOracleContract indicates the oracle failed without a structured
	// violation. Such failures are reported as ErrUnsupportedType too.
	ErrOracleContract = errors.New("oracle failed without a structured violation")
)

// FieldError reports a failure tied to one field of the target shape.
// Err is one of the package sentinels; Cause is the underlying error, if any.
type FieldError struct {
	Path   Path
	Kind   Kind
	Err    error
	Cause  error
	Detail string
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%v at %s (kind %q)", e.Err, e.Path, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg + "; supply a value for this field manually"
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *FieldError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Unsupported returns an ErrUnsupportedType field error.
func Unsupported(path Path, kind Kind) *FieldError {
	return &FieldError{Path: path, Kind: kind, Err: ErrUnsupportedType}
}

// NonConvergent returns an ErrDerivationNonConvergent field error.
func NonConvergent(path Path, kind Kind, detail string) *FieldError {
	return &FieldError{Path: path, Kind: kind, Err: ErrDerivationNonConvergent, Detail: detail}
}

// ContractViolation reports an unstructured oracle failure as an unsupported
// type at the last known field.
func ContractViolation(path Path, kind Kind, cause error) *FieldError {
	return &FieldError{
		Path:  path,
		Kind:  kind,
		Err:   ErrUnsupportedType,
		Cause: fmt.Errorf("%w: %w", ErrOracleContract, cause),
	}
}
