// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "fmt"

// MissingProperty is the reason kind an oracle reports when a required
// property is absent.
const MissingProperty = "missing-property"

// Reason explains why an oracle rejected a candidate: either a missing
// property (Kind == MissingProperty, Property set) or a wrong type (Kind holds
// the required kind).
type Reason struct {
	Kind     string
	Property string
}

// Missing returns the reason for an absent required property.
func Missing(property string) Reason {
	return Reason{Kind: MissingProperty, Property: property}
}

// WrongType returns the reason for a value that is not of the required kind.
func WrongType(required Kind) Reason {
	return Reason{Kind: string(required)}
}

// IsMissing reports whether r is a missing-property reason.
func (r Reason) IsMissing() bool {
	return r.Kind == MissingProperty
}

// Required returns the kind a wrong-type reason asks for.
func (r Reason) Required() Kind {
	return Kind(r.Kind)
}

func (r Reason) String() string {
	if r.IsMissing() {
		return fmt.Sprintf("missing property %q", r.Property)
	}
	return fmt.Sprintf("expected %s", r.Kind)
}

// Violation is the structured failure an oracle raises for the first problem
// it finds in a candidate.
type Violation struct {
	Path   Path
	Reason Reason
}

// NewViolation returns a violation at path.
func NewViolation(path Path, reason Reason) *Violation {
	return &Violation{Path: path, Reason: reason}
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// Signature pairs a violation's path and reason so repeated violations can be
// detected.
type Signature struct {
	Path   string
	Reason Reason
}

// Signature returns the comparable signature of v.
func (v *Violation) Signature() Signature {
	return Signature{Path: v.Path.String(), Reason: v.Reason}
}
