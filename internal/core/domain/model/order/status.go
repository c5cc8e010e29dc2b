package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is a linear state
// machine with no branches:
//
//	PREP ──> PICKED ──> ON_ROUTE ──> DELIVERED
//
// Each transition must target the immediate successor of the current
// status; skipping, regressing, and re-applying the current status are all
// rejected. DELIVERED is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// The zero value helps catch uninitialized Status fields.
	Unknown Status = iota

	// Prep is the initial status: the restaurant is preparing the order.
	Prep

	// Picked means the assigned partner has collected the order.
	Picked

	// OnRoute means the partner is traveling to the customer.
	OnRoute

	// Delivered is the terminal status. Reaching it sets deliveredAt and
	// releases the partner.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Prep:      "PREP",
		Picked:    "PICKED",
		OnRoute:   "ON_ROUTE",
		Delivered: "DELIVERED",
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the four lifecycle values.
func (s Status) Validate() error {
	if s < Prep || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Next returns the immediate successor in the sequence and whether one
// exists. Delivered has no successor.
func (s Status) Next() (Status, bool) {
	if err := s.Validate(); err != nil || s.IsTerminal() {
		return Unknown, false
	}
	return s + 1, true
}

// Advance validates and performs the transition to target.
//
// Returns:
//   - (target, nil) when target is the immediate successor of s
//   - (Unknown, InvalidTransitionError) otherwise, including re-applying
//     the current status or advancing a terminal order
func (s Status) Advance(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	next, ok := s.Next()
	if !ok || target != next {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}
