// Package order contains the Order aggregate and its lifecycle state
// machine.
//
// An order moves through the fixed linear sequence
// PREP -> PICKED -> ON_ROUTE -> DELIVERED, one step at a time, never
// backward. DELIVERED is terminal; after it the record is immutable except
// for read-derived fields. The sequence encodes the physical reality of
// food preparation and transport, so the only transition policy is
// "exactly one step forward, by an authorized party".
package order
