// Package partner contains the delivery partner aggregate.
//
// The availability flag is the contended piece of state in the system: a
// partner with isAvailable=false should hold exactly one non-terminal
// order, and a partner with isAvailable=true none (a partner who went
// offline explicitly is the allowed exception on the false side). The flag
// is mutated only by the assignment flow or by the partner's own toggle,
// always through a conditional persistence write, so two racing
// assignments can never both take the same partner.
package partner
