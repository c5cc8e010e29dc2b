// Package errs defines the error kinds of the dispatch engine.
//
// Every failed operation surfaces as exactly one of these kinds:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed input (Validation)
//   - ObjectNotFoundError: the order or partner does not exist
//   - UnauthorizedError: the actor has no relation to the entity
//   - InvalidStateError: the entity does not permit the operation
//   - InvalidTransitionError: the status change is not the legal next step
//   - PartnerUnavailableError: the partner is not eligible or lost the race
//   - ConflictError: a conditional write lost a concurrent race; the
//     precondition held when checked but changed before commit, so the
//     caller should retry once with fresh state
//
// Each kind follows the same pattern: a sentinel error variable, a struct
// type carrying details and an optional Cause, constructors with and
// without cause, Error() formatting, and Unwrap() returning the sentinel
// so errors.Is classification works everywhere.
//
// All errors are local to a single operation and recoverable by the
// caller; none is fatal to the process.
package errs
