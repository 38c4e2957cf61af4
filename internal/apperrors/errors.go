package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller's identity could not be established.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks ownership or the required role.
var ErrForbidden = errors.New("forbidden")

// ErrAccountFrozen indicates a balance mutation was blocked by account status.
var ErrAccountFrozen = errors.New("account is frozen")

// ErrInsufficientFunds indicates a debit would exceed the account balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrContention indicates the optimistic retry budget was exhausted on a
// compare-and-swap loop.
var ErrContention = errors.New("too much contention, try again")

// ErrInvalidState indicates a status transition was attempted from a
// non-matching source state.
var ErrInvalidState = errors.New("invalid state transition")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
