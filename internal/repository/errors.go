// Package repository defines the error kinds shared across
// repositories and the booking service. The booking workflow
// deliberately exposes only two failure kinds to its callers:
// ErrNotFound for references to entities that do not exist and
// ErrForbidden for well-formed requests that violate a business
// rule (ineligible ticket, exhausted capacity, ownership mismatch,
// duplicate booking, no-op move). Handlers discriminate with
// errors.Is and translate them into 404 and 403 responses; no
// error reveals which eligibility sub-condition failed.
package repository

import "errors"

// ErrNotFound is returned when a referenced room, hotel or booking
// does not exist. Handlers should translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when a request is valid in form but
// violates a booking rule. Handlers should translate this into
// HTTP 403.
var ErrForbidden = errors.New("forbidden")
