// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Service-level errors.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	// Workflow errors.
	ErrPriceRequired  = errors.New("price must be selected")
	ErrNoCards        = errors.New("submission has no cards")
	ErrNoUnpaidCards  = errors.New("no unpaid cards to pay for")
	ErrCardNotFound   = errors.New("card not found")
	ErrSubmissionPaid = errors.New("submission is already paid")
)
