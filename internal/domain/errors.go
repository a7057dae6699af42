package domain

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. an empty destination on the estimate API).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoRoute is returned by the directions lookup layer when the provider
// answered successfully but found no drivable route.
var ErrNoRoute = errors.New("no route found")

// ErrProvider wraps every failure talking to an upstream mapping provider:
// network errors, timeouts, non-OK statuses and malformed payloads all
// collapse into this one tag.
var ErrProvider = errors.New("provider error")
