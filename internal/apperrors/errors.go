package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrRateNotFound indicates that no exchange rate is stored for a currency
// pair on a given date. This is an expected condition (rates are ingested
// asynchronously), not an exceptional one.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrPersistence indicates that the database rejected a write with a
// constraint violation the input validation did not catch, e.g. a conversion
// amount rounding to zero.
var ErrPersistence = errors.New("persistence constraint violation")

// ErrInvalidPair indicates a currency pair that cannot form an exchange rate:
// identical codes, malformed codes, or a non-positive rate.
var ErrInvalidPair = errors.New("invalid currency pair")

// ErrUpstream indicates a failure calling the external rate provider.
var ErrUpstream = errors.New("upstream provider error")
