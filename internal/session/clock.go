// Package session holds the host-issued credential and identity snapshot and
// reasons about credential freshness.
package session

import (
	"errors"
	"net/url"
	"strconv"
	"time"
)

// DefaultMaxAge is the client-side freshness window in seconds. It mirrors
// the backend's signature-expiry window to avoid sending requests doomed to
// fail authorization; the backend still re-validates independently, so this
// carries no security weight.
const DefaultMaxAge = 600

// Credential age errors.
var (
	ErrMissingCredential   = errors.New("credential missing")
	ErrMissingIssueTime    = errors.New("credential has no issue timestamp")
	ErrMalformedCredential = errors.New("credential malformed")
)

// Age returns the credential's age in whole seconds, measured with the
// client's clock. No server time sync happens; the resulting inaccuracy is
// accepted.
func Age(credential string) (int64, error) {
	return AgeAt(credential, time.Now())
}

// AgeAt computes the credential's age relative to the given instant.
func AgeAt(credential string, now time.Time) (int64, error) {
	if credential == "" {
		return 0, ErrMissingCredential
	}

	values, err := url.ParseQuery(credential)
	if err != nil {
		return 0, ErrMalformedCredential
	}

	raw := values.Get("auth_date")
	if raw == "" {
		return 0, ErrMissingIssueTime
	}

	issued, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrMissingIssueTime
	}

	return now.Unix() - issued, nil
}

// Valid reports whether the credential's age is within maxAge seconds.
// The boundary is inclusive: a credential aged exactly maxAge is valid.
func Valid(credential string, maxAge int64) bool {
	return ValidAt(credential, maxAge, time.Now())
}

// ValidAt is Valid against the given instant.
func ValidAt(credential string, maxAge int64, now time.Time) bool {
	age, err := AgeAt(credential, now)
	if err != nil {
		return false
	}
	return age <= maxAge
}
