package dirigera

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client and the pairing flow. All sentinels
// are defined here for easy discovery and consistent organization.
var (
	// Authentication errors
	ErrUnauthorized = errors.New("dirigera: unauthorized (invalid or revoked token)")
	ErrEmptyToken   = errors.New("dirigera: token cannot be empty")

	// Construction errors
	ErrEmptyIPAddress = errors.New("dirigera: hub IP address cannot be empty")

	// Resource errors
	ErrNotFound = errors.New("dirigera: resource not found")

	// Pairing errors. Timeout and rejection are distinct so callers can
	// offer "press the button and try again" only when it would help.
	ErrPairingTimeout  = errors.New("dirigera: pairing not confirmed within the retry window")
	ErrPairingRejected = errors.New("dirigera: hub rejected the pairing attempt")

	// Device validation errors
	ErrEmptyDeviceID     = errors.New("dirigera: device ID cannot be empty")
	ErrMissingCapability = errors.New("dirigera: device does not support capability")

	// Scene validation errors
	ErrEmptySceneID = errors.New("dirigera: scene ID cannot be empty")
)

// APIError represents a non-2xx response from the hub. Body holds the raw
// response body for caller inspection.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dirigera: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("dirigera: API error %d: %s", e.StatusCode, truncatePreview(e.Body))
}

// IsUnauthorized returns true if the error indicates an authentication
// failure, meaning the token is invalid or revoked and the caller should
// re-pair rather than retry.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsNotFound returns true if the error indicates the resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsPairingTimeout returns true if a pairing attempt ended because the button
// was never pressed.
func IsPairingTimeout(err error) bool {
	return errors.Is(err, ErrPairingTimeout)
}

// IsPairingRejected returns true if the hub explicitly denied or expired the
// pairing attempt.
func IsPairingRejected(err error) bool {
	return errors.Is(err, ErrPairingRejected)
}

// IsMissingCapability returns true if a mutation was refused because the
// device does not list the required capability as receivable.
func IsMissingCapability(err error) bool {
	return errors.Is(err, ErrMissingCapability)
}

// IsTimeout returns true if the error indicates a network timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
