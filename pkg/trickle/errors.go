package trickle

import (
	"errors"
	"fmt"
)

// Configuration errors
var (
	// ErrPortRange indicates a port outside the valid range.
	ErrPortRange = errors.New("trickle: port outside valid range")

	// ErrNoWebroot indicates a running configuration without a web root.
	ErrNoWebroot = errors.New("trickle: web root is not configured")
)

// BindError reports a failed listener setup. It is the only per-connection or
// per-cycle condition surfaced to the caller as an actionable failure; the
// server stays stopped until the host retries with a new configuration.
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("trickle: bind port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
