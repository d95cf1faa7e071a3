package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrApprovalUnsupported is returned when the host cannot display confirmation requests.
var ErrApprovalUnsupported = errors.New("host does not support approval requests")

// UnknownTierError is returned for a complexity tier missing from the tier table
type UnknownTierError struct {
	Tier  string
	Known []string
}

// Error implements the error interface
func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown complexity tier %q (expected one of %s)", e.Tier, strings.Join(e.Known, ", "))
}

// ApprovalError wraps a failure while talking to the approval collaborator
type ApprovalError struct {
	Err error
}

// Error implements the error interface
func (e *ApprovalError) Error() string {
	return fmt.Sprintf("approval request failed: %v", e.Err)
}

// Unwrap exposes the transport failure
func (e *ApprovalError) Unwrap() error {
	return e.Err
}
