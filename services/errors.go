// services/errors.go - Error taxonomy shared by the rule services
package services

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError marks malformed input to a component. It is raised before
// any computation; nothing is partially applied.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a missing or inactive record. Inactive is absolute,
// unlike NotEligibleError which is contextual to the athlete.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NotEligibleError is a structural/business rejection carrying every failed
// restriction, so callers can show all of them at once.
type NotEligibleError struct {
	Reasons []string
}

func (e *NotEligibleError) Error() string {
	return "not eligible: " + strings.Join(e.Reasons, "; ")
}

// ProofInvalidError carries the collected, non-fatal proof rule failures.
type ProofInvalidError struct {
	Reasons []string
}

func (e *ProofInvalidError) Error() string {
	return "invalid proof: " + strings.Join(e.Reasons, "; ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func AsNotEligible(err error) (*NotEligibleError, bool) {
	var ne *NotEligibleError
	ok := errors.As(err, &ne)
	return ne, ok
}

func AsProofInvalid(err error) (*ProofInvalidError, bool) {
	var pi *ProofInvalidError
	ok := errors.As(err, &pi)
	return pi, ok
}
