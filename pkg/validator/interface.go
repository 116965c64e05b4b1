// Package validator defines the contract with the remote identity validator
// that checks a driver's license QR code and a facial photo against a CPF.
package validator

import (
	"context"
	"encoding/json"
	"fmt"

	"qrvalidator/pkg/domain"
)

// RemoteError is returned when the validator answered with a non-200 status.
// Detail holds the decoded JSON body or, when the body is not JSON, the raw
// response text.
type RemoteError struct {
	StatusCode int
	Detail     any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("validator responded with status %d: %v", e.StatusCode, e.Detail)
}

// Client submits validation requests.
//
//go:generate mockgen -package mockvalidator -source=interface.go -destination=mock/mockvalidator.go *
type Client interface {
	// Validate posts req once and returns the validator's JSON body verbatim
	// on success. It is not retried and must not be assumed idempotent.
	Validate(ctx context.Context, req domain.ValidationRequest) (json.RawMessage, error)
}
