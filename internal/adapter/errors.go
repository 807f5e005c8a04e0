package adapter

import "errors"

var (
	ErrUnknownMailTransport = errors.New("unknown mail transport")
	ErrImageStorageDisabled = errors.New("image storage is not configured")
)

// Mail relay failures, grouped by what the caller can do about them.
var (
	// ErrMailRejected means the relay refused the message itself.
	ErrMailRejected = errors.New("mail relay rejected the message")
	// ErrRelayAuth means the relay refused our credentials.
	ErrRelayAuth = errors.New("mail relay refused credentials")
	// ErrRelayThrottled means the relay asked us to slow down.
	ErrRelayThrottled = errors.New("mail relay throttled the request")
	// ErrRelayUnavailable means the relay failed on its side.
	ErrRelayUnavailable = errors.New("mail relay unavailable")
)
