package session

import "errors"

var (
	// ErrRegistrationRejected means the server returned RegistrationFailure four times in a row.
	ErrRegistrationRejected = errors.New("session: registration rejected after retry budget exhausted")
	// ErrCrcMismatch means the server's reported checksum disagreed with the local one four
	// upload cycles in a row.
	ErrCrcMismatch = errors.New("session: checksum mismatch after retry budget exhausted")
	// ErrServerRejected covers any other non-success response outside the retry budgets above.
	ErrServerRejected = errors.New("session: server rejected the request")
)
