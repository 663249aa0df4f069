package session

import "fmt"

// AuthError reports a request the identity service understood and rejected:
// bad credentials, a duplicate registration, an inactive account. Message is
// the service-provided text, suitable for showing to the user as-is.
type AuthError struct {
	Message string
	Status  int
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (status %d)", e.Status)
}

// ConnectivityError reports that the identity service could not be reached at
// all. Distinct from AuthError so callers can suggest a retry instead of
// blaming the user's credentials.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return "cannot connect to the identity service, please try again: " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
