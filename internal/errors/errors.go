package errors

import (
	"errors"
	"fmt"
)

// GenericMessage is shown when a failure carries no usable server message.
const GenericMessage = "something went wrong, please try again"

// Message is an error whose text is already the notification to show the
// user. Validation sentinels across the client are declared as Message so
// UserMessage passes their text through untouched.
type Message string

func (m Message) Error() string { return string(m) }

// UserFacing marks the text as safe to show verbatim.
func (m Message) UserFacing() {}

var (
	// ErrUnauthorized means the API answered 401; the session has already
	// been invalidated as a side effect by the time callers see this.
	ErrUnauthorized = Message("session is no longer valid, please sign in again")

	// ErrUnavailable means no response was received at all (timeout or
	// connectivity loss).
	ErrUnavailable = Message("could not reach the marketplace, check your connection")
)

// APIError is a non-2xx answer from the API carrying the server-provided
// message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// userFacing is satisfied by errors whose text is meant for the user
// as-is: Message values and the payment processor's rejection error.
type userFacing interface {
	error
	UserFacing()
}

// UserMessage extracts the short notification text for an error, falling
// back to GenericMessage for anything that has no better one.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var uf userFacing
	if errors.As(err, &uf) {
		return uf.Error()
	}
	return GenericMessage
}
