package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"staynest/internal/booking"
	apperrors "staynest/internal/errors"
	"staynest/internal/payment"
)

func TestUserMessagePassesThroughUserFacingErrors(t *testing.T) {
	// Validation sentinels keep their dedicated text.
	assert.Equal(t, "select both check-in and check-out dates",
		apperrors.UserMessage(booking.ErrDatesRequired))
	assert.Equal(t, "you cannot book your own listing",
		apperrors.UserMessage(booking.ErrOwnListing))
	assert.Equal(t, "enter the cardholder name and full billing address",
		apperrors.UserMessage(payment.ErrBillingIncomplete))

	// Processor rejections are shown word for word.
	assert.Equal(t, "Your card was declined.",
		apperrors.UserMessage(&payment.ProcessorError{Message: "Your card was declined."}))
}

func TestUserMessageUnwrapsThroughContext(t *testing.T) {
	wrapped := fmt.Errorf("failed to prepare payment: %w", &payment.ProcessorError{Message: "Your card has expired."})
	assert.Equal(t, "Your card has expired.", apperrors.UserMessage(wrapped))

	wrapped = fmt.Errorf("request: %w", apperrors.ErrUnauthorized)
	assert.Equal(t, apperrors.ErrUnauthorized.Error(), apperrors.UserMessage(wrapped))
}

func TestUserMessagePrefersServerMessage(t *testing.T) {
	err := &apperrors.APIError{Status: 409, Message: "those dates were just booked by someone else"}
	assert.Equal(t, "those dates were just booked by someone else", apperrors.UserMessage(err))

	// A non-2xx answer with no body text still gets the fallback.
	assert.Equal(t, apperrors.GenericMessage, apperrors.UserMessage(&apperrors.APIError{Status: 500}))
}

func TestUserMessageFallsBackForInternalErrors(t *testing.T) {
	assert.Equal(t, apperrors.GenericMessage, apperrors.UserMessage(errors.New("dial tcp: connection refused")))
}
