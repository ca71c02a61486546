package booking

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"staynest/internal/api"
	apperrors "staynest/internal/errors"
	"staynest/internal/models"
	"staynest/internal/pricing"
)

// Validation failures are user-facing messages, checked in a fixed order
// with the first failure reported. None of them ever reaches the network.
var (
	ErrDatesRequired     = apperrors.Message("select both check-in and check-out dates")
	ErrCheckOutNotAfter  = apperrors.Message("check-out must be after check-in")
	ErrTooManyGuests     = apperrors.Message("this listing does not allow that many guests")
	ErrContactIncomplete = apperrors.Message("fill in first name, last name, email and phone")
	ErrOwnListing        = apperrors.Message("you cannot book your own listing")
	ErrSubmitInFlight    = apperrors.Message("your booking is already being submitted")
)

// ContactInfo - the four required guest contact fields
type ContactInfo struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required"`
}

// Form holds in-progress booking input for one listing. There is a single
// editing state; Submit validates, creates the booking and leaves every
// field untouched so a failed submission can simply be retried.
type Form struct {
	client  *api.Client
	listing models.Listing
	viewer  models.UserIdentity

	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	Infants  int
	Contact  ContactInfo

	mu   sync.Mutex
	busy bool

	validate *validator.Validate
}

// NewForm creates a booking form for the listing as seen by the viewer.
func NewForm(client *api.Client, listing models.Listing, viewer models.UserIdentity) *Form {
	return &Form{
		client:   client,
		listing:  listing,
		viewer:   viewer,
		Adults:   1,
		validate: validator.New(),
	}
}

// Quote returns the live price breakdown for the currently selected dates.
func (f *Form) Quote() models.PriceBreakdown {
	return pricing.Quote(f.CheckIn, f.CheckOut, f.listing.PricePerNight)
}

// CanSubmit mirrors the disabled state of the submit control: a quote
// covering zero nights is displayable but never bookable. It only gates
// the UI; Submit relies on Validate, whose date-order check already rules
// out zero-night ranges.
func (f *Form) CanSubmit() bool {
	return f.Quote().Nights > 0
}

// Validate runs the pre-submission checks in order, short-circuiting on
// the first failure. It never panics and issues no network calls.
func (f *Form) Validate() error {
	if f.CheckIn.IsZero() || f.CheckOut.IsZero() {
		return ErrDatesRequired
	}
	if !f.CheckOut.After(f.CheckIn) {
		return ErrCheckOutNotAfter
	}
	if f.Adults+f.Children+f.Infants > f.listing.MaxGuests {
		return ErrTooManyGuests
	}
	if err := f.validate.Struct(f.Contact); err != nil {
		return ErrContactIncomplete
	}
	if f.viewer.UserID == f.listing.HostID {
		return ErrOwnListing
	}
	return nil
}

// Submit validates and creates the booking, returning it for the caller
// to transition into the payment flow. While a submission is in flight
// further submissions are rejected; there is no queue.
func (f *Form) Submit(ctx context.Context) (*models.Booking, error) {
	if !f.begin() {
		return nil, ErrSubmitInFlight
	}
	defer f.end()

	if err := f.Validate(); err != nil {
		return nil, err
	}

	req := models.CreateBookingRequest{
		ListingID: f.listing.ID,
		CheckIn:   f.CheckIn,
		CheckOut:  f.CheckOut,
		Adults:    f.Adults,
		Children:  f.Children,
		Infants:   f.Infants,
		FirstName: f.Contact.FirstName,
		LastName:  f.Contact.LastName,
		Email:     f.Contact.Email,
		Phone:     f.Contact.Phone,
	}

	booking, err := f.client.Bookings.Create(ctx, req)
	if err != nil {
		// Form state is preserved; the user retries explicitly.
		return nil, err
	}
	return booking, nil
}

func (f *Form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *Form) end() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}
