package views

import (
	"context"
	"fmt"

	"staynest/internal/api"
	"staynest/internal/models"
)

// BookingDetail is the view state behind a booking page: the booking plus
// the listing it reserves, with display derivations.
type BookingDetail struct {
	Booking *models.Booking
	Listing *models.Listing
}

// LoadBookingDetail fetches the booking and then its listing. The listing
// is needed for rendering only; a booking without its listing still shows.
func LoadBookingDetail(ctx context.Context, client *api.Client, bookingID string) (*BookingDetail, error) {
	booking, err := client.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &BookingDetail{Booking: booking}
	if listing, err := client.Listings.Get(ctx, booking.ListingID); err == nil {
		detail.Listing = listing
	}
	return detail, nil
}

// StatusLabel maps booking and payment status to one display string.
func (d *BookingDetail) StatusLabel() string {
	switch d.Booking.Status {
	case models.BookingCancelled:
		return "Cancelled"
	case models.BookingCompleted:
		return "Completed"
	case models.BookingConfirmed:
		if d.Booking.PaymentStatus == models.PaymentPaid {
			return "Confirmed"
		}
		return "Confirmed, payment pending"
	default:
		return "Pending"
	}
}

// RefundNote renders the cancellation record, empty when there is none.
func (d *BookingDetail) RefundNote() string {
	c := d.Booking.Cancellation
	if c == nil {
		return ""
	}
	if c.RefundAmount > 0 {
		return fmt.Sprintf("Cancelled (%s), refund of %d issued", c.Reason, c.RefundAmount)
	}
	return fmt.Sprintf("Cancelled (%s)", c.Reason)
}

// Guests returns the total guest count for display.
func (d *BookingDetail) Guests() int {
	return d.Booking.Adults + d.Booking.Children + d.Booking.Infants
}
