package pricing

import (
	"math"
	"time"

	"staynest/internal/models"
)

// The fee schedule is fixed client-side for display only; the server
// recomputes and validates the same numbers independently, so the math
// here must match it exactly.
const (
	// CleaningFee is a flat charge per stay, in whole currency units.
	CleaningFee int64 = 50

	serviceFeeRate = 0.10
	taxRate        = 0.08
)

// Nights returns the ceiling of whole days between check-in and check-out,
// 0 when either date is missing or the range is not positive.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Quote computes the displayed price breakdown for a stay. All rounding is
// half-up to the nearest whole currency unit. A zero-night range still
// yields an honest breakdown (cleaning fee plus tax on it); whether that
// state is submittable is the booking form's decision, not this one's.
func Quote(checkIn, checkOut time.Time, nightlyPrice int64) models.PriceBreakdown {
	nights := Nights(checkIn, checkOut)

	base := nightlyPrice * int64(nights)
	service := roundHalfUp(float64(base) * serviceFeeRate)
	taxes := roundHalfUp(float64(base+service+CleaningFee) * taxRate)

	return models.PriceBreakdown{
		Nights:      nights,
		BasePrice:   base,
		ServiceFee:  service,
		CleaningFee: CleaningFee,
		Taxes:       taxes,
		Total:       base + service + CleaningFee + taxes,
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
