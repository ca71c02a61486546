package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuoteThreeNightsAtHundred(t *testing.T) {
	// 3 nights at 100: base 300, service 30, cleaning 50,
	// taxes round(30.4) = 30, total 410.
	b := Quote(date(2025, 6, 1), date(2025, 6, 4), 100)

	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, int64(300), b.BasePrice)
	assert.Equal(t, int64(30), b.ServiceFee)
	assert.Equal(t, int64(50), b.CleaningFee)
	assert.Equal(t, int64(30), b.Taxes)
	assert.Equal(t, int64(410), b.Total)
}

func TestQuoteRoundsHalfUp(t *testing.T) {
	// 1 night at 105: service round(10.5) = 11,
	// taxes round((105+11+50)*0.08) = round(13.28) = 13.
	b := Quote(date(2025, 6, 1), date(2025, 6, 2), 105)

	assert.Equal(t, int64(105), b.BasePrice)
	assert.Equal(t, int64(11), b.ServiceFee)
	assert.Equal(t, int64(13), b.Taxes)
	assert.Equal(t, int64(179), b.Total)
}

func TestQuoteTotalIsSumOfParts(t *testing.T) {
	prices := []int64{1, 37, 99, 100, 105, 250, 999}
	for _, p := range prices {
		for n := 0; n <= 14; n++ {
			checkIn := date(2025, 3, 1)
			checkOut := checkIn.AddDate(0, 0, n)

			b := Quote(checkIn, checkOut, p)

			assert.Equal(t, n, b.Nights, "price %d nights %d", p, n)
			assert.Equal(t, p*int64(n), b.BasePrice, "price %d nights %d", p, n)
			assert.Equal(t, b.BasePrice+b.ServiceFee+b.CleaningFee+b.Taxes, b.Total,
				"price %d nights %d", p, n)
		}
	}
}

func TestQuoteZeroNights(t *testing.T) {
	// A zero-night range still yields an honest breakdown: the flat
	// cleaning fee plus tax on it. Submission gating is the form's job.
	b := Quote(date(2025, 6, 1), date(2025, 6, 1), 100)

	assert.Equal(t, 0, b.Nights)
	assert.Equal(t, int64(0), b.BasePrice)
	assert.Equal(t, int64(0), b.ServiceFee)
	assert.Equal(t, int64(50), b.CleaningFee)
	assert.Equal(t, int64(4), b.Taxes)
	assert.Equal(t, int64(54), b.Total)
}

func TestQuoteMissingDates(t *testing.T) {
	b := Quote(time.Time{}, date(2025, 6, 4), 100)
	assert.Equal(t, 0, b.Nights)

	b = Quote(date(2025, 6, 1), time.Time{}, 100)
	assert.Equal(t, 0, b.Nights)
}

func TestNightsPartialDayRoundsUp(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)

	// 44 hours spans two nights.
	assert.Equal(t, 2, Nights(checkIn, checkOut))
}

func TestNightsInvertedRangeIsZero(t *testing.T) {
	assert.Equal(t, 0, Nights(date(2025, 6, 4), date(2025, 6, 1)))
}
