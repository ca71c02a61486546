package models

import "time"

// Role gates which views render. It is display state, not a security boundary:
// the API re-checks permissions on every call.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// BookingStatus - lifecycle status of a booking, owned by the API
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// PaymentStatus - payment state of a booking, owned by the API
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Image - a listing photo; order in the slice is display order
type Image struct {
	URL string `json:"url"`
}

// Location - address of a listing; coordinates are optional
type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state,omitempty"`
	Country   string   `json:"country"`
	ZipCode   string   `json:"zip_code,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Rating - aggregate review score of a listing
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Listing - a bookable property. Price is in whole currency units and is
// positive; capacity fields are non-negative.
type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	PricePerNight int64    `json:"price_per_night"`
	MaxGuests     int      `json:"max_guests"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities,omitempty"`
	Location      Location `json:"location"`
	Images        []Image  `json:"images,omitempty"`
	Rating        Rating   `json:"rating"`
	HostID        string   `json:"host_id"`
}

// PriceBreakdown - the itemized components of a booking's price.
// Total is always the exact sum of the four parts.
type PriceBreakdown struct {
	Nights      int   `json:"nights"`
	BasePrice   int64 `json:"base_price"`
	ServiceFee  int64 `json:"service_fee"`
	CleaningFee int64 `json:"cleaning_fee"`
	Taxes       int64 `json:"taxes"`
	Total       int64 `json:"total"`
}

// Cancellation - present on a booking only after it has been cancelled
type Cancellation struct {
	Reason       string    `json:"reason"`
	CancelledAt  time.Time `json:"cancelled_at"`
	RefundAmount int64     `json:"refund_amount"`
}

// Booking - a reserved stay linking a guest, a host and a listing.
// CheckOut is strictly after CheckIn; Adults >= 1.
type Booking struct {
	ID            string         `json:"id"`
	ListingID     string         `json:"listing_id"`
	GuestID       string         `json:"guest_id"`
	HostID        string         `json:"host_id"`
	CheckIn       time.Time      `json:"check_in"`
	CheckOut      time.Time      `json:"check_out"`
	Adults        int            `json:"adults"`
	Children      int            `json:"children"`
	Infants       int            `json:"infants"`
	Price         PriceBreakdown `json:"price"`
	Status        BookingStatus  `json:"status"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	Cancellation  *Cancellation  `json:"cancellation,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// CategoryRatings - the six per-category review scores, each 1..5
type CategoryRatings struct {
	Cleanliness   int `json:"cleanliness"`
	Accuracy      int `json:"accuracy"`
	CheckIn       int `json:"check_in"`
	Communication int `json:"communication"`
	Location      int `json:"location"`
	Value         int `json:"value"`
}

// HostResponse - an optional host reply attached to a review
type HostResponse struct {
	Comment     string    `json:"comment"`
	RespondedAt time.Time `json:"responded_at"`
}

// Review - a guest review of a completed stay
type Review struct {
	ID           string          `json:"id"`
	ListingID    string          `json:"listing_id"`
	BookingID    string          `json:"booking_id"`
	UserID       string          `json:"user_id"`
	Rating       int             `json:"rating"`
	Categories   CategoryRatings `json:"categories"`
	Title        string          `json:"title,omitempty"`
	Comment      string          `json:"comment"`
	HostResponse *HostResponse   `json:"host_response,omitempty"`
	HelpfulVotes []string        `json:"helpful_votes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// User - a marketplace account as returned by the API
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// UserIdentity - the identity the client derives locally from its stored
// token, used only to gate which views render
type UserIdentity struct {
	UserID string
	Email  string
	Role   Role
}

// Conversation - a message thread between a guest and a host
type Conversation struct {
	ID            string    `json:"id"`
	ListingID     string    `json:"listing_id,omitempty"`
	Participants  []string  `json:"participants"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// Message - a single message inside a conversation
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
}

// HostSummary - aggregate analytics for a host's listings
type HostSummary struct {
	TotalListings int     `json:"total_listings"`
	TotalBookings int     `json:"total_bookings"`
	UpcomingStays int     `json:"upcoming_stays"`
	Revenue       int64   `json:"revenue"`
	AverageRating float64 `json:"average_rating"`
	OccupancyRate float64 `json:"occupancy_rate"`
}
