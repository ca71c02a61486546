package models

import "time"

// RegisterRequest - payload for account creation
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// LoginRequest - payload for credential login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse - token plus the authenticated user
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// OTPRequest - payload for requesting a fresh one-time code
type OTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest - payload for exchanging a one-time code for a session
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SearchFilters - query parameters for listing search; zero values are omitted
type SearchFilters struct {
	City     string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	MinPrice int64
	MaxPrice int64
	Page     int
	PageSize int
}

// UpsertListingRequest - payload for creating or updating a listing
type UpsertListingRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	PricePerNight int64    `json:"price_per_night"`
	MaxGuests     int      `json:"max_guests"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities,omitempty"`
	Location      Location `json:"location"`
	Images        []Image  `json:"images,omitempty"`
}

// CreateBookingRequest - the full booking form payload submitted on success
type CreateBookingRequest struct {
	ListingID string    `json:"listing_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Adults    int       `json:"adults"`
	Children  int       `json:"children"`
	Infants   int       `json:"infants"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
}

// CancelBookingRequest - payload for cancelling a booking
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CreateIntentRequest - payload for requesting a payment intent
type CreateIntentRequest struct {
	BookingID string `json:"booking_id"`
}

// PaymentIntent - the server-issued handle confirmed client-side via the
// payment SDK. The client secret is opaque to this layer.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// UpdatePaymentStatusRequest - payload reporting the confirmation outcome
type UpdatePaymentStatusRequest struct {
	BookingID       string        `json:"booking_id"`
	Status          PaymentStatus `json:"status"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
}

// CreateReviewRequest - payload for submitting a review
type CreateReviewRequest struct {
	ListingID  string          `json:"listing_id"`
	BookingID  string          `json:"booking_id"`
	Rating     int             `json:"rating"`
	Categories CategoryRatings `json:"categories"`
	Title      string          `json:"title,omitempty"`
	Comment    string          `json:"comment"`
}

// RespondReviewRequest - payload for a host response to a review
type RespondReviewRequest struct {
	Comment string `json:"comment"`
}

// UpdateProfileRequest - payload for profile edits
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SendMessageRequest - payload for sending a message in a conversation
type SendMessageRequest struct {
	Body string `json:"body"`
}

// WishlistRequest - payload for saving a listing to the wishlist
type WishlistRequest struct {
	ListingID string `json:"listing_id"`
}

// WishlistStatus - whether a listing is on the viewer's wishlist
type WishlistStatus struct {
	Saved bool `json:"saved"`
}

// SetUserStatusRequest - admin payload toggling an account
type SetUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}
