// Package apitest hosts an in-memory stand-in for the marketplace API,
// just enough surface for the client packages to be tested end to end
// over real HTTP.
package apitest

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"staynest/internal/models"
	"staynest/internal/pricing"
)

var signingKey = []byte("apitest-secret")

// Server holds the fake marketplace state. Toggles let tests inject
// failure modes the real API would produce.
type Server struct {
	router *gin.Engine

	mu             sync.Mutex
	listings       map[string]models.Listing
	bookings       map[string]models.Booking
	users          map[string]models.User
	passwords      map[string]string
	wishlists      map[string]map[string]bool
	statusUpdates  []models.UpdatePaymentStatusRequest
	nextBookingID  int
	hits           int

	// ForceUnauthorized makes every authenticated endpoint answer 401.
	ForceUnauthorized bool
	// RejectBookings, when non-empty, rejects booking creation with this
	// business-rule message.
	RejectBookings string
	// FailIntents makes intent creation answer 500.
	FailIntents bool
}

// NewServer seeds a host, a guest and one listing.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		listings:  make(map[string]models.Listing),
		bookings:  make(map[string]models.Booking),
		users:     make(map[string]models.User),
		passwords: make(map[string]string),
		wishlists: make(map[string]map[string]bool),
	}

	s.users["u-host"] = models.User{ID: "u-host", FirstName: "Hana", LastName: "Ortiz", Email: "hana@example.com", Role: models.RoleHost, IsActive: true}
	s.users["u-guest"] = models.User{ID: "u-guest", FirstName: "Gil", LastName: "Moss", Email: "gil@example.com", Role: models.RoleGuest, IsActive: true}
	s.passwords["hana@example.com"] = "hunter2"
	s.passwords["gil@example.com"] = "hunter2"

	s.listings["l-1"] = models.Listing{
		ID:            "l-1",
		Title:         "Sunny loft near the old town",
		PricePerNight: 100,
		MaxGuests:     4,
		Bedrooms:      2,
		Bathrooms:     1,
		Amenities:     []string{"wifi", "kitchen"},
		Location:      models.Location{Address: "12 Canal St", City: "Leiden", Country: "NL"},
		Images:        []models.Image{{URL: "/uploads/l-1/cover.jpg"}},
		Rating:        models.Rating{Average: 4.8, Count: 21},
		HostID:        "u-host",
	}

	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler to mount in httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hits returns how many requests reached the server, for asserting that
// client-side validation made no network call.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// IssueToken mints a token for a seeded user, bypassing login.
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	user := s.users[userID]
	s.mu.Unlock()
	return mintToken(user)
}

// StatusUpdates returns the payment status reports received so far.
func (s *Server) StatusUpdates() []models.UpdatePaymentStatusRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UpdatePaymentStatusRequest, len(s.statusUpdates))
	copy(out, s.statusUpdates)
	return out
}

// Booking returns a stored booking by id.
func (s *Server) Booking(id string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

func mintToken(user models.User) string {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()

	r.Use(func(c *gin.Context) {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		c.Next()
	})

	r.POST("/auth/login", s.login)

	authed := r.Group("/", s.requireAuth)
	{
		authed.GET("/auth/me", s.me)
		authed.POST("/auth/logout", func(c *gin.Context) { c.Status(http.StatusOK) })

		authed.GET("/listings", s.listListings)
		authed.GET("/listings/:id", s.getListing)
		authed.GET("/listings/:id/reviews", func(c *gin.Context) { c.JSON(http.StatusOK, []models.Review{}) })

		authed.POST("/bookings", s.createBooking)
		authed.GET("/bookings", s.listBookings)
		authed.GET("/bookings/:id", s.getBooking)

		authed.POST("/payments/intent", s.createIntent)
		authed.PATCH("/payments/status", s.updatePaymentStatus)

		authed.GET("/wishlist", s.listWishlist)
		authed.GET("/wishlist/:id", s.wishlistContains)
		authed.POST("/wishlist", s.addWishlist)
		authed.DELETE("/wishlist/:id", s.removeWishlist)
	}

	return r
}

func (s *Server) requireAuth(c *gin.Context) {
	s.mu.Lock()
	force := s.ForceUnauthorized
	s.mu.Unlock()

	if force {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "session expired"})
		return
	}

	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) { return signingKey, nil })
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	claims := token.Claims.(jwt.MapClaims)
	sub, _ := claims.GetSubject()
	c.Set("user_id", sub)
	c.Next()
}

func (s *Server) userID(c *gin.Context) string {
	return c.GetString("user_id")
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passwords[req.Email] != req.Password {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid email or password"})
		return
	}
	for _, u := range s.users {
		if u.Email == req.Email {
			c.JSON(http.StatusOK, models.LoginResponse{Token: mintToken(u), User: u})
			return
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid email or password"})
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[s.userID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) listListings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	city := c.Query("city")
	out := make([]models.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if city != "" && l.Location.City != city {
			continue
		}
		out = append(out, l)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getListing(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "listing not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) createBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.RejectBookings != "" {
		c.JSON(http.StatusConflict, gin.H{"message": s.RejectBookings})
		return
	}

	listing, ok := s.listings[req.ListingID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "listing not found"})
		return
	}

	s.nextBookingID++
	booking := models.Booking{
		ID:            fmt.Sprintf("b-%d", s.nextBookingID),
		ListingID:     listing.ID,
		GuestID:       s.userID(c),
		HostID:        listing.HostID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		Price:         pricing.Quote(req.CheckIn, req.CheckOut, listing.PricePerNight),
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	}
	s.bookings[booking.ID] = booking

	c.JSON(http.StatusCreated, booking)
}

func (s *Server) listBookings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.GuestID == s.userID(c) {
			out = append(out, b)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getBooking(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *Server) createIntent(c *gin.Context) {
	var req models.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid intent payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailIntents {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "payment service unavailable"})
		return
	}

	booking, ok := s.bookings[req.BookingID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}

	c.JSON(http.StatusOK, models.PaymentIntent{
		ClientSecret: "pi_" + booking.ID + "_secret_test",
		Amount:       booking.Price.Total,
		Currency:     "usd",
	})
}

func (s *Server) updatePaymentStatus(c *gin.Context) {
	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[req.BookingID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}

	booking.PaymentStatus = req.Status
	if req.Status == models.PaymentPaid {
		booking.Status = models.BookingConfirmed
	}
	s.bookings[req.BookingID] = booking
	s.statusUpdates = append(s.statusUpdates, req)

	c.Status(http.StatusOK)
}

func (s *Server) listWishlist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Listing, 0)
	for id := range s.wishlists[s.userID(c)] {
		if l, ok := s.listings[id]; ok {
			out = append(out, l)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) wishlistContains(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.wishlists[s.userID(c)][c.Param("id")]
	c.JSON(http.StatusOK, models.WishlistStatus{Saved: saved})
}

func (s *Server) addWishlist(c *gin.Context) {
	var req models.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid wishlist payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := s.userID(c)
	if s.wishlists[uid] == nil {
		s.wishlists[uid] = make(map[string]bool)
	}
	s.wishlists[uid][req.ListingID] = true
	c.Status(http.StatusOK)
}

func (s *Server) removeWishlist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wishlists[s.userID(c)], c.Param("id"))
	c.Status(http.StatusOK)
}
