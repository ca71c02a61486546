package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"staynest/internal/api"
	"staynest/internal/booking"
	"staynest/internal/config"
	apperrors "staynest/internal/errors"
	"staynest/internal/logger"
	"staynest/internal/metrics"
	"staynest/internal/models"
	"staynest/internal/payment"
	"staynest/internal/session"
	"staynest/internal/views"
)

const usage = `staynest - rental marketplace client

Commands:
  login     -email -password
  logout
  whoami
  search    [-city] [-checkin] [-checkout] [-guests]
  listing   -id
  book      -listing -checkin -checkout [-adults] [-children] [-infants]
            -first -last -email -phone
  pay       -booking -number -exp-month -exp-year -cvc
            -name -line1 -city -state -postal -country
  bookings
  wishlist  [-add id | -remove id]
  reviews   -listing
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	store, err := session.NewStore(cfg.Session)
	if err != nil {
		logger.Fatal("failed to open session store", "error", err)
	}

	// The data layer only emits the invalidation event; deciding what to
	// do about it happens here, at the top.
	store.OnInvalidated(func(reason string) {
		fmt.Fprintf(os.Stderr, "Your session is no longer valid (%s). Run 'staynest login' to sign in again.\n", reason)
	})

	client := api.NewClient(cfg.API, store)

	if cfg.MetricsEnabled {
		go func() {
			addr := ":" + cfg.MetricsPort
			logger.Get().Info("metrics listening", "addr", addr)
			if err := http.ListenAndServe(addr, metrics.Handler()); err != nil {
				logger.Get().Error("metrics server stopped", "error", err)
			}
		}()
	}

	ctx := context.Background()

	var runErr error
	switch os.Args[1] {
	case "login":
		runErr = runLogin(ctx, client)
	case "logout":
		runErr = client.Auth.Logout(ctx)
	case "whoami":
		runErr = runWhoami(ctx, client, store)
	case "search":
		runErr = runSearch(ctx, client)
	case "listing":
		runErr = runListing(ctx, client, store, cfg.UploadBaseURL)
	case "book":
		runErr = runBook(ctx, client, store)
	case "pay":
		runErr = runPay(ctx, client, cfg.Stripe)
	case "bookings":
		runErr = runBookings(ctx, client)
	case "wishlist":
		runErr = runWishlist(ctx, client)
	case "reviews":
		runErr = runReviews(ctx, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		// Every failure ends as a short notification; nothing retries
		// on its own.
		fmt.Fprintln(os.Stderr, apperrors.UserMessage(runErr))
		logger.Get().Debug("command failed", "command", os.Args[1], "error", runErr)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, client *api.Client) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(os.Args[2:])

	user, err := client.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
	return nil
}

func runWhoami(ctx context.Context, client *api.Client, store *session.Store) error {
	if id, ok := store.Identity(); ok {
		fmt.Printf("%s (%s)\n", id.Email, id.Role)
	}
	user, err := client.Auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Server says: %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

func runSearch(ctx context.Context, client *api.Client) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	city := fs.String("city", "", "city filter")
	checkIn := fs.String("checkin", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("checkout", "", "check-out date (YYYY-MM-DD)")
	guests := fs.Int("guests", 0, "guest count")
	fs.Parse(os.Args[2:])

	filters := models.SearchFilters{City: *city, Guests: *guests}
	var err error
	if filters.CheckIn, err = parseDate(*checkIn); err != nil {
		return err
	}
	if filters.CheckOut, err = parseDate(*checkOut); err != nil {
		return err
	}

	listings, err := client.Listings.Search(ctx, filters)
	if err != nil {
		return err
	}
	for _, l := range listings {
		fmt.Printf("%s  %-40s %s  %d/night  sleeps %d  %.1f (%d)\n",
			l.ID, l.Title, l.Location.City, l.PricePerNight, l.MaxGuests, l.Rating.Average, l.Rating.Count)
	}
	return nil
}

func runListing(ctx context.Context, client *api.Client, store *session.Store, assetBase string) error {
	fs := flag.NewFlagSet("listing", flag.ExitOnError)
	id := fs.String("id", "", "listing id")
	fs.Parse(os.Args[2:])

	view := views.NewListingDetail(client, *id)
	view.Load(ctx)
	view.Wait()

	if view.ListingErr != nil {
		return view.ListingErr
	}

	l := view.Listing
	fmt.Printf("%s\n%s, %s\n%d per night, sleeps %d (%d bd / %d ba)\n",
		l.Title, l.Location.Address, l.Location.City, l.PricePerNight, l.MaxGuests, l.Bedrooms, l.Bathrooms)
	if cover := view.CoverImageURL(assetBase); cover != "" {
		fmt.Printf("Cover: %s\n", cover)
	}
	if view.SavedKnown {
		if view.Saved {
			fmt.Println("On your wishlist")
		} else {
			fmt.Println("Not on your wishlist")
		}
	}
	if viewer, ok := store.Identity(); ok && !view.CanBook(*viewer) {
		fmt.Println("This is your own listing")
	}
	return nil
}

func runBook(ctx context.Context, client *api.Client, store *session.Store) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	listingID := fs.String("listing", "", "listing id")
	checkIn := fs.String("checkin", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("checkout", "", "check-out date (YYYY-MM-DD)")
	adults := fs.Int("adults", 1, "adults")
	children := fs.Int("children", 0, "children")
	infants := fs.Int("infants", 0, "infants")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	fs.Parse(os.Args[2:])

	listing, err := client.Listings.Get(ctx, *listingID)
	if err != nil {
		return err
	}

	viewer := models.UserIdentity{}
	if id, ok := store.Identity(); ok {
		viewer = *id
	}

	form := booking.NewForm(client, *listing, viewer)
	if form.CheckIn, err = parseDate(*checkIn); err != nil {
		return err
	}
	if form.CheckOut, err = parseDate(*checkOut); err != nil {
		return err
	}
	form.Adults = *adults
	form.Children = *children
	form.Infants = *infants
	form.Contact = booking.ContactInfo{FirstName: *first, LastName: *last, Email: *email, Phone: *phone}

	quote := form.Quote()
	fmt.Printf("%d nights: %d base + %d service + %d cleaning + %d taxes = %d total\n",
		quote.Nights, quote.BasePrice, quote.ServiceFee, quote.CleaningFee, quote.Taxes, quote.Total)

	created, err := form.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Booking %s created. Run 'staynest pay -booking %s ...' to complete it.\n", created.ID, created.ID)
	return nil
}

func runPay(ctx context.Context, client *api.Client, stripeCfg payment.Config) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	number := fs.String("number", "", "card number")
	expMonth := fs.Int64("exp-month", 0, "card expiry month")
	expYear := fs.Int64("exp-year", 0, "card expiry year")
	cvc := fs.String("cvc", "", "card cvc")
	name := fs.String("name", "", "cardholder name")
	line1 := fs.String("line1", "", "billing address line")
	city := fs.String("city", "", "billing city")
	state := fs.String("state", "", "billing state")
	postal := fs.String("postal", "", "billing postal code")
	country := fs.String("country", "", "billing country")
	fs.Parse(os.Args[2:])

	flow := payment.NewFlow(client, payment.NewStripeConfirmer(stripeCfg), *bookingID)
	if err := flow.Start(ctx); err != nil {
		return err
	}

	card := payment.Card{Number: *number, ExpMonth: *expMonth, ExpYear: *expYear, CVC: *cvc}
	billing := payment.BillingDetails{
		Name: *name,
		Address: payment.Address{
			Line1: *line1, City: *city, State: *state, PostalCode: *postal, Country: *country,
		},
	}

	result, err := flow.Confirm(ctx, card, billing)
	if err != nil {
		return err
	}
	if result.Warning != "" {
		fmt.Println(result.Warning)
	} else {
		fmt.Printf("Payment complete, booking %s confirmed.\n", result.BookingID)
	}
	return nil
}

func runBookings(ctx context.Context, client *api.Client) error {
	bookings, err := client.Bookings.ListMine(ctx)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		fmt.Printf("%s  %s  %s -> %s  %s/%s  total %d\n",
			b.ID, b.ListingID,
			b.CheckIn.Format(time.DateOnly), b.CheckOut.Format(time.DateOnly),
			b.Status, b.PaymentStatus, b.Price.Total)
	}
	return nil
}

func runWishlist(ctx context.Context, client *api.Client) error {
	fs := flag.NewFlagSet("wishlist", flag.ExitOnError)
	add := fs.String("add", "", "listing id to save")
	remove := fs.String("remove", "", "listing id to remove")
	fs.Parse(os.Args[2:])

	if *add != "" {
		return client.Wishlist.Add(ctx, *add)
	}
	if *remove != "" {
		return client.Wishlist.Remove(ctx, *remove)
	}

	listings, err := client.Wishlist.Get(ctx)
	if err != nil {
		return err
	}
	for _, l := range listings {
		fmt.Printf("%s  %s  %d/night\n", l.ID, l.Title, l.PricePerNight)
	}
	return nil
}

func runReviews(ctx context.Context, client *api.Client) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	listingID := fs.String("listing", "", "listing id")
	fs.Parse(os.Args[2:])

	reviews, err := client.Reviews.ListByListing(ctx, *listingID)
	if err != nil {
		return err
	}
	for _, r := range reviews {
		fmt.Printf("%d/5  %s  (%d found this helpful)\n", r.Rating, r.Comment, views.HelpfulCount(r))
		if r.HostResponse != nil {
			fmt.Printf("  Host: %s\n", r.HostResponse.Comment)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
