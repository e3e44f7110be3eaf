package view

import (
	"context"
	"errors"
	"sync"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/service/flights"
	"github.com/Domenick1991/pingo/internal/session"
)

const (
	msgLoginToBook      = "You must be logged in to book a flight."
	msgBookFailed       = "Failed to book flight. Please try again."
	msgLoadFlightFailed = "Failed to load flight. Please try again."

	// ProfilePath is where the client goes after a successful booking.
	ProfilePath = "/profile"
)

// BookingForm is the passenger and payment form. Card details stay in memory
// only: they are neither validated nor sent anywhere, nor rendered back.
type BookingForm struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	CardNumber string `json:"-"`
	ExpiryDate string `json:"-"`
	CVV        string `json:"-"`
}

type OrderSummary struct {
	Fare         int64 `json:"fare"`
	TaxesAndFees int64 `json:"taxes_and_fees"`
	Total        int64 `json:"total"`
}

type BookingSnapshot struct {
	Load     Status          `json:"load_status"`
	Submit   Status          `json:"submit_status"`
	FlightID string          `json:"flight_id"`
	Flight   *domain.Flight  `json:"flight,omitempty"`
	Summary  *OrderSummary   `json:"order_summary,omitempty"`
	Form     BookingForm     `json:"form"`
	Booking  *domain.Booking `json:"booking,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type BookingPage struct {
	mu       sync.Mutex
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	session  session.Provider
	taxes    int64
	flightID string
	flight   *domain.Flight
	form     BookingForm
	booked   *domain.Booking
	redirect string
	errMsg   string
	actions  *actions
	locker   Locker
}

// NewBookingPage prefills the form email from the signed-in user, if any.
func NewBookingPage(
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	sess session.Provider,
	flightID string,
	taxesAndFees int64,
	opts ...Option,
) *BookingPage {
	o := applyOptions(opts)
	p := &BookingPage{
		flights:  flightSvc,
		bookings: bookingSvc,
		session:  sess,
		taxes:    taxesAndFees,
		flightID: flightID,
		actions:  newActions("booking", ActionLoad, ActionSubmit),
		locker:   o.locker,
	}
	if user := sess.CurrentUser(); user != nil {
		p.form.Email = user.Email
	}
	return p
}

// Load fetches the flight shown in the details panel and order summary.
func (p *BookingPage) Load(ctx context.Context) error {
	p.mu.Lock()
	if err := p.actions.begin(ActionLoad); err != nil {
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	flight, err := p.flights.GetFlight(ctx, p.flightID)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions.finish(ActionLoad, err)
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("flight_id", p.flightID).Error("error loading flight")
		p.errMsg = msgLoadFlightFailed
		return err
	}
	p.flight = flight
	return nil
}

// SetForm replaces the form fields. An empty email keeps the prefilled one.
func (p *BookingPage) SetForm(form BookingForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if form.Email == "" {
		form.Email = p.form.Email
	}
	p.form = form
}

// Submit books the flight for the signed-in user and sets the redirect on success.
// With a Locker, a second submit of the same user and flight is rejected while
// the first one runs, in any request.
func (p *BookingPage) Submit(ctx context.Context) error {
	if user := p.session.CurrentUser(); user != nil {
		release, err := p.actions.lock(ctx, p.locker, ActionSubmit, "booking:"+user.ID+":"+p.flightID)
		if err != nil {
			return err
		}
		defer release()
	}

	p.mu.Lock()
	if err := p.actions.begin(ActionSubmit); err != nil {
		p.mu.Unlock()
		return err
	}
	p.errMsg = ""
	if p.session.CurrentUser() == nil {
		p.actions.finish(ActionSubmit, domain.ErrNotLoggedIn)
		p.errMsg = msgLoginToBook
		p.mu.Unlock()
		return domain.ErrNotLoggedIn
	}
	p.mu.Unlock()

	created, err := p.bookings.CreateBooking(ctx, p.session, p.flightID)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions.finish(ActionSubmit, err)
	if err != nil {
		if errors.Is(err, domain.ErrNotLoggedIn) {
			p.errMsg = msgLoginToBook
			return err
		}
		logging.FromContext(ctx).WithError(err).WithField("flight_id", p.flightID).Error("error booking flight")
		p.errMsg = msgBookFailed
		return err
	}
	p.booked = created
	p.redirect = ProfilePath
	return nil
}

func (p *BookingPage) Snapshot() BookingSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := BookingSnapshot{
		Load:     p.actions.get(ActionLoad),
		Submit:   p.actions.get(ActionSubmit),
		FlightID: p.flightID,
		Form:     p.form,
		Redirect: p.redirect,
		Error:    p.errMsg,
	}
	if p.flight != nil {
		f := *p.flight
		snap.Flight = &f
		snap.Summary = &OrderSummary{
			Fare:         f.Price,
			TaxesAndFees: p.taxes,
			Total:        f.Price + p.taxes,
		}
	}
	if p.booked != nil {
		b := *p.booked
		snap.Booking = &b
	}
	return snap
}
