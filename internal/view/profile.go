package view

import (
	"context"
	"sync"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/samber/lo"
)

const (
	msgLoginToViewBookings = "You must be logged in to view your bookings."
	msgFetchBookingsFailed = "Failed to fetch bookings. Please try again."
	msgRemoveBookingFailed = "Failed to remove booking. Please try again."
)

type ProfileSnapshot struct {
	Load     Status           `json:"load_status"`
	Remove   Status           `json:"remove_status"`
	User     *domain.User     `json:"user,omitempty"`
	Bookings []domain.Booking `json:"bookings"`
	Selected *domain.Booking  `json:"selected,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type ProfilePage struct {
	mu       sync.Mutex
	bookings booking.BookingUseCase
	session  session.Provider
	list     []domain.Booking
	selected *domain.Booking
	errMsg   string
	actions  *actions
	locker   Locker
}

func NewProfilePage(svc booking.BookingUseCase, sess session.Provider, opts ...Option) *ProfilePage {
	o := applyOptions(opts)
	return &ProfilePage{
		bookings: svc,
		session:  sess,
		list:     []domain.Booking{},
		actions:  newActions("profile", ActionLoad, ActionRemove),
		locker:   o.locker,
	}
}

// Load fetches the user's bookings joined with their flights.
func (p *ProfilePage) Load(ctx context.Context) error {
	p.mu.Lock()
	if err := p.actions.begin(ActionLoad); err != nil {
		p.mu.Unlock()
		return err
	}
	p.errMsg = ""
	if p.session.CurrentUser() == nil {
		p.actions.finish(ActionLoad, domain.ErrNotLoggedIn)
		p.errMsg = msgLoginToViewBookings
		p.mu.Unlock()
		return domain.ErrNotLoggedIn
	}
	p.mu.Unlock()

	result, err := p.bookings.ListBookingsForUser(ctx, p.session)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions.finish(ActionLoad, err)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("error fetching bookings")
		p.errMsg = msgFetchBookingsFailed
		return err
	}
	if result == nil {
		result = []domain.Booking{}
	}
	p.list = result
	return nil
}

// Remove deletes the booking and drops it from the local list, closing the
// details view if it showed that booking.
func (p *ProfilePage) Remove(ctx context.Context, bookingID string) error {
	if user := p.session.CurrentUser(); user != nil {
		release, err := p.actions.lock(ctx, p.locker, ActionRemove, "remove:"+user.ID+":"+bookingID)
		if err != nil {
			return err
		}
		defer release()
	}

	p.mu.Lock()
	if err := p.actions.begin(ActionRemove); err != nil {
		p.mu.Unlock()
		return err
	}
	p.errMsg = ""
	p.mu.Unlock()

	err := p.bookings.DeleteBooking(ctx, p.session, bookingID)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions.finish(ActionRemove, err)
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("booking_id", bookingID).Error("error removing booking")
		p.errMsg = msgRemoveBookingFailed
		return err
	}
	p.list = lo.Reject(p.list, func(b domain.Booking, _ int) bool {
		return b.ID == bookingID
	})
	if p.selected != nil && p.selected.ID == bookingID {
		p.selected = nil
	}
	return nil
}

// Open selects a loaded booking for the details view.
func (p *ProfilePage) Open(bookingID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := lo.Find(p.list, func(b domain.Booking) bool {
		return b.ID == bookingID
	})
	if !ok {
		return domain.ErrNotFound
	}
	p.selected = &b
	return nil
}

func (p *ProfilePage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = nil
}

// Snapshot reports the load as loading until the first load finished.
func (p *ProfilePage) Snapshot() ProfileSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	load := p.actions.get(ActionLoad)
	if load == StatusIdle {
		load = StatusLoading
	}
	snap := ProfileSnapshot{
		Load:     load,
		Remove:   p.actions.get(ActionRemove),
		User:     p.session.CurrentUser(),
		Bookings: append([]domain.Booking{}, p.list...),
		Error:    p.errMsg,
	}
	if p.selected != nil {
		b := *p.selected
		snap.Selected = &b
	}
	return snap
}
