package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/pingo/api"
	"github.com/Domenick1991/pingo/config"
	"github.com/Domenick1991/pingo/internal/autocomplete"
	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/service/flights"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/Domenick1991/pingo/internal/view"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	auth *session.Authenticator,
	locker view.Locker,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
) error {
	srv := newServer(cfg, auth, locker, flightSvc, bookingSvc)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logrus.Info("shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func newServer(
	cfg *config.Config,
	auth *session.Authenticator,
	locker view.Locker,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
) *http.Server {
	router := api.NewRouter(api.RouterConfig{
		Catalog:      autocomplete.DefaultCatalog(),
		ListLimit:    cfg.Booking.DefaultListLimit,
		TaxesAndFees: cfg.Booking.TaxesAndFees,
		CookieName:   cfg.Session.CookieName,
		SwaggerDir:   cfg.HTTP.SwaggerDir,
		Locker:       locker,
	}, auth, flightSvc, bookingSvc)

	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
