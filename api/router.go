package api

import (
	"net/http"

	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/service/flights"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/Domenick1991/pingo/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	Catalog      []string
	ListLimit    int
	TaxesAndFees int64
	CookieName   string
	// SwaggerDir holds pingo.swagger.json; docs are not served when empty.
	SwaggerDir string
	// Locker rejects a repeated booking submit or removal while the first is
	// still running, across requests. Nil disables the guard.
	Locker view.Locker
}

func NewRouter(
	cfg RouterConfig,
	auth *session.Authenticator,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CorrelationID())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		router.Static("/swagger", cfg.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/pingo.swagger.json"))))
	}

	var pageOpts []view.Option
	if cfg.Locker != nil {
		pageOpts = append(pageOpts, view.WithLocker(cfg.Locker))
	}

	apiGroup := router.Group("/api", Session(auth, cfg.CookieName))
	NewSessionHandler(cfg.CookieName).Register(apiGroup.Group("/session"))
	NewCitiesHandler(cfg.Catalog).Register(apiGroup.Group("/cities"))
	NewSearchHandler(flightSvc, cfg.Catalog, cfg.ListLimit).Register(apiGroup.Group("/search"))
	NewBookingHandler(flightSvc, bookingSvc, cfg.TaxesAndFees, pageOpts...).Register(apiGroup.Group("/booking"))
	NewProfileHandler(bookingSvc, pageOpts...).Register(apiGroup.Group("/profile"))

	return router
}
