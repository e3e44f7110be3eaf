package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/service/flights"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/Domenick1991/pingo/internal/view"
	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking page of a single flight.
type BookingHandler struct {
	flights      flights.FlightUseCase
	service      booking.BookingUseCase
	taxesAndFees int64
	pageOpts     []view.Option
}

type bookingRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

func NewBookingHandler(flightSvc flights.FlightUseCase, service booking.BookingUseCase, taxesAndFees int64, opts ...view.Option) *BookingHandler {
	return &BookingHandler{flights: flightSvc, service: service, taxesAndFees: taxesAndFees, pageOpts: opts}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/:flightId", h.get)
	router.POST("/:flightId", h.create)
}

func (h *BookingHandler) newPage(c *gin.Context) *view.BookingPage {
	sess := session.FromContext(c.Request.Context())
	return view.NewBookingPage(h.flights, h.service, sess, c.Param("flightId"), h.taxesAndFees, h.pageOpts...)
}

func (h *BookingHandler) get(c *gin.Context) {
	page := h.newPage(c)
	err := page.Load(c.Request.Context())
	c.JSON(pageStatus(err), page.Snapshot())
}

func (h *BookingHandler) create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := h.newPage(c)
	page.SetForm(view.BookingForm{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	})
	// an unavailable summary does not block booking, an unknown flight does
	if err := page.Load(c.Request.Context()); errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, page.Snapshot())
		return
	}

	if err := page.Submit(c.Request.Context()); err != nil {
		c.JSON(pageStatus(err), page.Snapshot())
		return
	}
	c.JSON(http.StatusCreated, page.Snapshot())
}
