package api

import (
	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/Domenick1991/pingo/internal/view"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service  booking.BookingUseCase
	pageOpts []view.Option
}

func NewProfileHandler(service booking.BookingUseCase, opts ...view.Option) *ProfileHandler {
	return &ProfileHandler{service: service, pageOpts: opts}
}

func (h *ProfileHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.get)
	router.GET("/bookings/:id", h.details)
	router.DELETE("/bookings/:id", h.remove)
}

func (h *ProfileHandler) load(c *gin.Context) (*view.ProfilePage, error) {
	page := view.NewProfilePage(h.service, session.FromContext(c.Request.Context()), h.pageOpts...)
	return page, page.Load(c.Request.Context())
}

func (h *ProfileHandler) get(c *gin.Context) {
	page, err := h.load(c)
	c.JSON(pageStatus(err), page.Snapshot())
}

func (h *ProfileHandler) details(c *gin.Context) {
	page, err := h.load(c)
	if err != nil {
		c.JSON(pageStatus(err), page.Snapshot())
		return
	}
	err = page.Open(c.Param("id"))
	c.JSON(pageStatus(err), page.Snapshot())
}

func (h *ProfileHandler) remove(c *gin.Context) {
	// the list shown after removal comes from this load, so a failed load stops here
	page, err := h.load(c)
	if err != nil {
		c.JSON(pageStatus(err), page.Snapshot())
		return
	}
	err = page.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(pageStatus(err), page.Snapshot())
}
