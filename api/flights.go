package api

import (
	"net/http"

	"github.com/Domenick1991/pingo/internal/service/flights"
	"github.com/Domenick1991/pingo/internal/view"
	"github.com/gin-gonic/gin"
)

// SearchHandler serves the flight search page.
type SearchHandler struct {
	service flights.FlightUseCase
	catalog []string
	limit   int
}

type searchRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

func NewSearchHandler(service flights.FlightUseCase, catalog []string, limit int) *SearchHandler {
	return &SearchHandler{service: service, catalog: catalog, limit: limit}
}

func (h *SearchHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.load)
	router.POST("", h.search)
}

func (h *SearchHandler) load(c *gin.Context) {
	page := view.NewSearchPage(h.service, h.catalog, h.limit)
	err := page.Load(c.Request.Context())
	c.JSON(pageStatus(err), page.Snapshot())
}

func (h *SearchHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := view.NewSearchPage(h.service, h.catalog, h.limit)
	page.SetCriteria(view.SearchCriteria{From: req.From, To: req.To, Date: req.Date})
	err := page.Search(c.Request.Context())
	c.JSON(pageStatus(err), page.Snapshot())
}
