package api

import (
	"net/http"

	"github.com/Domenick1991/pingo/internal/autocomplete"
	"github.com/gin-gonic/gin"
)

type CitiesHandler struct {
	catalog []string
}

func NewCitiesHandler(catalog []string) *CitiesHandler {
	return &CitiesHandler{catalog: catalog}
}

func (h *CitiesHandler) Register(router *gin.RouterGroup) {
	router.GET("/suggest", h.suggest)
}

func (h *CitiesHandler) suggest(c *gin.Context) {
	field, err := autocomplete.ParseField(c.Query("field"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := autocomplete.NewFields(h.catalog)
	if err := fields.Input(field, c.Query("q")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"field":       field,
		"value":       fields.Get(field).Value,
		"suggestions": fields.Get(field).Suggestions,
	})
}
