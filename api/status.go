package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/view"
)

// pageStatus picks the HTTP status for a page action. Failed backend calls
// still render the page with its message, so they answer 200.
func pageStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, view.ErrActionInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}
