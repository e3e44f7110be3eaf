package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/pingo/internal/autocomplete"
	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchHandler_load(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewSearchHandler(mockService, autocomplete.DefaultCatalog(), 5)

	c, w := newTestContext(http.MethodGet, "/api/search", nil, nil)
	flights := []domain.Flight{testFlight("f1", "Mumbai", "Delhi")}
	mockService.On("ListDefaultFlights", mock.Anything, 5).Return(flights, nil).Once()

	handler.load(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response view.SearchSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, view.StatusSuccess, response.Load)
	require.Len(t, response.Flights, 1)
	assert.Equal(t, "f1", response.Flights[0].ID)

	mockService.AssertExpectations(t)
}

func TestSearchHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewSearchHandler(mockService, autocomplete.DefaultCatalog(), 5)

	body := `{"from":"Mumbai","to":"Delhi","date":"2024-03-15"}`
	c, w := newTestContext(http.MethodPost, "/api/search", &body, nil)
	mockService.On("SearchFlights", mock.Anything, "Mumbai", "Delhi").
		Return([]domain.Flight{testFlight("f1", "Mumbai", "Delhi")}, nil).Once()

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response view.SearchSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, view.StatusSuccess, response.Search)
	assert.Equal(t, "2024-03-15", response.Criteria.Date)
	assert.Len(t, response.Flights, 1)

	mockService.AssertExpectations(t)
}

func TestSearchHandler_searchBackendFailure(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewSearchHandler(mockService, autocomplete.DefaultCatalog(), 5)

	body := `{"from":"Mumbai","to":"Delhi"}`
	c, w := newTestContext(http.MethodPost, "/api/search", &body, nil)
	mockService.On("SearchFlights", mock.Anything, "Mumbai", "Delhi").Return(nil, domain.ErrBackend).Once()

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response view.SearchSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, view.StatusError, response.Search)
	assert.Equal(t, "Failed to search flights. Please try again.", response.Error)
}

func TestSearchHandler_searchBadRequest(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewSearchHandler(mockService, autocomplete.DefaultCatalog(), 5)

	body := `{"from":`
	c, w := newTestContext(http.MethodPost, "/api/search", &body, nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SearchFlights", mock.Anything, mock.Anything, mock.Anything)
}

func TestCitiesHandler_suggest(t *testing.T) {
	handler := NewCitiesHandler(autocomplete.DefaultCatalog())

	c, w := newTestContext(http.MethodGet, "/api/cities/suggest?field=from&q=mum", nil, nil)
	handler.suggest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Field       string   `json:"field"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "from", response.Field)
	assert.Equal(t, []string{"Mumbai (BOM)"}, response.Suggestions)

	c, w = newTestContext(http.MethodGet, "/api/cities/suggest?field=to&q=", nil, nil)
	handler.suggest(c)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response.Suggestions)
	assert.Empty(t, response.Suggestions)

	c, w = newTestContext(http.MethodGet, "/api/cities/suggest?field=via&q=mum", nil, nil)
	handler.suggest(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
