package view

import (
	"context"
	"sync"

	"github.com/Domenick1991/pingo/internal/autocomplete"
	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/service/flights"
)

const (
	ActionLoad   = "load"
	ActionSearch = "search"
	ActionSubmit = "submit"
	ActionRemove = "remove"
)

const (
	msgLoadFlightsFailed   = "Failed to load flights. Please try again."
	msgSearchFlightsFailed = "Failed to search flights. Please try again."
)

type SearchCriteria struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Date is collected but not used to filter results.
	Date string `json:"date"`
}

type SearchSnapshot struct {
	Load        Status              `json:"load_status"`
	Search      Status              `json:"search_status"`
	Criteria    SearchCriteria      `json:"criteria"`
	Suggestions map[string][]string `json:"suggestions"`
	Flights     []domain.Flight     `json:"flights"`
	Error       string              `json:"error,omitempty"`
}

type SearchPage struct {
	mu      sync.Mutex
	flights flights.FlightUseCase
	limit   int
	fields  *autocomplete.Fields
	date    string
	results []domain.Flight
	errMsg  string
	actions *actions
}

func NewSearchPage(svc flights.FlightUseCase, catalog []string, limit int) *SearchPage {
	return &SearchPage{
		flights: svc,
		limit:   limit,
		fields:  autocomplete.NewFields(catalog),
		results: []domain.Flight{},
		actions: newActions("search", ActionLoad, ActionSearch),
	}
}

// Load fills the page with the default capped listing.
func (p *SearchPage) Load(ctx context.Context) error {
	p.mu.Lock()
	if err := p.actions.begin(ActionLoad); err != nil {
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	result, err := p.flights.ListDefaultFlights(ctx, p.limit)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions.finish(ActionLoad, err)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("error loading flights")
		p.errMsg = msgLoadFlightsFailed
		return err
	}
	p.setResults(result)
	return nil
}

func (p *SearchPage) Input(field autocomplete.Field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fields.Input(field, value)
}

func (p *SearchPage) SelectSuggestion(field autocomplete.Field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fields.Select(field, value)
}

// SetCriteria replaces the whole form, as a submitted request does.
func (p *SearchPage) SetCriteria(c SearchCriteria) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.fields.Select(autocomplete.FieldFrom, c.From)
	_ = p.fields.Select(autocomplete.FieldTo, c.To)
	p.date = c.Date
}

// Search runs the exact city-pair query with the current field values. The
// error message is cleared when the search starts.
func (p *SearchPage) Search(ctx context.Context) error {
	p.mu.Lock()
	if err := p.actions.begin(ActionSearch); err != nil {
		p.mu.Unlock()
		return err
	}
	p.errMsg = ""
	from := p.fields.Get(autocomplete.FieldFrom).Value
	to := p.fields.Get(autocomplete.FieldTo).Value
	p.mu.Unlock()

	result, err := p.flights.SearchFlights(ctx, from, to)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions.finish(ActionSearch, err)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("error searching flights")
		p.errMsg = msgSearchFlightsFailed
		return err
	}
	p.setResults(result)
	return nil
}

func (p *SearchPage) setResults(result []domain.Flight) {
	if result == nil {
		result = []domain.Flight{}
	}
	p.results = result
}

func (p *SearchPage) Snapshot() SearchSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	from := p.fields.Get(autocomplete.FieldFrom)
	to := p.fields.Get(autocomplete.FieldTo)
	return SearchSnapshot{
		Load:     p.actions.get(ActionLoad),
		Search:   p.actions.get(ActionSearch),
		Criteria: SearchCriteria{From: from.Value, To: to.Value, Date: p.date},
		Suggestions: map[string][]string{
			string(autocomplete.FieldFrom): from.Suggestions,
			string(autocomplete.FieldTo):   to.Suggestions,
		},
		Flights: append([]domain.Flight{}, p.results...),
		Error:   p.errMsg,
	}
}
