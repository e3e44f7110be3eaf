package autocomplete

import (
	"errors"
	"fmt"
)

type Field string

const (
	FieldFrom Field = "from"
	FieldTo   Field = "to"
)

var ErrUnknownField = errors.New("unknown field")

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldFrom, FieldTo:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

type FieldState struct {
	Value       string   `json:"value"`
	Suggestions []string `json:"suggestions"`
}

// Fields holds the origin and destination inputs. Updating one never touches
// the other. Not safe for concurrent use; owners guard it.
type Fields struct {
	catalog []string
	state   map[Field]*FieldState
}

func NewFields(catalog []string) *Fields {
	return &Fields{
		catalog: catalog,
		state: map[Field]*FieldState{
			FieldFrom: {Suggestions: []string{}},
			FieldTo:   {Suggestions: []string{}},
		},
	}
}

// Input records typed text and recomputes that field's suggestions.
func (f *Fields) Input(field Field, value string) error {
	st, ok := f.state[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	st.Value = value
	st.Suggestions = Suggest(f.catalog, value)
	return nil
}

// Select commits a chosen suggestion and closes that field's list.
func (f *Fields) Select(field Field, value string) error {
	st, ok := f.state[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	st.Value = value
	st.Suggestions = []string{}
	return nil
}

func (f *Fields) Get(field Field) FieldState {
	st, ok := f.state[field]
	if !ok {
		return FieldState{Suggestions: []string{}}
	}
	return FieldState{
		Value:       st.Value,
		Suggestions: append([]string{}, st.Suggestions...),
	}
}
