package search

import (
	"net/url"

	"github.com/gorilla/schema"
)

// FilterState is the (name, city, state) filter triple. It round-trips
// through a URL query string so a search can be shared as a link.
type FilterState struct {
	Name  string `schema:"name" json:"name"`
	City  string `schema:"city" json:"city"`
	State string `schema:"state" json:"state"`
}

// Empty reports whether no filter field is set. An empty triple never
// triggers a remote query.
func (f FilterState) Empty() bool {
	return f.Name == "" && f.City == "" && f.State == ""
}

// Values encodes the triple, omitting empty fields so shared links carry
// only what the user actually set.
func (f FilterState) Values() url.Values {
	v := url.Values{}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if f.State != "" {
		v.Set("state", f.State)
	}
	return v
}

// Encode returns the shareable query-string form.
func (f FilterState) Encode() string {
	return f.Values().Encode()
}

// ParseFilterState decodes a query string back into the triple. Unknown keys
// are ignored.
func ParseFilterState(q url.Values) (FilterState, error) {
	var f FilterState
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&f, q); err != nil {
		return FilterState{}, err
	}
	return f, nil
}
