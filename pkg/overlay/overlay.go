package overlay

import (
	"errors"

	"github.com/kfone/console/pkg/tenants"
)

// ErrCountryNotConfigured is returned when a user has no attribute record for
// the requested country.
var ErrCountryNotConfigured = errors.New("no attributes configured for country")

// AttributesFor returns a user's attribute record for one country. The
// record is a copy; the per-country view is read-only.
func AttributesFor(user *tenants.User, country string) (*tenants.CountryAttributes, error) {
	for i := range user.PayAttributes {
		if user.PayAttributes[i].Country == country {
			ca := user.PayAttributes[i]
			return &ca, nil
		}
	}
	return nil, ErrCountryNotConfigured
}

// Countries returns the countries a user has attribute records for, in
// record order.
func Countries(user *tenants.User) []string {
	out := make([]string, len(user.PayAttributes))
	for i := range user.PayAttributes {
		out[i] = user.PayAttributes[i].Country
	}
	return out
}

// Accordion tracks per-country expansion state for the attribute view. Each
// country expands and collapses independently; the first country starts
// expanded, the rest collapsed.
type Accordion struct {
	expanded map[string]bool
}

// NewAccordion initializes expansion state for the given country order.
func NewAccordion(countries []string) *Accordion {
	a := &Accordion{expanded: make(map[string]bool, len(countries))}
	for i, c := range countries {
		a.expanded[c] = i == 0
	}
	return a
}

// Expanded reports whether a country's section is open.
func (a *Accordion) Expanded(country string) bool {
	return a.expanded[country]
}

// Toggle flips one country's section, leaving the others untouched.
func (a *Accordion) Toggle(country string) {
	a.expanded[country] = !a.expanded[country]
}

// SetAll expands or collapses every section.
func (a *Accordion) SetAll(expanded bool) {
	for c := range a.expanded {
		a.expanded[c] = expanded
	}
}
