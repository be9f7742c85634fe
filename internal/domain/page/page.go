// Package page clamps list pagination parameters.
package page

const (
	DefaultLimit = 50
	MaxLimit     = 100

	DefaultTopLimit = 5
	MaxTopLimit     = 50
)

type Page struct {
	Limit  int
	Offset int
}

// New clamps limit to [1, max] and offset to >= 0. A nil limit takes def.
func New(limit *int, offset int, def, max int) Page {
	l := def
	if limit != nil {
		l = *limit
	}
	if l < 1 {
		l = 1
	}
	if l > max {
		l = max
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: l, Offset: offset}
}

// List is the page used by the plain list endpoints.
func List(limit *int, offset int) Page {
	return New(limit, offset, DefaultLimit, MaxLimit)
}

// Top is the page used by the "top" variants, which take no offset.
func Top(limit *int) Page {
	return New(limit, 0, DefaultTopLimit, MaxTopLimit)
}
