package store

import (
	"strconv"

	"github.com/specmock/specmock/models"
)

// matchesFilter reports whether every filter entry equals the corresponding
// top-level document field. Shared by the memory and SQL backends so both
// expose identical List semantics.
func matchesFilter(doc models.Document, filter Filter) bool {
	for field, want := range filter {
		raw, ok := doc[field]
		if !ok {
			return false
		}
		if fieldString(raw) != want {
			return false
		}
	}

	return true
}

// fieldString renders a decoded JSON value the way it would appear in a query
// string: numbers without a trailing ".0", booleans as true/false.
func fieldString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
