package value

import (
	"strconv"
	"strings"
)

// Canonical renders v the way print/core/str+ render it: integer-valued
// numbers print without a decimal point, other numbers print with enough
// precision to round-trip (spec.md §6). Strings print bare (no quotes),
// the same as String.String().
func Canonical(v Value) string {
	switch t := v.(type) {
	case Nil:
		return "nil"
	case Number:
		return FormatNumber(float64(t))
	case Bool:
		return t.String()
	case String:
		return string(t)
	case Symbol:
		return string(t)
	case Path:
		return t.String()
	case List:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Canonical(e)
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return v.String()
	}
}

// FormatNumber implements the integer-vs-round-trip formatting rule on its
// own so callers that only have a float64 (not wrapped in a Number) can use
// it too.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
