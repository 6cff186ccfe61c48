package registry

// Args holds validated, typed arguments keyed by field name. Numbers are
// float64 (the JSON decoding shape); the accessors below convert as needed.
type Args map[string]any

// Has reports whether the field was supplied (or defaulted).
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the field as a string, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the field truncated to an int, or 0 when absent.
func (a Args) Int(name string) int {
	return a.IntOr(name, 0)
}

// IntOr returns the field truncated to an int, or def when absent.
func (a Args) IntOr(name string, def int) int {
	v, ok := a[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return def
}

// Float returns the field as a float64, or 0 when absent.
func (a Args) Float(name string) float64 {
	switch n := a[name].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// Bool returns the field as a bool, or false when absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Slice returns the field as a raw array, or nil when absent.
func (a Args) Slice(name string) []any {
	s, _ := a[name].([]any)
	return s
}
