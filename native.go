package restshape

import "strconv"

// NativeValue guesses the primitive type of a raw text value: the boolean
// literals true/false, then integer, then float, falling back to the string
// itself. Header and querystring values always arrive as text; this is the
// boundary where text is promoted to typed data.
func NativeValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
