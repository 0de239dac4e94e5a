package mockldap

import "slices"

// toList coerces an attribute value into its list form. Scalars become
// single-element lists; nil and unrecognized shapes yield nil.
func toList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	default:
		return nil
	}
}

// containsValue reports whether s is among the values of v, a scalar
// counting as its own single-value set.
func containsValue(v any, s string) bool {
	switch t := v.(type) {
	case string:
		return t == s
	case []string:
		return slices.Contains(t, s)
	default:
		return false
	}
}

// valueMatches implements one-level filter equality. A scalar matches by
// direct comparison; a list matches only when its sole element equals s.
// Both branches are deliberate: seeded directories store either shape and
// the two are treated as equivalent.
func valueMatches(v any, s string) bool {
	switch t := v.(type) {
	case string:
		return t == s
	case []string:
		return len(t) == 1 && t[0] == s
	default:
		return false
	}
}

// removeValues returns list without any element present in vals, preserving
// order. The input slice is left untouched.
func removeValues(list []string, vals []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !slices.Contains(vals, v) {
			out = append(out, v)
		}
	}
	return out
}

// cloneEntry returns a copy of e deep enough that mutating the copy's value
// lists leaves the original untouched.
func cloneEntry(e Entry) Entry {
	out := make(Entry, len(e))
	for k, v := range e {
		if vs, ok := v.([]string); ok {
			out[k] = slices.Clone(vs)
			continue
		}
		out[k] = v
	}
	return out
}
