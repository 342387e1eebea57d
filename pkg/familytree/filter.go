package familytree

import "strings"

// defaultFilterLimit caps the unfiltered suggestion list shown before the
// user has typed anything.
const defaultFilterLimit = 6

// Filter returns persons matching the free-text query, case-insensitively,
// against full name, bio, tags and locations. An empty (or all-whitespace)
// query returns the first few persons in insertion order as suggestions.
func (s *Store) Filter(query string) []*Person {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		if len(s.persons) <= defaultFilterLimit {
			return append([]*Person{}, s.persons...)
		}
		return append([]*Person{}, s.persons[:defaultFilterLimit]...)
	}

	out := []*Person{}
	for _, p := range s.persons {
		if personMatches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func personMatches(p *Person, q string) bool {
	if strings.Contains(strings.ToLower(p.Name()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Data.Bio), q) {
		return true
	}
	for _, t := range p.Data.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	for _, l := range p.Data.Locations {
		if strings.Contains(strings.ToLower(l), q) {
			return true
		}
	}
	return false
}
