package familytree

import (
	"strconv"
	"strings"
)

// Normalize converts the raw bulk-fetch shape into the canonical graph. Each
// relationship row may appear in both endpoints' lists; rows are deduplicated
// on the original (person A, person B, kind) triple, never on the reading
// person's perspective. Parent slots are first-writer-wins: a second father
// or mother row for the same child is kept only on the parent's children
// side. Rows referencing ids absent from the input are dropped silently.
//
// The input is not mutated and the result is freshly allocated, so a caller
// can build the new graph off to one side and swap it in atomically.
func Normalize(raw []RawPerson) []Person {
	rels := make(map[string]*Relations, len(raw))
	for _, rp := range raw {
		rels[rp.ID] = &Relations{Spouses: []string{}, Children: []string{}}
	}

	seen := make(map[string]struct{})
	for _, rp := range raw {
		for _, rec := range rp.Relationships {
			key := rec.PersonA + "-" + rec.PersonB + "-" + string(rec.Kind)
			if _, done := seen[key]; done {
				continue
			}
			seen[key] = struct{}{}
			applyRecord(rels, rec)
		}
	}

	persons := make([]Person, 0, len(raw))
	for _, rp := range raw {
		persons = append(persons, canonicalPerson(rp, *rels[rp.ID]))
	}
	return persons
}

func applyRecord(rels map[string]*Relations, rec RelationshipRecord) {
	a, b := rec.PersonA, rec.PersonB
	if a == b {
		return
	}
	// A record with an endpoint outside the input is dropped whole: applying
	// only the resolvable half would leave an id in the graph that no person
	// carries.
	ra, rb := rels[a], rels[b]
	if ra == nil || rb == nil {
		return
	}
	switch rec.Kind {
	case KindFather, KindMother:
		// A is the parent, B the child.
		if rec.Kind == KindFather && rb.Father == "" {
			rb.Father = a
		}
		if rec.Kind == KindMother && rb.Mother == "" {
			rb.Mother = a
		}
		ra.Children = appendUnique(ra.Children, b)
	case KindSpouse:
		ra.Spouses = appendUnique(ra.Spouses, b)
		rb.Spouses = appendUnique(rb.Spouses, a)
	}
}

func canonicalPerson(rp RawPerson, r Relations) Person {
	first, last := splitName(rp.Name)

	media := Media{Photos: []string{}, Videos: []string{}, Files: []MediaFile{}}
	for _, m := range rp.Media {
		switch m.Type {
		case "photo":
			media.Photos = append(media.Photos, m.URL)
		case "video":
			media.Videos = append(media.Videos, m.URL)
		case "file":
			media.Files = append(media.Files, MediaFile{URL: m.URL, Name: m.Title})
		}
	}

	birthday := ""
	if rp.BirthYear != nil {
		birthday = strconv.Itoa(*rp.BirthYear)
	}

	tags := rp.Tags
	if tags == nil {
		tags = []string{}
	}
	locations := rp.Locations
	if locations == nil {
		locations = []string{}
	}
	social := rp.Social
	if social == nil {
		social = map[string]string{}
	}

	return Person{
		ID:   rp.ID,
		Rels: r,
		Data: PersonData{
			FirstName: first,
			LastName:  last,
			Gender:    rp.Gender,
			Birthday:  birthday,
			Avatar:    rp.PhotoURL,
			Bio:       rp.Bio,
			Tags:      tags,
			Locations: locations,
			Media:     media,
			Social:    social,
		},
	}
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
