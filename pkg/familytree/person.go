// Package familytree holds the in-memory relationship graph behind the
// chart: it normalizes the denormalized relationship rows the API delivers
// into one canonical record per person, answers path and relatedness queries
// over that graph, and applies edits while repairing the reciprocal side of
// every edge so the structure never goes inconsistent.
package familytree

import "strings"

// RelationKind tags a storage-side relationship record. The set is closed:
// father and mother rows are directional (person A is the parent, person B
// the child), spouse rows are symmetric.
type RelationKind string

const (
	KindFather RelationKind = "father"
	KindMother RelationKind = "mother"
	KindSpouse RelationKind = "spouse"
)

// Directional reports whether records of this kind encode a parent→child
// edge, as opposed to an unordered spouse pair.
func (k RelationKind) Directional() bool {
	return k == KindFather || k == KindMother
}

// ParseRelationKind maps a raw relation_type value onto the closed kind set.
// Legacy "marriage" rows are treated as spouse rows.
func ParseRelationKind(s string) (RelationKind, bool) {
	switch RelationKind(strings.ToLower(s)) {
	case KindFather:
		return KindFather, true
	case KindMother:
		return KindMother, true
	case KindSpouse, RelationKind("marriage"):
		return KindSpouse, true
	}
	return "", false
}

// RelationshipRecord is the denormalized storage shape. The same record may
// arrive once per endpoint; the normalizer deduplicates on (A, B, Kind).
type RelationshipRecord struct {
	PersonA     string
	PersonB     string
	Kind        RelationKind
	StartedYear *int
	EndedYear   *int
}

// RawMedia is a storage media row before it is folded into the canonical
// photos/videos/files shape.
type RawMedia struct {
	Type  string
	URL   string
	Title string
}

// RawPerson is a person as delivered by the bulk storage fetch: flat
// attribute columns plus the duplicated relationship list.
type RawPerson struct {
	ID            string
	Name          string
	Bio           string
	PhotoURL      string
	BirthYear     *int
	DeathYear     *int
	Gender        string
	Tags          []string
	Locations     []string
	Media         []RawMedia
	Social        map[string]string
	Relationships []RelationshipRecord
}

// MediaFile is a generic attachment with an optional display name.
type MediaFile struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Media groups a person's attachments by kind.
type Media struct {
	Photos []string    `json:"photos"`
	Videos []string    `json:"videos"`
	Files  []MediaFile `json:"files"`
}

// PersonData carries the display attributes of a person. The JSON keys are
// the snapshot format of the chart tool and must stay stable for
// export/import round-trips, including the spaced "first name"/"last name".
type PersonData struct {
	FirstName string            `json:"first name"`
	LastName  string            `json:"last name"`
	Gender    string            `json:"gender"`
	Birthday  string            `json:"birthday"`
	Avatar    string            `json:"avatar"`
	Bio       string            `json:"bio"`
	Tags      []string          `json:"tags"`
	Locations []string          `json:"locations"`
	Media     Media             `json:"media"`
	Social    map[string]string `json:"social"`
}

// Relations is the canonical, reciprocity-consistent relationship slot set.
// Father and mother are single-valued ("" means unset; JSON null decodes to
// ""), spouses and children are duplicate-free and insertion-ordered.
type Relations struct {
	Father   string   `json:"father"`
	Mother   string   `json:"mother"`
	Spouses  []string `json:"spouses"`
	Children []string `json:"children"`
}

// Person is one node of the canonical graph and the unit of the snapshot
// export format.
type Person struct {
	ID   string     `json:"id"`
	Rels Relations  `json:"rels"`
	Data PersonData `json:"data"`
}

// Name returns the display name, falling back to the id when both name parts
// are empty.
func (p *Person) Name() string {
	if p == nil {
		return ""
	}
	nm := strings.TrimSpace(p.Data.FirstName + " " + p.Data.LastName)
	if nm == "" {
		return p.ID
	}
	return nm
}

// HasSpouse reports whether id is in the person's spouse set.
func (p *Person) HasSpouse(id string) bool {
	return contains(p.Rels.Spouses, id)
}

// HasChild reports whether id is in the person's children set.
func (p *Person) HasChild(id string) bool {
	return contains(p.Rels.Children, id)
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(list []string, id string) []string {
	if contains(list, id) {
		return list
	}
	return append(list, id)
}

func remove(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
