package familytree

import (
	"reflect"
	"testing"
)

func intp(v int) *int { return &v }

func rawFamily() []RawPerson {
	father := RelationshipRecord{PersonA: "bengt", PersonB: "erik", Kind: KindFather}
	mother := RelationshipRecord{PersonA: "greta", PersonB: "erik", Kind: KindMother}
	spouse := RelationshipRecord{PersonA: "bengt", PersonB: "greta", Kind: KindSpouse}
	return []RawPerson{
		{
			ID:            "bengt",
			Name:          "Bengt Lindqvist",
			BirthYear:     intp(1938),
			Gender:        "M",
			Relationships: []RelationshipRecord{father, spouse},
		},
		{
			ID:            "greta",
			Name:          "Greta Lindqvist",
			Gender:        "F",
			Relationships: []RelationshipRecord{mother, spouse},
		},
		{
			ID:   "erik",
			Name: "Erik Lindqvist",
			Bio:  "Shipwright in Karlskrona.",
			Tags: []string{"navy"},
			// Same rows again, as the bulk fetch delivers them from the
			// child's side too.
			Relationships: []RelationshipRecord{father, mother},
		},
	}
}

func indexByID(persons []Person) map[string]*Person {
	m := make(map[string]*Person, len(persons))
	for i := range persons {
		m[persons[i].ID] = &persons[i]
	}
	return m
}

func TestNormalizeBuildsReciprocalGraph(t *testing.T) {
	persons := Normalize(rawFamily())
	if len(persons) != 3 {
		t.Fatalf("got %d persons, want 3", len(persons))
	}
	byID := indexByID(persons)

	erik := byID["erik"]
	if erik.Rels.Father != "bengt" || erik.Rels.Mother != "greta" {
		t.Fatalf("erik parents = (%q, %q), want (bengt, greta)", erik.Rels.Father, erik.Rels.Mother)
	}
	if got := byID["bengt"].Rels.Children; !reflect.DeepEqual(got, []string{"erik"}) {
		t.Fatalf("bengt children = %v, want [erik]", got)
	}
	if got := byID["greta"].Rels.Children; !reflect.DeepEqual(got, []string{"erik"}) {
		t.Fatalf("greta children = %v, want [erik]", got)
	}
	if !byID["bengt"].HasSpouse("greta") || !byID["greta"].HasSpouse("bengt") {
		t.Fatal("spouse edge is not symmetric")
	}
}

func TestNormalizeDeduplicatesSharedRecords(t *testing.T) {
	// Every record appears in both endpoints' lists; dedup is on the
	// original (A, B, kind) triple, so nothing doubles up.
	persons := Normalize(rawFamily())
	byID := indexByID(persons)
	for _, id := range []string{"bengt", "greta"} {
		p := byID[id]
		if len(p.Rels.Children) != 1 {
			t.Errorf("%s children = %v, want exactly one entry", id, p.Rels.Children)
		}
		if len(p.Rels.Spouses) != 1 {
			t.Errorf("%s spouses = %v, want exactly one entry", id, p.Rels.Spouses)
		}
	}
}

func TestNormalizeFirstFatherWins(t *testing.T) {
	raw := []RawPerson{
		{ID: "a", Relationships: []RelationshipRecord{
			{PersonA: "a", PersonB: "c", Kind: KindFather},
			{PersonA: "b", PersonB: "c", Kind: KindFather},
		}},
		{ID: "b"},
		{ID: "c"},
	}
	byID := indexByID(Normalize(raw))
	if got := byID["c"].Rels.Father; got != "a" {
		t.Fatalf("father = %q, want the first-seen record to win (a)", got)
	}
	// The losing record still shows on the parent's side.
	if !byID["b"].HasChild("c") {
		t.Fatal("b should still list c as a child")
	}
}

func TestNormalizeDropsDanglingAndSelfRecords(t *testing.T) {
	raw := []RawPerson{
		{ID: "a", Relationships: []RelationshipRecord{
			{PersonA: "ghost", PersonB: "a", Kind: KindFather},
			{PersonA: "a", PersonB: "ghost", Kind: KindMother},
			{PersonA: "a", PersonB: "ghost", Kind: KindSpouse},
			{PersonA: "a", PersonB: "a", Kind: KindSpouse},
		}},
	}
	persons := Normalize(raw)
	a := indexByID(persons)["a"]
	if a.Rels.Father != "" {
		t.Errorf("father = %q, want dangling parent dropped", a.Rels.Father)
	}
	if len(a.Rels.Children) != 0 {
		t.Errorf("children = %v, want dangling child dropped", a.Rels.Children)
	}
	if len(a.Rels.Spouses) != 0 {
		t.Errorf("spouses = %v, want dangling and self rows dropped", a.Rels.Spouses)
	}

	// Nothing half-applied may leak into the neighbor index either; otherwise
	// a path could end at a person who does not exist.
	adj := BuildAdjacency(persons)
	if got := adj["a"]; len(got) != 0 {
		t.Errorf("adjacency for a = %v, want empty", got)
	}
	if _, ok := adj["ghost"]; ok {
		t.Error("unknown id has an adjacency entry")
	}
}

func TestNormalizeIsIdempotentOnInput(t *testing.T) {
	raw := rawFamily()
	first := Normalize(raw)
	second := Normalize(raw)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("normalizing the same input twice produced different graphs")
	}
}

func TestCanonicalPersonShape(t *testing.T) {
	raw := []RawPerson{{
		ID:        "mona",
		Name:      "Mona van der Berg",
		BirthYear: intp(1956),
		PhotoURL:  "https://img.example/mona.jpg",
		Media: []RawMedia{
			{Type: "photo", URL: "https://img.example/1.jpg"},
			{Type: "video", URL: "https://vid.example/1.mp4"},
			{Type: "file", URL: "https://doc.example/will.pdf", Title: "Last will"},
			{Type: "hologram", URL: "https://x.example/ignored"},
		},
	}}
	p := Normalize(raw)[0]

	if p.Data.FirstName != "Mona" || p.Data.LastName != "van der Berg" {
		t.Errorf("name split = (%q, %q)", p.Data.FirstName, p.Data.LastName)
	}
	if p.Data.Birthday != "1956" {
		t.Errorf("birthday = %q, want 1956", p.Data.Birthday)
	}
	if p.Data.Avatar != "https://img.example/mona.jpg" {
		t.Errorf("avatar = %q", p.Data.Avatar)
	}
	if len(p.Data.Media.Photos) != 1 || len(p.Data.Media.Videos) != 1 {
		t.Errorf("media partition = %+v", p.Data.Media)
	}
	if want := (MediaFile{URL: "https://doc.example/will.pdf", Name: "Last will"}); !reflect.DeepEqual(p.Data.Media.Files, []MediaFile{want}) {
		t.Errorf("files = %+v", p.Data.Media.Files)
	}
	// Absent collections come out empty, not nil, for a stable JSON shape.
	if p.Data.Tags == nil || p.Data.Locations == nil || p.Data.Social == nil {
		t.Error("empty collections must not be nil")
	}
}

func TestParseRelationKind(t *testing.T) {
	cases := []struct {
		in   string
		want RelationKind
		ok   bool
	}{
		{"father", KindFather, true},
		{"MOTHER", KindMother, true},
		{"spouse", KindSpouse, true},
		{"marriage", KindSpouse, true},
		{"cousin", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseRelationKind(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseRelationKind(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
