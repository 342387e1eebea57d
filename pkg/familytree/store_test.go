package familytree

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, persons []Person) *Store {
	t.Helper()
	s := NewStore(&SequenceAllocator{})
	s.Replace(persons)
	return s
}

// checkConsistent asserts the reciprocity invariants over the whole graph.
func checkConsistent(t *testing.T, s *Store) {
	t.Helper()
	byID := s.ByID()
	for _, p := range s.Persons() {
		if f := p.Rels.Father; f != "" {
			parent, ok := byID[f]
			if !ok {
				t.Errorf("%s has dangling father %s", p.ID, f)
			} else if !parent.HasChild(p.ID) {
				t.Errorf("father %s does not list %s as child", f, p.ID)
			}
		}
		if m := p.Rels.Mother; m != "" {
			parent, ok := byID[m]
			if !ok {
				t.Errorf("%s has dangling mother %s", p.ID, m)
			} else if !parent.HasChild(p.ID) {
				t.Errorf("mother %s does not list %s as child", m, p.ID)
			}
		}
		for _, sp := range p.Rels.Spouses {
			other, ok := byID[sp]
			if !ok {
				t.Errorf("%s has dangling spouse %s", p.ID, sp)
			} else if !other.HasSpouse(p.ID) {
				t.Errorf("spouse edge %s-%s is one-sided", p.ID, sp)
			}
		}
		for _, c := range p.Rels.Children {
			child, ok := byID[c]
			if !ok {
				t.Errorf("%s has dangling child %s", p.ID, c)
			} else if child.Rels.Father != p.ID && child.Rels.Mother != p.ID {
				t.Errorf("child %s does not point back at parent %s", c, p.ID)
			}
		}
	}
}

func TestCreateAllocatesUniqueIDs(t *testing.T) {
	s := newTestStore(t, nil)
	a := s.Create("Jane", "Doe")
	b := s.Create("Jane", "Doe")
	if a.ID == b.ID {
		t.Fatalf("two creations share id %q", a.ID)
	}
	if !strings.HasPrefix(a.ID, "jane-doe-") {
		t.Errorf("id %q does not carry the name slug", a.ID)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if len(a.Rels.Spouses) != 0 || len(a.Rels.Children) != 0 {
		t.Error("fresh person must start unlinked")
	}
}

func TestUpdateRepairsReciprocalEdges(t *testing.T) {
	s := newTestStore(t, threeGenerations())

	// Marry the hermit to Freja and make him a second child of Bengt and
	// Greta in one edit.
	hermit, _ := s.Get("hermit")
	ok := s.Update("hermit", Update{
		Data:    hermit.Data,
		Father:  "bengt",
		Mother:  "greta",
		Spouses: []string{"freja"},
	})
	if !ok {
		t.Fatal("update reported unknown id")
	}

	bengt, _ := s.Get("bengt")
	if !bengt.HasChild("hermit") {
		t.Error("new father did not gain the child")
	}
	freja, _ := s.Get("freja")
	if !freja.HasSpouse("hermit") {
		t.Error("spouse edge not mirrored")
	}
	checkConsistent(t, s)
}

func TestUpdateDropsOldParentAndSpouse(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	erik, _ := s.Get("erik")

	// Erik divorces Freja and his father slot is corrected to empty.
	if !s.Update("erik", Update{Data: erik.Data, Mother: "greta", Children: erik.Rels.Children}) {
		t.Fatal("update failed")
	}

	bengt, _ := s.Get("bengt")
	if bengt.HasChild("erik") {
		t.Error("old father still lists the child")
	}
	freja, _ := s.Get("freja")
	if freja.HasSpouse("erik") {
		t.Error("removed spouse edge still present on the other side")
	}
	liam, _ := s.Get("liam")
	if liam.Rels.Father != "erik" {
		t.Errorf("liam father = %q, want erik kept via children list", liam.Rels.Father)
	}
	checkConsistent(t, s)
}

func TestUpdateIgnoresSelfAndUnknownIDs(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	erik, _ := s.Get("erik")
	s.Update("erik", Update{
		Data:     erik.Data,
		Father:   "erik",
		Mother:   "nobody",
		Spouses:  []string{"erik", "freja", "freja"},
		Children: []string{"liam"},
	})
	erik, _ = s.Get("erik")
	if erik.Rels.Father != "" {
		t.Errorf("self father = %q, want cleared", erik.Rels.Father)
	}
	if !reflect.DeepEqual(erik.Rels.Spouses, []string{"freja"}) {
		t.Errorf("spouses = %v, want deduplicated [freja]", erik.Rels.Spouses)
	}
	if s.Update("nobody", Update{}) {
		t.Error("update of unknown id must report false")
	}
}

func TestSetParentExplicitSlot(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	// Freja has no recorded gender use case here: set her as Liam's mother
	// through the explicit slot.
	if !s.SetParent("liam", "freja", SlotMother) {
		t.Fatal("SetParent failed")
	}
	liam, _ := s.Get("liam")
	if liam.Rels.Mother != "freja" {
		t.Fatalf("mother = %q", liam.Rels.Mother)
	}
	freja, _ := s.Get("freja")
	if !freja.HasChild("liam") {
		t.Error("parent side not mirrored")
	}

	// Replacing the slot removes the child from the previous occupant.
	if !s.SetParent("liam", "greta", SlotMother) {
		t.Fatal("SetParent replace failed")
	}
	freja, _ = s.Get("freja")
	if freja.HasChild("liam") {
		t.Error("previous mother still lists the child")
	}
	checkConsistent(t, s)

	if s.SetParent("liam", "liam", SlotFather) {
		t.Error("self-parenting must be rejected")
	}
	if s.SetParent("liam", "nobody", SlotFather) {
		t.Error("unknown parent must be rejected")
	}
}

func TestDeleteSweepsAllReferences(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	if !s.Delete("erik") {
		t.Fatal("delete reported unknown id")
	}
	if _, ok := s.Get("erik"); ok {
		t.Fatal("deleted person still resolvable")
	}
	bengt, _ := s.Get("bengt")
	if bengt.HasChild("erik") {
		t.Error("parent still lists deleted child")
	}
	freja, _ := s.Get("freja")
	if freja.HasSpouse("erik") {
		t.Error("spouse still lists deleted person")
	}
	liam, _ := s.Get("liam")
	if liam.Rels.Father != "" {
		t.Errorf("child father = %q, want cleared", liam.Rels.Father)
	}
	checkConsistent(t, s)

	if s.Delete("erik") {
		t.Error("second delete must report false")
	}
}

func TestAddSiblingSynthesizesPlaceholderParents(t *testing.T) {
	s := newTestStore(t, []Person{{
		ID:   "solo",
		Data: PersonData{FirstName: "Sana", LastName: "Okafor"},
	}})

	sib, ok := s.AddSibling("solo", "Nadia", "")
	if !ok {
		t.Fatal("AddSibling failed")
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want base + sibling + two placeholders", s.Len())
	}

	solo, _ := s.Get("solo")
	if solo.Rels.Father == "" || solo.Rels.Mother == "" {
		t.Fatal("base did not gain placeholder parents")
	}
	if sib.Rels.Father != solo.Rels.Father || sib.Rels.Mother != solo.Rels.Mother {
		t.Fatal("sibling and base do not share parents")
	}
	if sib.Data.LastName != "Okafor" {
		t.Errorf("sibling last name = %q, want inherited", sib.Data.LastName)
	}

	father, _ := s.Get(solo.Rels.Father)
	mother, _ := s.Get(solo.Rels.Mother)
	if father.Data.Gender != "M" || mother.Data.Gender != "F" {
		t.Errorf("placeholder genders = (%q, %q)", father.Data.Gender, mother.Data.Gender)
	}
	if father.Data.FirstName != "Unknown" || father.Data.LastName != "Okafor" {
		t.Errorf("placeholder father named %q %q", father.Data.FirstName, father.Data.LastName)
	}
	if !father.HasSpouse(mother.ID) || !mother.HasSpouse(father.ID) {
		t.Error("placeholder parents are not married to each other")
	}
	if !father.HasChild("solo") || !father.HasChild(sib.ID) {
		t.Errorf("father children = %v", father.Rels.Children)
	}
	checkConsistent(t, s)
}

func TestAddSiblingReusesExistingParents(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	before := s.Len()
	sib, ok := s.AddSibling("erik", "Astrid", "Lindqvist")
	if !ok {
		t.Fatal("AddSibling failed")
	}
	if s.Len() != before+1 {
		t.Fatalf("Len = %d, want exactly one new person", s.Len())
	}
	if sib.Rels.Father != "bengt" || sib.Rels.Mother != "greta" {
		t.Fatalf("sibling parents = (%q, %q)", sib.Rels.Father, sib.Rels.Mother)
	}
	checkConsistent(t, s)

	if _, ok := s.AddSibling("nobody", "X", "Y"); ok {
		t.Error("AddSibling on unknown base must fail")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	snapshot := s.Export()

	// The export is a deep copy; mutating it must not touch the store.
	snapshot[0].Rels.Children = append(snapshot[0].Rels.Children, "intruder")
	snapshot[0].Data.Tags = append(snapshot[0].Data.Tags, "intruder")
	orig, _ := s.Get(snapshot[0].ID)
	if contains(orig.Rels.Children, "intruder") || contains(orig.Data.Tags, "intruder") {
		t.Fatal("export shares memory with the live graph")
	}

	data, err := json.Marshal(s.Export())
	if err != nil {
		t.Fatal(err)
	}
	restored := newTestStore(t, nil)
	n, err := restored.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != s.Len() {
		t.Fatalf("imported %d persons, want %d", n, s.Len())
	}
	if !reflect.DeepEqual(restored.Export(), s.Export()) {
		t.Fatal("round-tripped graph differs")
	}
}

func TestImportRejectsBadPayloadsAtomically(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	before := s.Export()

	cases := []struct {
		name    string
		payload string
	}{
		{"not an array", `{"id":"x"}`},
		{"not json", `persons?`},
		{"entry missing id", `[{"id":"a"},{"data":{"first name":"No"}}]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := s.Import([]byte(c.payload)); err == nil {
				t.Fatal("import accepted a bad payload")
			}
			if !reflect.DeepEqual(s.Export(), before) {
				t.Fatal("failed import modified the graph")
			}
		})
	}
}

func TestStorePathAndClassify(t *testing.T) {
	s := newTestStore(t, threeGenerations())
	path, steps := s.Path("bengt", "liam")
	if want := []string{"bengt", "erik", "liam"}; !reflect.DeepEqual(path, want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if got := s.Classify("greta", "bengt"); got != EdgeSpouse {
		t.Fatalf("classify = %q", got)
	}
	if path, steps := s.Path("bengt", "hermit"); path != nil || steps != nil {
		t.Fatal("disconnected pair must yield nil path")
	}
}

func TestFilter(t *testing.T) {
	persons := threeGenerations()
	persons[2].Data.Bio = "Shipwright in Karlskrona."
	persons[2].Data.Tags = []string{"navy"}
	persons[4].Data.Locations = []string{"Karlskrona, Sweden"}
	s := newTestStore(t, persons)

	ids := func(list []*Person) []string {
		out := make([]string, 0, len(list))
		for _, p := range list {
			out = append(out, p.ID)
		}
		return out
	}

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"by name fragment", "freja", []string{"freja"}},
		{"case insensitive", "LINDQVIST", []string{"bengt", "greta", "erik", "freja", "liam"}},
		{"by bio", "shipwright", []string{"erik"}},
		{"by tag", "navy", []string{"erik"}},
		{"by location", "karlskrona", []string{"erik", "liam"}},
		{"no match", "zanzibar", []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ids(s.Filter(c.query)); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Filter(%q) = %v, want %v", c.query, got, c.want)
			}
		})
	}
}

func TestFilterEmptyQueryReturnsSuggestions(t *testing.T) {
	s := newTestStore(t, nil)
	for i := 0; i < 10; i++ {
		s.Create("Person", string(rune('A'+i)))
	}
	got := s.Filter("   ")
	if len(got) != defaultFilterLimit {
		t.Fatalf("got %d suggestions, want %d", len(got), defaultFilterLimit)
	}
	// First persons in insertion order.
	if got[0].Data.LastName != "A" || got[5].Data.LastName != "F" {
		t.Fatalf("suggestions out of order: %s ... %s", got[0].Data.LastName, got[5].Data.LastName)
	}
}
