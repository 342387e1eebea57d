package familytree

import (
	"reflect"
	"testing"
)

// threeGenerations is Bengt & Greta -> Erik (m. Freja) -> Liam.
func threeGenerations() []Person {
	return Normalize([]RawPerson{
		{ID: "bengt", Name: "Bengt Lindqvist", Gender: "M", Relationships: []RelationshipRecord{
			{PersonA: "bengt", PersonB: "erik", Kind: KindFather},
			{PersonA: "bengt", PersonB: "greta", Kind: KindSpouse},
		}},
		{ID: "greta", Name: "Greta Lindqvist", Gender: "F", Relationships: []RelationshipRecord{
			{PersonA: "greta", PersonB: "erik", Kind: KindMother},
		}},
		{ID: "erik", Name: "Erik Lindqvist", Gender: "M", Relationships: []RelationshipRecord{
			{PersonA: "erik", PersonB: "liam", Kind: KindFather},
			{PersonA: "erik", PersonB: "freja", Kind: KindSpouse},
		}},
		{ID: "freja", Name: "Freja Lindqvist", Gender: "F"},
		{ID: "liam", Name: "Liam Lindqvist", Gender: "M"},
		{ID: "hermit", Name: "Old Hermit"},
	})
}

func TestBuildAdjacencyIsSymmetric(t *testing.T) {
	adj := BuildAdjacency(threeGenerations())
	for node, neighbors := range adj {
		for _, n := range neighbors {
			if !contains(adj[n], node) {
				t.Errorf("edge %s-%s has no reverse entry", node, n)
			}
		}
	}
	if got := adj["hermit"]; got == nil || len(got) != 0 {
		t.Errorf("isolated person entry = %v, want present and empty", got)
	}
}

func TestShortestPath(t *testing.T) {
	adj := BuildAdjacency(threeGenerations())
	cases := []struct {
		name        string
		start, goal string
		want        []string
	}{
		{"two hops", "bengt", "liam", []string{"bengt", "erik", "liam"}},
		{"same person", "erik", "erik", []string{"erik"}},
		{"direct edge", "erik", "freja", []string{"erik", "freja"}},
		{"disconnected", "bengt", "hermit", nil},
		{"unknown start", "nobody", "liam", nil},
		{"unknown goal", "bengt", "nobody", nil},
		{"empty ids", "", "", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ShortestPath(adj, c.start, c.goal)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("ShortestPath(%q, %q) = %v, want %v", c.start, c.goal, got, c.want)
			}
		})
	}
}

func TestShortestPathSurvivesCycles(t *testing.T) {
	// A marries his first cousin's line back together: diamond a-b, a-c,
	// b-d, c-d. BFS must terminate and return a two-edge path.
	adj := Adjacency{
		"a": {"b", "c"},
		"b": {"a", "d"},
		"c": {"a", "d"},
		"d": {"b", "c"},
	}
	got := ShortestPath(adj, "a", "d")
	if len(got) != 3 || got[0] != "a" || got[2] != "d" {
		t.Fatalf("path = %v, want a 3-node path from a to d", got)
	}
}

func TestClassify(t *testing.T) {
	persons := threeGenerations()
	byID := make(map[string]*Person, len(persons))
	for i := range persons {
		byID[persons[i].ID] = &persons[i]
	}
	cases := []struct {
		name string
		a, b string
		want Edge
	}{
		{"spouse", "bengt", "greta", EdgeSpouse},
		{"parent of", "bengt", "erik", EdgeParentOf},
		{"child of", "erik", "bengt", EdgeChildOf},
		{"via mother slot", "erik", "greta", EdgeChildOf},
		{"unknown id", "bengt", "nobody", EdgeUnknown},
		{"no direct edge", "bengt", "liam", EdgeRelated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.a, c.b, byID); got != c.want {
				t.Fatalf("Classify(%s, %s) = %q, want %q", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestClassifyIsAntisymmetricForParentEdges(t *testing.T) {
	persons := threeGenerations()
	byID := make(map[string]*Person, len(persons))
	for i := range persons {
		byID[persons[i].ID] = &persons[i]
	}
	pairs := [][2]string{{"bengt", "erik"}, {"greta", "erik"}, {"erik", "liam"}}
	for _, pr := range pairs {
		fwd, rev := Classify(pr[0], pr[1], byID), Classify(pr[1], pr[0], byID)
		if fwd != EdgeParentOf || rev != EdgeChildOf {
			t.Errorf("pair %v classified (%q, %q)", pr, fwd, rev)
		}
	}
}

func TestNarrate(t *testing.T) {
	persons := threeGenerations()
	byID := make(map[string]*Person, len(persons))
	for i := range persons {
		byID[persons[i].ID] = &persons[i]
	}

	steps := Narrate([]string{"bengt", "erik", "liam"}, byID)
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if steps[0].Edge != EdgeParentOf || steps[1].Edge != EdgeParentOf {
		t.Fatalf("edges = %q, %q", steps[0].Edge, steps[1].Edge)
	}
	if got, want := steps[0].Sentence(), "Bengt Lindqvist is parent of Erik Lindqvist"; got != want {
		t.Fatalf("sentence = %q, want %q", got, want)
	}

	if got := Narrate([]string{"erik"}, byID); len(got) != 0 {
		t.Fatalf("single-node path narrated as %v, want empty", got)
	}
}
