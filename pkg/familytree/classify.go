package familytree

// Edge is the semantic relationship between two adjacent persons, read from
// a's point of view.
type Edge string

const (
	// EdgeUnknown means at least one id does not resolve.
	EdgeUnknown Edge = ""
	EdgeSpouse  Edge = "spouse"
	// EdgeParentOf means a is a parent of b.
	EdgeParentOf Edge = "parent-of"
	// EdgeChildOf means a is a child of b.
	EdgeChildOf Edge = "child-of"
	// EdgeRelated is the fallback for an adjacent pair matching none of the
	// direct tests.
	EdgeRelated Edge = "related"
)

// Classify determines the relationship type between a and b. Both slot
// directions are checked so the answer holds even if one side of a
// reciprocal pair is missing.
func Classify(aID, bID string, byID map[string]*Person) Edge {
	a, b := byID[aID], byID[bID]
	if a == nil || b == nil {
		return EdgeUnknown
	}
	switch {
	case a.HasSpouse(bID):
		return EdgeSpouse
	case a.HasChild(bID):
		return EdgeParentOf
	case b.HasChild(aID):
		return EdgeChildOf
	case a.Rels.Father == bID || a.Rels.Mother == bID:
		return EdgeChildOf
	case b.Rels.Father == aID || b.Rels.Mother == aID:
		return EdgeParentOf
	}
	return EdgeRelated
}
