package familytree

import (
	"encoding/json"
	"fmt"
)

// ParentSlot names a single-valued parent slot explicitly, so callers that
// know which slot they mean never depend on gender inference.
type ParentSlot string

const (
	SlotFather ParentSlot = "father"
	SlotMother ParentSlot = "mother"
)

// Store owns the canonical graph between reloads. All mutations repair the
// reciprocal side of every edge they touch, so the five graph invariants
// hold after each operation without a separate validation pass. Operations
// on unknown ids are no-ops, never errors: the engine must stay usable on
// slightly inconsistent source data.
//
// The store itself is not safe for concurrent use; the serving layer owns
// serialization of access.
type Store struct {
	persons []*Person
	byID    map[string]*Person
	alloc   IDAllocator
}

// NewStore returns an empty store. A nil allocator falls back to nanoid ids.
func NewStore(alloc IDAllocator) *Store {
	if alloc == nil {
		alloc = NanoidAllocator{}
	}
	return &Store{
		persons: []*Person{},
		byID:    map[string]*Person{},
		alloc:   alloc,
	}
}

// Replace swaps in a freshly normalized graph wholesale. The new index is
// built off to one side first, so a caller observing the store mid-call sees
// either the old graph or the new one, never a half-written mix.
func (s *Store) Replace(persons []Person) {
	list := make([]*Person, 0, len(persons))
	index := make(map[string]*Person, len(persons))
	for i := range persons {
		p := persons[i]
		ensureShape(&p)
		list = append(list, &p)
		index[p.ID] = &p
	}
	s.persons = list
	s.byID = index
}

// Len returns the number of persons in the graph.
func (s *Store) Len() int { return len(s.persons) }

// Get resolves an id. The returned pointer is live store state.
func (s *Store) Get(id string) (*Person, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// ByID exposes the live id index for the package-level query functions.
func (s *Store) ByID() map[string]*Person { return s.byID }

// Persons lists the graph in insertion order.
func (s *Store) Persons() []*Person { return s.persons }

// Adjacency rebuilds the undirected neighbor index from current state.
func (s *Store) Adjacency() Adjacency {
	snapshot := make([]Person, 0, len(s.persons))
	for _, p := range s.persons {
		snapshot = append(snapshot, *p)
	}
	return BuildAdjacency(snapshot)
}

// Classify answers the edge type between two persons in current state.
func (s *Store) Classify(aID, bID string) Edge {
	return Classify(aID, bID, s.byID)
}

// Path returns the shortest relationship path plus its narrated chain.
func (s *Store) Path(aID, bID string) ([]string, []PathStep) {
	path := ShortestPath(s.Adjacency(), aID, bID)
	if path == nil {
		return nil, nil
	}
	return path, Narrate(path, s.byID)
}

// Create adds a fresh, unlinked person and returns it. The allocated id is
// re-drawn until it collides with nothing already in the graph.
func (s *Store) Create(first, last string) *Person {
	p := newPerson(s.newID(first, last), first, last, "")
	s.persons = append(s.persons, p)
	s.byID[p.ID] = p
	return p
}

// Update is the batch shape of the person editor: all attributes plus the
// full relation slots in one submission.
type Update struct {
	Data     PersonData
	Father   string
	Mother   string
	Spouses  []string
	Children []string
}

// Update applies an editor submission to person id and repairs every
// reciprocal edge the change touches: new parents gain the person as a
// child, dropped parents lose it, listed children get their parent slot set
// (chosen by this person's gender — the UI convenience path; an explicit
// slot is available via SetParent), and spouse sets stay symmetric. Unknown
// ids inside the update are ignored. Returns false when id is not in the
// graph.
func (s *Store) Update(id string, upd Update) bool {
	p, ok := s.byID[id]
	if !ok {
		return false
	}
	prev := *p
	prevSpouses := append([]string(nil), p.Rels.Spouses...)

	p.Data = upd.Data
	ensureShape(p)

	p.Rels.Father = upd.Father
	p.Rels.Mother = upd.Mother
	if p.Rels.Father == id {
		p.Rels.Father = ""
	}
	if p.Rels.Mother == id {
		p.Rels.Mother = ""
	}
	p.Rels.Spouses = dedupeIDs(upd.Spouses, id)
	p.Rels.Children = dedupeIDs(upd.Children, id)

	s.repairParentChild(p, prev)

	// Spouse symmetry: add the reciprocal link on every current spouse,
	// drop it from spouses removed by this edit.
	for _, sid := range p.Rels.Spouses {
		if sp, ok := s.byID[sid]; ok {
			sp.Rels.Spouses = appendUnique(sp.Rels.Spouses, id)
		}
	}
	for _, sid := range prevSpouses {
		if contains(p.Rels.Spouses, sid) {
			continue
		}
		if sp, ok := s.byID[sid]; ok {
			sp.Rels.Spouses = remove(sp.Rels.Spouses, id)
		}
	}
	return true
}

func (s *Store) repairParentChild(p *Person, prev Person) {
	if p.Rels.Father != "" {
		s.addChildToParent(p.Rels.Father, p.ID)
	}
	if p.Rels.Mother != "" {
		s.addChildToParent(p.Rels.Mother, p.ID)
	}
	for _, cid := range p.Rels.Children {
		s.setParentByGender(cid, p)
	}

	if old := prev.Rels.Father; old != "" && old != p.Rels.Father {
		if op, ok := s.byID[old]; ok {
			op.Rels.Children = remove(op.Rels.Children, p.ID)
		}
	}
	if old := prev.Rels.Mother; old != "" && old != p.Rels.Mother {
		if op, ok := s.byID[old]; ok {
			op.Rels.Children = remove(op.Rels.Children, p.ID)
		}
	}
}

// setParentByGender fills the child's parent slot chosen by the parent's
// gender code. A parent with neither "M" nor "F" leaves the child untouched;
// slot-explicit callers use SetParent instead.
func (s *Store) setParentByGender(childID string, parent *Person) {
	child, ok := s.byID[childID]
	if !ok {
		return
	}
	switch parent.Data.Gender {
	case "M":
		child.Rels.Father = parent.ID
	case "F":
		child.Rels.Mother = parent.ID
	}
}

// SetParent links parent into the named slot of child and mirrors the edge
// on the parent's children set. A previous occupant of the slot loses the
// child. No-op when either id is unknown or the ids are equal.
func (s *Store) SetParent(childID, parentID string, slot ParentSlot) bool {
	child, okC := s.byID[childID]
	_, okP := s.byID[parentID]
	if !okC || !okP || childID == parentID {
		return false
	}
	var old string
	switch slot {
	case SlotFather:
		old = child.Rels.Father
		child.Rels.Father = parentID
	case SlotMother:
		old = child.Rels.Mother
		child.Rels.Mother = parentID
	default:
		return false
	}
	if old != "" && old != parentID {
		if op, ok := s.byID[old]; ok {
			op.Rels.Children = remove(op.Rels.Children, childID)
		}
	}
	s.addChildToParent(parentID, childID)
	return true
}

// Delete removes person id and sweeps every remaining person for references
// to it in one pass, so no dangling father/mother/spouse/child link
// survives. Returns false when id is not in the graph.
func (s *Store) Delete(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	for _, p := range s.persons {
		if p.ID == id {
			continue
		}
		if p.Rels.Father == id {
			p.Rels.Father = ""
		}
		if p.Rels.Mother == id {
			p.Rels.Mother = ""
		}
		p.Rels.Spouses = remove(p.Rels.Spouses, id)
		p.Rels.Children = remove(p.Rels.Children, id)
	}

	kept := make([]*Person, 0, len(s.persons)-1)
	for _, p := range s.persons {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.persons = kept
	delete(s.byID, id)
	return true
}

// AddSibling creates a sibling of base. Missing parents are synthesized as
// "Unknown" placeholder persons carrying base's last name, married to each
// other; both base and the new sibling end up as children of whichever
// parents now exist. Returns the sibling, or false when base is unknown.
func (s *Store) AddSibling(baseID, first, last string) (*Person, bool) {
	base, ok := s.byID[baseID]
	if !ok {
		return nil, false
	}
	if last == "" {
		last = base.Data.LastName
	}

	fatherID, motherID := s.ensureParents(base)

	sib := newPerson(s.newID(first, last), first, last, "")
	sib.Rels.Father = fatherID
	sib.Rels.Mother = motherID
	s.persons = append(s.persons, sib)
	s.byID[sib.ID] = sib

	s.addChildToParent(fatherID, sib.ID)
	s.addChildToParent(motherID, sib.ID)
	s.addChildToParent(fatherID, base.ID)
	s.addChildToParent(motherID, base.ID)
	return sib, true
}

// ensureParents returns base's parent ids, fabricating placeholder persons
// for the empty slots and marrying the two parents to each other.
func (s *Store) ensureParents(base *Person) (fatherID, motherID string) {
	fatherID = base.Rels.Father
	motherID = base.Rels.Mother
	last := base.Data.LastName

	if fatherID == "" || s.byID[fatherID] == nil {
		father := newPerson(s.newID("Unknown", "Father"), "Unknown", last, "M")
		father.Rels.Children = []string{base.ID}
		s.persons = append(s.persons, father)
		s.byID[father.ID] = father
		fatherID = father.ID
		base.Rels.Father = fatherID
	}
	if motherID == "" || s.byID[motherID] == nil {
		mother := newPerson(s.newID("Unknown", "Mother"), "Unknown", last, "F")
		mother.Rels.Children = []string{base.ID}
		s.persons = append(s.persons, mother)
		s.byID[mother.ID] = mother
		motherID = mother.ID
		base.Rels.Mother = motherID
	}

	father, mother := s.byID[fatherID], s.byID[motherID]
	if father != nil && mother != nil {
		father.Rels.Spouses = appendUnique(father.Rels.Spouses, motherID)
		mother.Rels.Spouses = appendUnique(mother.Rels.Spouses, fatherID)
	}
	return fatherID, motherID
}

// Export returns a deep-copied snapshot in the canonical JSON shape.
func (s *Store) Export() []Person {
	out := make([]Person, 0, len(s.persons))
	for _, p := range s.persons {
		out = append(out, clonePerson(p))
	}
	return out
}

// Import validates a snapshot and replaces the graph wholesale. The payload
// must be a JSON array and every entry must carry an id; any failure leaves
// the current graph untouched. Returns the number of imported persons.
func (s *Store) Import(data []byte) (int, error) {
	var parsed []Person
	if err := json.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("snapshot must be a JSON array of persons: %w", err)
	}
	for i := range parsed {
		if parsed[i].ID == "" {
			return 0, fmt.Errorf("snapshot entry %d is missing an id", i)
		}
	}
	s.Replace(parsed)
	return len(parsed), nil
}

func (s *Store) addChildToParent(parentID, childID string) {
	if parentID == "" || parentID == childID {
		return
	}
	if parent, ok := s.byID[parentID]; ok {
		parent.Rels.Children = appendUnique(parent.Rels.Children, childID)
	}
}

func (s *Store) newID(first, last string) string {
	for {
		id := s.alloc.NewID(first, last)
		if _, taken := s.byID[id]; !taken && id != "" {
			return id
		}
	}
}

func newPerson(id, first, last, gender string) *Person {
	return &Person{
		ID: id,
		Rels: Relations{
			Spouses:  []string{},
			Children: []string{},
		},
		Data: PersonData{
			FirstName: first,
			LastName:  last,
			Gender:    gender,
			Tags:      []string{},
			Locations: []string{},
			Media:     Media{Photos: []string{}, Videos: []string{}, Files: []MediaFile{}},
			Social:    map[string]string{},
		},
	}
}

// ensureShape backfills nil collections so the JSON shape stays stable and
// mutation code never branches on nil.
func ensureShape(p *Person) {
	if p.Rels.Spouses == nil {
		p.Rels.Spouses = []string{}
	}
	if p.Rels.Children == nil {
		p.Rels.Children = []string{}
	}
	if p.Data.Tags == nil {
		p.Data.Tags = []string{}
	}
	if p.Data.Locations == nil {
		p.Data.Locations = []string{}
	}
	if p.Data.Media.Photos == nil {
		p.Data.Media.Photos = []string{}
	}
	if p.Data.Media.Videos == nil {
		p.Data.Media.Videos = []string{}
	}
	if p.Data.Media.Files == nil {
		p.Data.Media.Files = []MediaFile{}
	}
	if p.Data.Social == nil {
		p.Data.Social = map[string]string{}
	}
}

func dedupeIDs(list []string, self string) []string {
	out := []string{}
	for _, v := range list {
		if v == "" || v == self {
			continue
		}
		out = appendUnique(out, v)
	}
	return out
}

func clonePerson(p *Person) Person {
	c := *p
	c.Rels.Spouses = append([]string{}, p.Rels.Spouses...)
	c.Rels.Children = append([]string{}, p.Rels.Children...)
	c.Data.Tags = append([]string{}, p.Data.Tags...)
	c.Data.Locations = append([]string{}, p.Data.Locations...)
	c.Data.Media.Photos = append([]string{}, p.Data.Media.Photos...)
	c.Data.Media.Videos = append([]string{}, p.Data.Media.Videos...)
	c.Data.Media.Files = append([]MediaFile{}, p.Data.Media.Files...)
	c.Data.Social = make(map[string]string, len(p.Data.Social))
	for k, v := range p.Data.Social {
		c.Data.Social[k] = v
	}
	return c
}
