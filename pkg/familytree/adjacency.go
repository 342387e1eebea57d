package familytree

// Adjacency is an undirected neighbor index over the canonical graph.
// Neighbor lists preserve insertion order (father, mother, children, spouses
// per person, persons in input order), which fixes BFS tie-breaking for a
// given input; only path length is contractual.
type Adjacency map[string][]string

// BuildAdjacency derives the adjacency index. Every person gets an entry,
// even with no relations, so lookups never distinguish "isolated" from
// "absent" by panicking. Directionality of parent edges is not kept here; it
// is recovered by Classify.
func BuildAdjacency(persons []Person) Adjacency {
	adj := make(Adjacency, len(persons))
	for i := range persons {
		if adj[persons[i].ID] == nil {
			adj[persons[i].ID] = []string{}
		}
	}

	add := func(x, y string) {
		if x == "" || y == "" || x == y {
			return
		}
		adj[x] = appendUnique(adj[x], y)
		adj[y] = appendUnique(adj[y], x)
	}

	for i := range persons {
		p := &persons[i]
		add(p.ID, p.Rels.Father)
		add(p.ID, p.Rels.Mother)
		for _, c := range p.Rels.Children {
			add(p.ID, c)
		}
		for _, s := range p.Rels.Spouses {
			add(p.ID, s)
		}
	}
	return adj
}
