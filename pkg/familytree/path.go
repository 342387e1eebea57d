package familytree

// ShortestPath runs a breadth-first search over the adjacency index and
// returns the node sequence of a minimum-edge path from start to goal,
// inclusive. It returns [start] when start equals goal and nil when either id
// is empty, unknown, or in a different component. The visited set guards
// against cycles (cousin marriages make them legal in family graphs). Which
// of several equally short paths is returned depends on neighbor order.
func ShortestPath(adj Adjacency, start, goal string) []string {
	if start == "" || goal == "" {
		return nil
	}
	if _, ok := adj[start]; !ok {
		return nil
	}
	if start == goal {
		return []string{start}
	}

	queue := []string{start}
	prev := make(map[string]string)
	seen := map[string]bool{start: true}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if seen[v] {
				continue
			}
			seen[v] = true
			prev[v] = u
			queue = append(queue, v)
			if v == goal {
				path := []string{v}
				for x := v; x != start; {
					x = prev[x]
					path = append(path, x)
				}
				reverse(path)
				return path
			}
		}
	}
	return nil
}

// PathStep is one narrated hop of a relationship chain.
type PathStep struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Edge   Edge   `json:"edge"`
}

// Narrate classifies each consecutive pair of a path, producing the
// human-readable relationship chain ("A — parent-of → B — spouse → C").
func Narrate(path []string, byID map[string]*Person) []PathStep {
	if len(path) < 2 {
		return []PathStep{}
	}
	steps := make([]PathStep, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		steps = append(steps, PathStep{
			FromID: a,
			ToID:   b,
			From:   byID[a].Name(),
			To:     byID[b].Name(),
			Edge:   Classify(a, b, byID),
		})
	}
	return steps
}

// Sentence renders one step the way the compare panel words it.
func (s PathStep) Sentence() string {
	switch s.Edge {
	case EdgeSpouse:
		return s.From + " is married to " + s.To
	case EdgeParentOf:
		return s.From + " is parent of " + s.To
	case EdgeChildOf:
		return s.From + " is child of " + s.To
	default:
		return s.From + " is related to " + s.To
	}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
