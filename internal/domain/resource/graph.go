package resource

// Graph indexes resources of one or more compound documents by (kind, id).
// A Graph is never mutated after Build or Concat returns it.
type Graph struct {
	index map[Key]Resource
}

// Build indexes the primary matches followed by the included resources.
// On a duplicated key the first occurrence wins.
func Build(primary []Match, included []Resource) *Graph {
	g := &Graph{index: make(map[Key]Resource, len(primary)+len(included))}
	for _, m := range primary {
		g.add(m)
	}
	for _, r := range included {
		g.add(r)
	}
	return g
}

func (g *Graph) add(r Resource) {
	if r == nil {
		return
	}
	key := r.Key()
	if key.ID == "" || key.Kind == "" {
		return
	}
	if _, exists := g.index[key]; exists {
		return
	}
	g.index[key] = r
}

// Concat returns the union of g and other. Resources of g take precedence.
func (g *Graph) Concat(other *Graph) *Graph {
	out := &Graph{index: make(map[Key]Resource, g.Len()+other.Len())}
	if g != nil {
		for k, r := range g.index {
			out.index[k] = r
		}
	}
	if other != nil {
		for k, r := range other.index {
			if _, exists := out.index[k]; !exists {
				out.index[k] = r
			}
		}
	}
	return out
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.index)
}

// Lookup returns the resource stored under (kind, id). It never panics,
// including on a nil graph.
func (g *Graph) Lookup(kind Kind, id string) (Resource, bool) {
	if g == nil || id == "" {
		return nil, false
	}
	r, ok := g.index[Key{Kind: kind, ID: id}]
	return r, ok
}

// Find is Lookup narrowed to the expected variant. A stored resource of a
// different Go type is reported as not found.
func Find[T Resource](g *Graph, kind Kind, id string) (T, bool) {
	var zero T
	r, ok := g.Lookup(kind, id)
	if !ok {
		return zero, false
	}
	typed, ok := r.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Each visits every resource of the given kind in unspecified order.
func (g *Graph) Each(kind Kind, fn func(Resource)) {
	if g == nil {
		return
	}
	for k, r := range g.index {
		if k.Kind == kind {
			fn(r)
		}
	}
}

func (g *Graph) Round(id string) (Round, bool) { return Find[Round](g, KindRound, id) }
func (g *Graph) Group(id string) (Group, bool) { return Find[Group](g, KindGroup, id) }
func (g *Graph) Tournament(id string) (Tournament, bool) {
	return Find[Tournament](g, KindTournament, id)
}
func (g *Graph) Category(id string) (Category, bool) { return Find[Category](g, KindCategory, id) }
func (g *Graph) Team(id string) (Team, bool)         { return Find[Team](g, KindTeam, id) }
func (g *Graph) Facility(id string) (Facility, bool) { return Find[Facility](g, KindFacility, id) }
func (g *Graph) Result(id string) (Result, bool)     { return Find[Result](g, KindResult, id) }
