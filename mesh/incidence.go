package mesh

// Incident is one (element, corner) occurrence of a node
type Incident struct {
	Element int
	Corner  int
}

// Incidence lists, for every node, the elements that use it in increasing element order.
// Entries for all nodes live in one array, node n owns entries[offset[n]:offset[n+1]].
type Incidence struct {
	offset  []int
	entries []Incident
}

func BuildIncidence(m *Mesh) (inc *Incidence) {
	var (
		nv = m.NumNodes()
	)
	inc = &Incidence{
		offset:  make([]int, nv+1),
		entries: make([]Incident, 3*m.NumElements()),
	}
	for _, el := range m.elements {
		for _, n := range el {
			inc.offset[n+1]++
		}
	}
	for n := 0; n < nv; n++ {
		inc.offset[n+1] += inc.offset[n]
	}
	fill := make([]int, nv)
	copy(fill, inc.offset[:nv])
	for k, el := range m.elements {
		for c, n := range el {
			inc.entries[fill[n]] = Incident{Element: k, Corner: c}
			fill[n]++
		}
	}
	return
}

// Of returns the incident list of node n, callers must not modify it
func (inc *Incidence) Of(n int) []Incident {
	return inc.entries[inc.offset[n]:inc.offset[n+1]]
}

func (inc *Incidence) Count(n int) int { return inc.offset[n+1] - inc.offset[n] }

func (inc *Incidence) NumNodes() int { return len(inc.offset) - 1 }

// Orphans returns the nodes that no element references
func (inc *Incidence) Orphans() (nodes []int) {
	for n := 0; n < inc.NumNodes(); n++ {
		if inc.Count(n) == 0 {
			nodes = append(nodes, n)
		}
	}
	return
}
