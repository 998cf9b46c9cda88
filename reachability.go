package pathcount

// Reachability is an immutable set of nodes of one graph, typically the
// ancestors of a target (including the target itself).
type Reachability struct {
	g   *Graph
	in  []bool
	len int
}

// ComputeReachable returns the set of nodes from which target can be reached
// via a directed path, target included.
//
// If target is not a node of g, the returned set is empty.
func ComputeReachable(g *Graph, target string) Reachability {
	return g.bfs(target, g.reverse())
}

// ComputeDescendants returns the set of nodes reachable from source via a
// directed path, source included.
//
// If source is not a node of g, the returned set is empty.
func ComputeDescendants(g *Graph, source string) Reachability {
	return g.bfs(source, g.succ)
}

// Contains returns true, if id is a member of the set.
func (r Reachability) Contains(id string) bool {
	if r.g == nil {
		return false
	}
	i, ok := r.g.lookup(id)
	return ok && r.in[i]
}

// Len returns the number of members.
func (r Reachability) Len() int {
	return r.len
}

// Nodes returns the members in the graph's node order.
func (r Reachability) Nodes() []string {
	out := make([]string, 0, r.len)
	for i, in := range r.in {
		if in {
			out = append(out, r.g.names[i])
		}
	}
	return out
}

// Intersect returns the nodes contained in both r and o. Both sets must
// belong to the same graph.
func (r Reachability) Intersect(o Reachability) Reachability {
	res := Reachability{g: r.g, in: make([]bool, len(r.in))}
	for i := range r.in {
		if r.in[i] && i < len(o.in) && o.in[i] {
			res.in[i] = true
			res.len++
		}
	}
	return res
}

func (r Reachability) has(i int) bool {
	return r.in[i]
}

// reverse builds the predecessor lists (for every edge u->v, v->u).
func (g *Graph) reverse() [][]int {
	rev := make([][]int, len(g.succ))
	for u, s := range g.succ {
		for _, v := range s {
			rev[v] = append(rev[v], u)
		}
	}
	return rev
}

func (g *Graph) bfs(start string, adj [][]int) Reachability {
	r := Reachability{g: g, in: make([]bool, len(g.names))}
	s, ok := g.lookup(start)
	if !ok {
		return r
	}
	r.in[s] = true
	r.len = 1
	queue := []int{s}
	for idx := 0; idx < len(queue); idx++ {
		for _, n := range adj[queue[idx]] {
			if !r.in[n] {
				r.in[n] = true
				r.len++
				queue = append(queue, n)
			}
		}
	}
	return r
}
