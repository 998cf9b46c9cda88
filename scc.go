package pathcount

// tarjanState is the bookkeeping of Tarjan's strongly connected components
// algorithm over the integer ids of a graph.
type tarjanState struct {
	g       *Graph
	index   int
	indices []int // 0 means unvisited, otherwise index+1
	lowlink []int
	onStack []bool
	stack   []int
	cyclic  []bool
}

// cyclicNodes marks every node lying on a directed cycle, i.e. every node
// whose strongly connected component has more than one member. Self loops do
// not count: a simple path can never use them.
func (g *Graph) cyclicNodes() []bool {
	n := g.Order()
	st := &tarjanState{
		g:       g,
		indices: make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
		cyclic:  make([]bool, n),
	}
	for v := 0; v < n; v++ {
		if st.indices[v] == 0 {
			st.strongConnect(v)
		}
	}
	return st.cyclic
}

func (st *tarjanState) strongConnect(v int) {
	st.index++
	st.indices[v] = st.index
	st.lowlink[v] = st.index
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, w := range st.g.succ[v] {
		if st.indices[w] == 0 {
			st.strongConnect(w)
			if st.lowlink[w] < st.lowlink[v] {
				st.lowlink[v] = st.lowlink[w]
			}
		} else if st.onStack[w] && st.indices[w] < st.lowlink[v] {
			st.lowlink[v] = st.indices[w]
		}
	}

	if st.lowlink[v] != st.indices[v] {
		return
	}
	// v is the root of a component; pop it off the stack.
	var members []int
	for {
		w := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		st.onStack[w] = false
		members = append(members, w)
		if w == v {
			break
		}
	}
	if len(members) > 1 {
		for _, w := range members {
			st.cyclic[w] = true
		}
	}
}
