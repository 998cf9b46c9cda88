package pathcount

import (
	"github.com/emicklei/dot"
)

// Highlight selects what a dot rendering emphasizes. The zero value
// highlights nothing.
type Highlight struct {
	Source   string
	Target   string
	Required []string
}

func (h Highlight) empty() bool {
	return h.Source == "" && h.Target == "" && len(h.Required) == 0
}

// DotGraph adds the nodes and edges of the graph to dg and returns the
// mapping between node ids and dot nodes.
//
// If h names a source and a target, edges between nodes lying on some path
// from source to target are drawn blue and all other nodes gray. The source
// and target are drawn as double circles, required nodes as boxes.
func (g *Graph) DotGraph(dg *dot.Graph, h Highlight) map[string]dot.Node {

	// mapping between node ids and dot nodes
	nodeMapping := make(map[string]dot.Node, g.Order())
	for _, name := range g.names {
		nodeMapping[name] = dg.Node(name).Label(name)
	}

	var relevant Reachability
	hasRelevant := h.Source != "" && h.Target != ""
	if hasRelevant {
		relevant = ComputeDescendants(g, h.Source).Intersect(ComputeReachable(g, h.Target))
	}

	for u, succ := range g.succ {
		for _, v := range succ {
			e := dg.Edge(nodeMapping[g.names[u]], nodeMapping[g.names[v]])
			if hasRelevant && relevant.has(u) && relevant.has(v) {
				e.Attr("color", "blue")
			}
		}
	}

	if h.empty() {
		return nodeMapping
	}
	if hasRelevant {
		for i, name := range g.names {
			if !relevant.has(i) {
				nodeMapping[name].Attr("color", "gray")
			}
		}
	}
	for _, name := range []string{h.Source, h.Target} {
		if n, ok := nodeMapping[name]; ok {
			n.Attr("shape", "doublecircle")
		}
	}
	for _, name := range h.Required {
		if n, ok := nodeMapping[name]; ok {
			n.Attr("shape", "box")
		}
	}
	return nodeMapping
}

// Dot returns a (graphviz) dot representation of the graph with the given
// highlighting.
func (g *Graph) Dot(h Highlight) string {
	dg := dot.NewGraph(dot.Directed)
	g.DotGraph(dg, h)
	return dg.String()
}

// String returns a (graphviz) dot representation of the graph.
func (g *Graph) String() string {
	return g.Dot(Highlight{})
}
