// Package pathcount counts directed simple paths through small device graphs.
//
// A device graph is read from a line oriented description
//
//	you: bbb ccc
//	bbb: ddd eee
//
// where every line names a device and the devices its outputs are wired to.
// Paths may be counted unconstrained (CountPaths) or restricted to those
// visiting every one of a set of required devices (CountPathsWithRequired).
package pathcount

import (
	"bufio"
	"io"
	"strings"
)

// Graph is an immutable directed graph keyed by node identifier.
//
// Node names are interned to dense integer ids when the graph is built. The
// search code works on those ids only.
type Graph struct {
	names []string
	index map[string]int
	succ  [][]int
	decl  []bool
	size  int
}

// Builder assembles a Graph. A Builder must not be used after Build.
type Builder struct {
	g *Graph
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{g: &Graph{index: make(map[string]int)}}
}

// Declare sets the successors of the node with the given id. A later
// declaration of the same id replaces the earlier successor list.
func (b *Builder) Declare(id string, successors ...string) {
	src := b.intern(id)
	b.g.decl[src] = true
	b.g.size -= len(b.g.succ[src])
	out := make([]int, 0, len(successors))
	for _, s := range successors {
		out = append(out, b.intern(s))
	}
	b.g.succ[src] = out
	b.g.size += len(out)
}

// AddEdge appends an edge from src to dst. Duplicate edges are kept.
func (b *Builder) AddEdge(src, dst string) {
	from := b.intern(src)
	to := b.intern(dst)
	b.g.decl[from] = true
	b.g.succ[from] = append(b.g.succ[from], to)
	b.g.size++
}

// AddNode makes sure a node with the given id exists, without any edges.
func (b *Builder) AddNode(id string) {
	b.intern(id)
}

// Build returns the finished graph.
func (b *Builder) Build() *Graph {
	g := b.g
	b.g = nil
	return g
}

func (b *Builder) intern(id string) int {
	if i, ok := b.g.index[id]; ok {
		return i
	}
	i := len(b.g.names)
	b.g.index[id] = i
	b.g.names = append(b.g.names, id)
	b.g.succ = append(b.g.succ, nil)
	b.g.decl = append(b.g.decl, false)
	return i
}

// Parse builds a graph from its textual description. Lines that are blank,
// have no colon or more than one colon, or name an empty device are skipped.
func Parse(text string) *Graph {
	b := NewBuilder()
	for _, line := range strings.Split(text, "\n") {
		parseLine(b, line)
	}
	return b.Build()
}

// ParseReader is like Parse but reads the description from r.
func ParseReader(r io.Reader) (*Graph, error) {
	b := NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		parseLine(b, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func parseLine(b *Builder, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return
	}
	device := strings.TrimSpace(parts[0])
	if device == "" {
		return
	}
	b.Declare(device, strings.Fields(parts[1])...)
}

// Order returns the number of nodes, including nodes only ever referenced as
// a successor.
func (g *Graph) Order() int {
	return len(g.names)
}

// Size returns the number of edges, duplicates included.
func (g *Graph) Size() int {
	return g.size
}

// Nodes returns all node ids in the order they were first seen.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Contains returns true, if id is a node of the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Successors returns the direct successors of id in declaration order.
//
// If id is unknown or a leaf, Successors returns nil.
func (g *Graph) Successors(id string) []string {
	i, ok := g.index[id]
	if !ok || len(g.succ[i]) == 0 {
		return nil
	}
	out := make([]string, len(g.succ[i]))
	for j, s := range g.succ[i] {
		out[j] = g.names[s]
	}
	return out
}

// Leaves returns the ids of all nodes without successors.
func (g *Graph) Leaves() []string {
	var out []string
	for i, s := range g.succ {
		if len(s) == 0 {
			out = append(out, g.names[i])
		}
	}
	return out
}

// Roots returns the ids of all nodes without predecessors.
func (g *Graph) Roots() []string {
	hasParent := make([]bool, len(g.names))
	for _, s := range g.succ {
		for _, t := range s {
			hasParent[t] = true
		}
	}
	var out []string
	for i, p := range hasParent {
		if !p {
			out = append(out, g.names[i])
		}
	}
	return out
}

// Declared returns true, if id was declared with its own line (or received an
// edge via the Builder), as opposed to only appearing as a successor.
func (g *Graph) Declared(id string) bool {
	i, ok := g.index[id]
	return ok && g.decl[i]
}

func (g *Graph) lookup(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}
