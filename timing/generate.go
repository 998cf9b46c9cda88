// Package timing generates large layered device graphs and times path counts
// over them.
package timing

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/heimdalr/pathcount"
)

// Layout describes a generated graph. Devices are arranged in Layers layers
// of Width devices each; "svr" feeds the first layer and the last layer
// feeds "out". Every device gets Fanout distinct outputs in the next layer.
//
// Required names the devices that replace the first device of evenly spaced
// layers, so a constrained query has something to look for. BackEdges adds
// that many edges pointing to an earlier layer, which creates cycles.
type Layout struct {
	Layers    int
	Width     int
	Fanout    int
	Required  []string
	BackEdges int
	Seed      int64
}

// Source is the name of the generated entry device.
const Source = "svr"

// Target is the name of the generated exit device.
const Target = "out"

// Generate renders the layout in the textual device graph format.
func Generate(l Layout) string {
	r := rand.New(rand.NewSource(l.Seed))
	fanout := l.Fanout
	if fanout > l.Width {
		fanout = l.Width
	}

	names := make([][]string, l.Layers)
	for layer := range names {
		names[layer] = make([]string, l.Width)
		for i := range names[layer] {
			names[layer][i] = fmt.Sprintf("l%dn%d", layer, i)
		}
	}
	for i, req := range l.Required {
		layer := (i + 1) * l.Layers / (len(l.Required) + 1)
		names[layer][i%l.Width] = req
	}

	outputs := make(map[string][]string)
	var order []string
	add := func(src string, dst ...string) {
		if _, ok := outputs[src]; !ok {
			order = append(order, src)
		}
		outputs[src] = append(outputs[src], dst...)
	}

	add(Source, names[0]...)
	for layer := 0; layer < l.Layers-1; layer++ {
		for _, src := range names[layer] {
			for _, i := range r.Perm(l.Width)[:fanout] {
				add(src, names[layer+1][i])
			}
		}
	}
	for _, src := range names[l.Layers-1] {
		add(src, Target)
	}
	for i := 0; i < l.BackEdges && l.Layers > 1; i++ {
		from := 1 + r.Intn(l.Layers-1)
		to := r.Intn(from)
		add(names[from][r.Intn(l.Width)], names[to][r.Intn(l.Width)])
	}

	var sb strings.Builder
	for _, src := range order {
		fmt.Fprintf(&sb, "%s: %s\n", src, strings.Join(outputs[src], " "))
	}
	return sb.String()
}

// Result is the outcome of one timed count.
type Result struct {
	Count    uint64
	Duration time.Duration
}

// Measure runs q against g and reports the count and the time it took.
func Measure(ctx context.Context, g *pathcount.Graph, q pathcount.Query, opts ...pathcount.Option) (Result, error) {
	start := time.Now()
	count, err := g.Count(ctx, q, opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{Count: count, Duration: time.Since(start)}, nil
}
