package pathcount_test

import (
	"context"
	"testing"

	"github.com/heimdalr/pathcount"
	"github.com/heimdalr/pathcount/timing"
)

func TestCountSimplePaths(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		text   string
		source string
		target string
		want   uint64
	}{
		{
			name:   "two branches",
			text:   "you: a b\na: out\nb: out\n",
			source: "you",
			target: "out",
			want:   2,
		},
		{
			name:   "disconnected",
			text:   "you: a\nx: y\n",
			source: "you",
			target: "out",
			want:   0,
		},
		{
			name:   "documented example",
			text:   exampleGraph,
			source: "you",
			target: "out",
			want:   5,
		},
		{
			name:   "source equals target",
			text:   exampleGraph,
			source: "ggg",
			target: "ggg",
			want:   1,
		},
		{
			name:   "source equals unknown target",
			text:   exampleGraph,
			source: "nope",
			target: "nope",
			want:   1,
		},
		{
			name:   "unknown source",
			text:   exampleGraph,
			source: "nope",
			target: "out",
			want:   0,
		},
		{
			name:   "target only upstream",
			text:   exampleGraph,
			source: "you",
			target: "aaa",
			want:   0,
		},
		{
			name:   "duplicate edges count twice",
			text:   "you: a a\na: out\n",
			source: "you",
			target: "out",
			want:   2,
		},
		{
			name:   "cycles terminate",
			text:   "you: a\na: b out\nb: a you out\n",
			source: "you",
			target: "out",
			want:   2,
		},
		{
			name:   "undeclared successor is a leaf",
			text:   "you: ghost out\n",
			source: "you",
			target: "out",
			want:   1,
		},
		{
			name:   "second example",
			text:   exampleGraph2,
			source: "svr",
			target: "out",
			want:   8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pathcount.CountSimplePaths(ctx, tt.text, tt.source, tt.target)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountPaths_EmptyID(t *testing.T) {
	g := pathcount.Parse(exampleGraph)
	ctx := context.Background()
	if _, err := g.CountPaths(ctx, "", "out"); !pathcount.IsEmptyIDError(err) {
		t.Errorf("got %v, want empty id error", err)
	}
	if _, err := g.CountPaths(ctx, "you", ""); !pathcount.IsEmptyIDError(err) {
		t.Errorf("got %v, want empty id error", err)
	}
}

func TestCountPaths_Deterministic(t *testing.T) {
	g := pathcount.Parse(exampleGraph)
	ctx := context.Background()
	first, err := g.CountPaths(ctx, "aaa", "out")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		got, err := g.CountPaths(ctx, "aaa", "out")
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Errorf("run %d: got %d, want %d", i, got, first)
		}
	}
	if first != 10 {
		t.Errorf("got %d, want %d", first, 10)
	}
}

// largeGraph has far too many paths to count before the first cancellation
// check.
func largeGraph() *pathcount.Graph {
	return pathcount.Parse(timing.Generate(timing.Layout{Layers: 16, Width: 6, Fanout: 3, Seed: 7}))
}

func TestCountPaths_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := largeGraph().CountPaths(ctx, timing.Source, timing.Target)
	if !pathcount.IsCanceledError(err) {
		t.Fatalf("got %v, want canceled error", err)
	}
}

func TestCountPaths_Progress(t *testing.T) {
	g := pathcount.Parse(timing.Generate(timing.Layout{Layers: 6, Width: 4, Fanout: 2, Seed: 3}))
	var reports []uint64
	_, err := g.CountPaths(context.Background(), timing.Source, timing.Target,
		pathcount.WithProgressInterval(5),
		pathcount.WithProgress(func(calls uint64) {
			reports = append(reports, calls)
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) == 0 {
		t.Fatal("got no progress reports")
	}
	for i, calls := range reports {
		if calls != uint64(i+1)*5 {
			t.Errorf("report %d: got %d, want %d", i, calls, (i+1)*5)
		}
	}
}
