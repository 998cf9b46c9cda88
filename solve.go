package pathcount

import (
	"context"
)

// CountSimplePaths parses text and counts the simple paths from source to
// target.
func CountSimplePaths(ctx context.Context, text, source, target string, opts ...Option) (uint64, error) {
	return Parse(text).CountPaths(ctx, source, target, opts...)
}

// CountConstrainedPaths parses text and counts the simple paths from source to
// target which visit all of required.
func CountConstrainedPaths(ctx context.Context, text, source, target string, required []string, opts ...Option) (uint64, error) {
	return Parse(text).CountPathsWithRequired(ctx, source, target, required, opts...)
}

// Query describes one count: with an empty Required list it is an
// unconstrained count.
type Query struct {
	Source   string
	Target   string
	Required []string
}

// Count runs q against g.
func (g *Graph) Count(ctx context.Context, q Query, opts ...Option) (uint64, error) {
	if len(q.Required) == 0 {
		return g.CountPaths(ctx, q.Source, q.Target, opts...)
	}
	return g.CountPathsWithRequired(ctx, q.Source, q.Target, q.Required, opts...)
}
