package pathcount

import (
	"context"
)

// search holds the state shared by both counters: the active path and the
// bookkeeping for progress, cancellation and stats.
type search struct {
	g      *Graph
	target int
	onPath []bool

	ctx      context.Context
	opts     options
	stats    stats
	canceled error
}

func newSearch(ctx context.Context, g *Graph, target int, opts options) *search {
	return &search{
		g:      g,
		target: target,
		onPath: make([]bool, g.Order()),
		ctx:    ctx,
		opts:   opts,
	}
}

// enter is called once per search call. It returns false once the search has
// been canceled; callers then unwind returning 0.
func (s *search) enter() bool {
	if s.canceled != nil {
		return false
	}
	s.stats.calls++
	if s.stats.calls%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.canceled = CanceledError(err)
			return false
		}
	}
	if s.opts.progress != nil && s.stats.calls%s.opts.progressInterval == 0 {
		s.opts.progress(s.stats.calls)
	}
	return true
}

// CountPaths returns the number of simple paths (no node repeated) from
// source to target.
//
// If source equals target, CountPaths returns 1. Unknown ids are not an error;
// they simply have no paths.
func (g *Graph) CountPaths(ctx context.Context, source, target string, opts ...Option) (count uint64, err error) {
	if source == "" {
		return 0, EmptyIDError("source")
	}
	if target == "" {
		return 0, EmptyIDError("target")
	}
	ctx, done := startCount(ctx, "count_paths", source, target, nil)
	var st *stats
	defer func() { done(st, err) }()

	if source == target {
		return 1, nil
	}
	src, okSrc := g.lookup(source)
	dst, okDst := g.lookup(target)
	if !okSrc || !okDst {
		return 0, nil
	}

	o := newOptions(opts)
	reach := ComputeReachable(g, target)
	o.logger.Debug().Str("target", target).Int("reachable", reach.Len()).Msg("reachability computed")

	s := newSearch(ctx, g, dst, o)
	count = s.countFrom(src, reach)
	st = &s.stats
	if s.canceled != nil {
		return 0, s.canceled
	}
	o.logger.Debug().Uint64("paths", count).Uint64("calls", s.stats.calls).Msg("search complete")
	return count, nil
}

// countFrom counts the simple paths from cur to the target, only descending
// into successors that are off the active path and can still reach the
// target.
func (s *search) countFrom(cur int, reach Reachability) uint64 {
	if !s.enter() {
		return 0
	}
	if cur == s.target {
		return 1
	}
	s.onPath[cur] = true
	var total uint64
	for _, next := range s.g.succ[cur] {
		if !s.onPath[next] && reach.has(next) {
			total += s.countFrom(next, reach)
		}
	}
	s.onPath[cur] = false
	return total
}
