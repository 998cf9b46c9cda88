package pathcount

import (
	"context"
)

type memoKey struct {
	node int
	mask uint64
}

// constrainedSearch counts the simple paths to the target that visit every
// required node. Bit i of a satisfaction mask is set once required[i] is on
// the path.
type constrainedSearch struct {
	*search
	reachTarget   Reachability
	reachRequired []Reachability
	bits          []uint64 // per node, the required bits it satisfies
	full          uint64

	// memo is nil when memoization is disabled. Entries are only kept for
	// nodes outside every cycle (memoable), see countFrom.
	memo     map[memoKey]uint64
	memoable []bool
}

// CountPathsWithRequired returns the number of simple paths from source to
// target which visit every node in required at least once.
//
// Duplicate ids in required count once. With an empty required list the
// result equals CountPaths. A required node the source cannot reach yields 0
// without searching.
func (g *Graph) CountPathsWithRequired(ctx context.Context, source, target string, required []string, opts ...Option) (count uint64, err error) {
	if source == "" {
		return 0, EmptyIDError("source")
	}
	if target == "" {
		return 0, EmptyIDError("target")
	}
	req, err := normalizeRequired(required)
	if err != nil {
		return 0, err
	}
	ctx, done := startCount(ctx, "count_paths_with_required", source, target, req)
	var st *stats
	defer func() { done(st, err) }()

	if source == target {
		for _, r := range req {
			if r != source {
				return 0, nil
			}
		}
		return 1, nil
	}

	o := newOptions(opts)
	src, okSrc := g.lookup(source)
	dst, okDst := g.lookup(target)
	if !okSrc || !okDst {
		o.logger.Debug().Str("source", source).Str("target", target).Msg("source or target unknown")
		return 0, nil
	}

	cs := &constrainedSearch{
		search:        newSearch(ctx, g, dst, o),
		reachTarget:   ComputeReachable(g, target),
		reachRequired: make([]Reachability, len(req)),
		bits:          make([]uint64, g.Order()),
	}
	if !cs.reachTarget.has(src) {
		o.logger.Debug().Str("source", source).Str("target", target).Msg("source cannot reach target")
		return 0, nil
	}
	for i, r := range req {
		cs.reachRequired[i] = ComputeReachable(g, r)
		if !cs.reachRequired[i].Contains(source) {
			o.logger.Debug().Str("source", source).Str("required", r).Msg("source cannot reach required node")
			return 0, nil
		}
		cs.full |= 1 << uint(i)
		if id, ok := g.lookup(r); ok {
			cs.bits[id] |= 1 << uint(i)
		}
	}
	if o.memo {
		cs.memo = make(map[memoKey]uint64)
		cyclic := g.cyclicNodes()
		cs.memoable = make([]bool, len(cyclic))
		for i, c := range cyclic {
			cs.memoable[i] = !c
		}
	}
	o.logger.Debug().
		Int("required", len(req)).
		Int("reachable", cs.reachTarget.Len()).
		Bool("memo", o.memo).
		Msg("graph analysis complete, searching paths")

	count = cs.countFrom(src, 0)
	st = &cs.stats
	if cs.canceled != nil {
		return 0, cs.canceled
	}
	o.logger.Debug().
		Uint64("paths", count).
		Uint64("calls", cs.stats.calls).
		Uint64("memo_hits", cs.stats.memoHits).
		Msg("search complete")
	return count, nil
}

// countFrom enters cur with the satisfaction mask of the path leading to it.
// The mask is passed by value, so satisfaction is scoped to the path without
// any explicit undo.
//
// The memo is keyed by (node, mask) and ignores the active path. That is
// exact for a node on no cycle: every node on the active path reaches cur, so
// if cur could reach one of them both would share a cycle. The suffix search
// from such a node therefore never meets the active path, and its count only
// depends on the mask.
func (cs *constrainedSearch) countFrom(cur int, mask uint64) uint64 {
	if !cs.enter() {
		return 0
	}
	mask |= cs.bits[cur]

	if cur == cs.target {
		if mask == cs.full {
			return 1
		}
		return 0
	}

	if !cs.reachTarget.has(cur) {
		return 0
	}
	for i, r := range cs.reachRequired {
		if mask&(1<<uint(i)) == 0 && !r.has(cur) {
			return 0
		}
	}

	useMemo := cs.memo != nil && cs.memoable[cur]
	key := memoKey{node: cur, mask: mask}
	if useMemo {
		if v, ok := cs.memo[key]; ok {
			cs.stats.memoHits++
			return v
		}
	}

	cs.onPath[cur] = true
	var total uint64
	for _, next := range cs.g.succ[cur] {
		if !cs.onPath[next] {
			total += cs.countFrom(next, mask)
		}
	}
	cs.onPath[cur] = false

	if useMemo && cs.canceled == nil {
		cs.memo[key] = total
	}
	return total
}

// normalizeRequired drops duplicate ids, keeping first occurrence order.
func normalizeRequired(required []string) ([]string, error) {
	seen := make(map[string]struct{}, len(required))
	out := make([]string, 0, len(required))
	for _, r := range required {
		if r == "" {
			return nil, EmptyIDError("required")
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) > MaxRequired {
		return nil, TooManyRequiredError(len(out))
	}
	return out, nil
}
