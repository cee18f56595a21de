// Package cfg derives structural facts from a function body's control-flow
// graph: predecessor lists, loop membership, and per-block roles. The input
// must satisfy the mir input contract (validated edges); analysis neither
// repairs nor mutates the body.
package cfg

import (
	"mirwalk/internal/mir"
)

// Info holds the derived structure of one function body. It is computed
// once and immutable afterward.
type Info struct {
	Roles []Role
	Preds [][]mir.BlockID
}

// Role returns the role of a block, RoleNormal for out-of-range IDs.
func (in *Info) Role(id mir.BlockID) Role {
	if in == nil || id < 0 || int(id) >= len(in.Roles) {
		return RoleNormal
	}
	return in.Roles[id]
}

// Analyze computes predecessors, loop membership, cleanup targets, and
// roles for every block. Role precedence when several conditions hold:
// Entry > Cleanup > Loop > Return > Panic > Branch > Merge > Normal.
func Analyze(f *mir.Body) *Info {
	n := len(f.Blocks)
	info := &Info{
		Roles: make([]Role, n),
		Preds: make([][]mir.BlockID, n),
	}

	// Invert the edge relation once.
	for i := range f.Blocks {
		for _, succ := range f.Blocks[i].Term.Successors() {
			info.Preds[succ] = append(info.Preds[succ], mir.BlockID(i)) //nolint:gosec // bounded by block count
		}
	}

	// Mark every unwind-edge target.
	cleanup := make(map[mir.BlockID]struct{})
	for i := range f.Blocks {
		if t := f.Blocks[i].Term.UnwindTarget(); t != mir.NoBlockID {
			cleanup[t] = struct{}{}
		}
	}

	for i := range f.Blocks {
		id := mir.BlockID(i) //nolint:gosec // bounded by block count
		info.Roles[i] = classify(f, id, cleanup, info.Preds[i])
	}
	return info
}

func classify(f *mir.Body, id mir.BlockID, cleanup map[mir.BlockID]struct{}, preds []mir.BlockID) Role {
	if id == mir.EntryBlock {
		return RoleEntry
	}
	if _, ok := cleanup[id]; ok {
		return RoleCleanup
	}
	if reachesItself(f, id) {
		return RoleLoop
	}

	term := &f.Blocks[id].Term
	if term.DivergesNormally() {
		return RoleReturn
	}
	if term.DivergesAbnormally() {
		return RolePanic
	}
	if len(term.Edges()) >= 2 {
		return RoleBranch
	}
	if len(preds) >= 2 {
		return RoleMerge
	}
	return RoleNormal
}

// reachesItself reports whether start can reach itself via zero or more
// outgoing edges. The per-search visited set bounds the walk on cyclic
// graphs; unreachable blocks trivially have no self-path.
func reachesItself(f *mir.Body, start mir.BlockID) bool {
	seen := make(map[mir.BlockID]struct{})
	stack := append([]mir.BlockID(nil), f.Blocks[start].Term.Successors()...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == start {
			return true
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		stack = append(stack, f.Blocks[id].Term.Successors()...)
	}
	return false
}
