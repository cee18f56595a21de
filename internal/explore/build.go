package explore

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mirwalk/internal/borrow"
	"mirwalk/internal/cfg"
	"mirwalk/internal/index"
	"mirwalk/internal/lifetime"
	"mirwalk/internal/mir"
	"mirwalk/internal/render"
)

// Build renders the whole module. Functions are independent of each other,
// so they are analyzed concurrently; output order follows module order.
func Build(ctx context.Context, m *mir.Module, rc *render.Context) (*Module, error) {
	out := &Module{
		Name:      m.Name,
		Functions: make([]*Function, len(m.Funcs)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range m.Funcs {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out.Functions[i] = BuildFunction(f, rc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// BuildFunction renders one function body: structural roles, borrows,
// lexical scopes, annotated statements, and typed edges.
func BuildFunction(f *mir.Body, rc *render.Context) *Function {
	info := cfg.Analyze(f)
	borrows := borrow.Analyze(f, rc.Spans)
	scopes := lifetime.Analyze(f, rc.Spans)

	fn := &Function{
		Name:      f.Name,
		ShortName: index.ShortFnName(f.Name),
	}
	if f.Span != mir.NoSpanID {
		fn.Span = rc.Spans.Short(f.Span)
	}

	for id := range f.Locals {
		local := mir.LocalID(id) //nolint:gosec // bounded by local count
		fn.Locals = append(fn.Locals, Local{
			Name:    render.LocalName(f, local),
			Type:    rc.Types.Name(f.Locals[id].Type),
			Scope:   scopes.Label(local),
			Mutable: f.Locals[id].Mutable,
		})
	}

	for i := range borrows.Borrows {
		b := &borrows.Borrows[i]
		fn.Borrows = append(fn.Borrows, Borrow{
			Label:    b.Label(),
			Kind:     borrowKindName(b.Kind),
			Borrower: render.LocalName(f, b.Borrower),
			Borrowed: render.LocalName(f, b.Borrowed),
			Range:    borrows.RangeLabel(f, i, rc.Spans),
		})
	}

	for _, e := range rc.AllocsUsed(f) {
		fn.Allocs = append(fn.Allocs, e.ShortDescription())
	}

	recursive := false
	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		id := mir.BlockID(bi) //nolint:gosec // bounded by block count
		role := info.Role(id)

		blk := Block{
			ID:      bi,
			Role:    role.String(),
			Summary: blockSummary(role, bb),
		}
		for _, pred := range info.Preds[bi] {
			blk.Preds = append(blk.Preds, int(pred))
		}
		for si := range bb.Stmts {
			st := &bb.Stmts[si]
			blk.Stmts = append(blk.Stmts, Stmt{
				Text:        rc.Stmt(f, st),
				Note:        rc.AnnotateStmt(f, st),
				LiveBorrows: borrows.LiveAt(mir.Location{Block: id, Stmt: si}),
			})
		}
		blk.Term = Term{
			Text: rc.Term(f, &bb.Term),
			Note: rc.AnnotateTerm(f, &bb.Term),
		}
		for _, e := range bb.Term.Edges() {
			blk.Edges = append(blk.Edges, Edge{
				To:    int(e.Target),
				Kind:  e.Kind.String(),
				Label: e.Label,
			})
		}
		if rc.IsRecursiveCall(f, &bb.Term) {
			recursive = true
		}
		fn.Blocks = append(fn.Blocks, blk)
	}

	fn.Properties = properties(f, info, recursive)
	return fn
}

func properties(f *mir.Body, info *cfg.Info, recursive bool) Properties {
	p := Properties{Blocks: len(f.Blocks), Recursive: recursive}
	for i := range f.Blocks {
		switch info.Role(mir.BlockID(i)) { //nolint:gosec // bounded by block count
		case cfg.RoleLoop:
			p.Loops++
		case cfg.RoleBranch:
			p.Branches++
		case cfg.RoleCleanup:
			p.HasCleanup = true
		case cfg.RolePanic:
			p.HasPanic = true
		}
	}
	return p
}

func blockSummary(role cfg.Role, bb *mir.Block) string {
	title := role.Title()
	if title == "" {
		return ""
	}
	return fmt.Sprintf("%s, %d statement(s)", title, len(bb.Stmts))
}

func borrowKindName(k mir.BorrowKind) string {
	switch k {
	case mir.BorrowMut:
		return "mutable"
	case mir.BorrowShallow:
		return "shallow"
	default:
		return "shared"
	}
}
