package index

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mirwalk/internal/mir"
)

// MaxStringPreview is the character budget when previewing string content.
const MaxStringPreview = 20

// MaxNumericBytes is the largest byte image shown as a single number.
const MaxNumericBytes = 8

// LittleEndianU64 decodes up to 8 bytes as a little-endian unsigned value.
func LittleEndianU64(b []byte) uint64 {
	var v uint64
	for i, by := range b {
		v |= uint64(by) << (8 * i)
	}
	return v
}

// AllocLabel formats an allocation ID as its opaque fallback label.
func AllocLabel(id mir.AllocID) string {
	return fmt.Sprintf("alloc%d", id)
}

// AllocEntry is a processed allocation with a rendered description and the
// allocations it references via provenance.
type AllocEntry struct {
	ID          mir.AllocID
	Kind        mir.AllocMetaKind
	Description string
	Refs        []mir.AllocID
}

// ShortDescription renders the entry as "allocN: description".
func (e *AllocEntry) ShortDescription() string {
	return AllocLabel(e.ID) + ": " + e.Description
}

// AllocIndex resolves allocation IDs, including transitive provenance.
type AllocIndex struct {
	byID map[mir.AllocID]*AllocEntry
}

// NewAllocIndex builds the index in one pass over the allocation table.
func NewAllocIndex(allocs []mir.AllocMeta, types *TypeIndex) *AllocIndex {
	x := &AllocIndex{byID: make(map[mir.AllocID]*AllocEntry, len(allocs))}
	for i := range allocs {
		e := newAllocEntry(&allocs[i], types)
		x.byID[e.ID] = e
	}
	return x
}

func newAllocEntry(meta *mir.AllocMeta, types *TypeIndex) *AllocEntry {
	e := &AllocEntry{ID: meta.ID, Kind: meta.Kind, Refs: meta.Refs}
	switch meta.Kind {
	case mir.AllocStatic:
		e.Description = "static " + meta.Name
	case mir.AllocVTable:
		e.Description = "vtable<" + meta.Name + ">"
	case mir.AllocFunction:
		e.Description = "fn " + meta.Name
	default:
		e.Description = memoryDescription(meta, types)
	}
	return e
}

func memoryDescription(meta *mir.AllocMeta, types *TypeIndex) string {
	tyName := types.Name(meta.Type)
	isStr := strings.Contains(tyName, "str")

	if isStr && allASCII(meta.Bytes) {
		preview := meta.Bytes
		truncated := false
		if len(preview) > MaxStringPreview {
			preview = preview[:MaxStringPreview]
			truncated = true
		}
		quoted := strconv.Quote(string(preview))
		if truncated {
			return fmt.Sprintf("%s... (%d bytes)", quoted, len(meta.Bytes))
		}
		return quoted
	}
	if n := len(meta.Bytes); n > 0 && n <= MaxNumericBytes {
		return fmt.Sprintf("%s = %d", tyName, LittleEndianU64(meta.Bytes))
	}
	return fmt.Sprintf("%s (%d bytes)", tyName, len(meta.Bytes))
}

func allASCII(b []byte) bool {
	for _, by := range b {
		if by >= 0x80 {
			return false
		}
	}
	return true
}

// Get returns the entry for an allocation ID.
func (x *AllocIndex) Get(id mir.AllocID) (*AllocEntry, bool) {
	if x == nil {
		return nil, false
	}
	e, ok := x.byID[id]
	return e, ok
}

// Describe renders an allocation, falling back to an opaque label for
// unknown IDs.
func (x *AllocIndex) Describe(id mir.AllocID) string {
	if e, ok := x.Get(id); ok {
		return e.ShortDescription()
	}
	return AllocLabel(id)
}

// DescribeWithRefs renders an allocation together with the allocations it
// references, to at most maxDepth levels. Allocation graphs may be cyclic
// or arbitrarily deep; the depth bound and the per-call visited set are
// what make this call total.
func (x *AllocIndex) DescribeWithRefs(id mir.AllocID, maxDepth int) string {
	visited := make(map[mir.AllocID]struct{})
	return x.describeRecursive(id, maxDepth, visited)
}

func (x *AllocIndex) describeRecursive(id mir.AllocID, depth int, visited map[mir.AllocID]struct{}) string {
	if depth <= 0 {
		return x.Describe(id)
	}
	if _, seen := visited[id]; seen {
		return x.Describe(id)
	}
	visited[id] = struct{}{}

	e, ok := x.Get(id)
	if !ok {
		return AllocLabel(id)
	}
	if len(e.Refs) == 0 {
		return e.ShortDescription()
	}
	refs := make([]string, len(e.Refs))
	for i, ref := range e.Refs {
		refs[i] = x.describeRecursive(ref, depth-1, visited)
	}
	return fmt.Sprintf("%s -> [%s]", e.ShortDescription(), strings.Join(refs, ", "))
}

// Entries returns all entries sorted by allocation ID, for legends.
func (x *AllocIndex) Entries() []*AllocEntry {
	if x == nil {
		return nil
	}
	out := make([]*AllocEntry, 0, len(x.byID))
	for _, e := range x.byID {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *AllocEntry) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}
