// Package index builds the read-only resolution indices that turn the
// module's numeric metadata IDs into human-readable descriptions. Every
// lookup has a fallback label; a miss is never an error. Indices are built
// once per module and are safe for concurrent readers.
package index

import (
	"fmt"

	"mirwalk/internal/mir"
)

// TypeIndex resolves type IDs to rendered names.
type TypeIndex struct {
	byID map[mir.TypeID]string
}

// NewTypeIndex builds the index in one pass over the type table.
func NewTypeIndex(types []mir.TypeMeta) *TypeIndex {
	x := &TypeIndex{byID: make(map[mir.TypeID]string, len(types))}
	for _, t := range types {
		x.byID[t.ID] = t.Name
	}
	return x
}

// Name returns the rendered type name, or an opaque tag for unknown IDs.
func (x *TypeIndex) Name(id mir.TypeID) string {
	if x != nil {
		if name, ok := x.byID[id]; ok {
			return name
		}
	}
	return fmt.Sprintf("ty%d", id)
}
