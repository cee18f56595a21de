package index

import (
	"fmt"
	"strings"

	"mirwalk/internal/mir"
)

// FuncIndex resolves function symbol IDs to display names.
type FuncIndex struct {
	byID map[mir.FnID]string
}

// NewFuncIndex builds the index in one pass over the symbol table.
func NewFuncIndex(funcs []mir.FnSymbol) *FuncIndex {
	x := &FuncIndex{byID: make(map[mir.FnID]string, len(funcs))}
	for _, f := range funcs {
		x.byID[f.ID] = symbolString(f)
	}
	return x
}

func symbolString(f mir.FnSymbol) string {
	switch f.Kind {
	case mir.FnSymNoOp:
		return "NoOp: " + f.Name
	case mir.FnSymIntrinsic:
		return "Intr: " + f.Name
	default:
		return f.Name
	}
}

// Name returns the display name, or an opaque tag for unknown IDs.
func (x *FuncIndex) Name(id mir.FnID) string {
	if x != nil {
		if name, ok := x.byID[id]; ok {
			return name
		}
	}
	return fmt.Sprintf("fn%d", id)
}

// ShortName returns the display name shortened for labels.
func (x *FuncIndex) ShortName(id mir.FnID) string {
	return ShortFnName(x.Name(id))
}

// ShortFnName keeps the last path segment of a qualified function name,
// dropping any trailing symbol-hash segment ("::h1234...").
func ShortFnName(name string) string {
	short := name
	if i := strings.LastIndex(short, "::h"); i >= 0 && isHexSuffix(short[i+3:]) {
		short = short[:i]
	}
	if i := strings.LastIndex(short, "::"); i >= 0 {
		short = short[i+2:]
	}
	return short
}

func isHexSuffix(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
