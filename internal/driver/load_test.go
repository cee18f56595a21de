package driver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mirwalk/internal/driver"
	"mirwalk/internal/mir"
)

const smallDump = `{
  "name": "demo",
  "functions": [
    {
      "id": 0,
      "name": "demo::main",
      "span": 0,
      "locals": [
        {"name": "x", "type": 0, "mutable": true},
        {"name": "r", "type": 1}
      ],
      "blocks": [
        {
          "statements": [
            {"kind": "storage_live", "local": 1},
            {
              "kind": "assign",
              "dst": {"local": 1},
              "src": {"kind": "ref", "borrow": "shared", "place": {"local": 0}}
            }
          ],
          "terminator": {
            "kind": "switch_int",
            "discr": {"kind": "copy", "place": {"local": 0}},
            "cases": [{"value": 0, "target": 1}],
            "otherwise": 1
          }
        },
        {
          "statements": [],
          "terminator": {"kind": "return"}
        }
      ]
    }
  ],
  "types": [
    {"id": 0, "name": "i32"},
    {"id": 1, "name": "&i32"}
  ],
  "spans": [
    {"id": 0, "file": "demo.rs", "line_start": 1, "col_start": 1, "line_end": 5, "col_end": 2}
  ],
  "funcs": [
    {"id": 0, "name": "demo::main"}
  ]
}`

// TestDecode_SmallDump tests end-to-end decoding of a representative
// dump.
func TestDecode_SmallDump(t *testing.T) {
	m, err := driver.Decode([]byte(smallDump))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if m.Name != "demo" || len(m.Funcs) != 1 {
		t.Fatalf("module = %q with %d functions", m.Name, len(m.Funcs))
	}
	f := m.Funcs[0]
	if f.Name != "demo::main" || f.Span != 0 {
		t.Errorf("function = %q span %d", f.Name, f.Span)
	}
	if len(f.Locals) != 2 || !f.Locals[0].Mutable || f.Locals[1].Type != 1 {
		t.Errorf("locals = %+v", f.Locals)
	}
	if len(f.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(f.Blocks))
	}

	bb0 := f.Blocks[0]
	if bb0.Stmts[0].Kind != mir.StmtStorageLive || bb0.Stmts[0].StorageLocal != 1 {
		t.Errorf("stmt 0 = %+v", bb0.Stmts[0])
	}
	asn := bb0.Stmts[1]
	if asn.Kind != mir.StmtAssign || asn.Assign.Src.Kind != mir.RValueRef {
		t.Fatalf("stmt 1 = %+v", asn)
	}
	if asn.Assign.Src.Ref.Kind != mir.BorrowShared || asn.Assign.Src.Ref.Place.Local != 0 {
		t.Errorf("ref = %+v", asn.Assign.Src.Ref)
	}
	if bb0.Term.Kind != mir.TermSwitchInt || bb0.Term.SwitchInt.Otherwise != 1 {
		t.Errorf("terminator = %+v", bb0.Term)
	}
	// Missing span IDs decode to the sentinel.
	if bb0.Stmts[0].Span != mir.NoSpanID {
		t.Errorf("stmt span = %d, want sentinel", bb0.Stmts[0].Span)
	}

	if len(m.Meta.Types) != 2 || m.Meta.Types[1].Name != "&i32" {
		t.Errorf("type table = %+v", m.Meta.Types)
	}
	if len(m.Meta.Spans) != 1 || m.Meta.Spans[0].LineEnd != 5 {
		t.Errorf("span table = %+v", m.Meta.Spans)
	}
}

// TestDecode_UnknownKinds tests that unrecognized kind strings are
// rejected with a contextual error.
func TestDecode_UnknownKinds(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "statement",
			json: `{"functions":[{"id":0,"name":"f","blocks":[{"statements":[{"kind":"frobnicate"}],"terminator":{"kind":"return"}}]}]}`,
			want: `unknown statement kind "frobnicate"`,
		},
		{
			name: "terminator",
			json: `{"functions":[{"id":0,"name":"f","blocks":[{"statements":[],"terminator":{"kind":"yeet"}}]}]}`,
			want: `unknown terminator kind "yeet"`,
		},
		{
			name: "borrow",
			json: `{"functions":[{"id":0,"name":"f","blocks":[{"statements":[{"kind":"assign","dst":{"local":0},"src":{"kind":"ref","borrow":"weird","place":{"local":0}}}],"terminator":{"kind":"return"}}]}]}`,
			want: `unknown borrow kind "weird"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := driver.Decode([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Decode() error = %v, want %q", err, tt.want)
			}
		})
	}
}

// TestDecode_MissingTerminator tests that a block without a terminator
// is rejected at decode time.
func TestDecode_MissingTerminator(t *testing.T) {
	dump := `{"functions":[{"id":0,"name":"f","blocks":[{"statements":[]}]}]}`
	_, err := driver.Decode([]byte(dump))
	if err == nil || !strings.Contains(err.Error(), "missing terminator") {
		t.Fatalf("Decode() error = %v, want missing terminator", err)
	}
}

// TestLoad_ValidatesModule tests that Load rejects a dump whose edges
// point outside the block list.
func TestLoad_ValidatesModule(t *testing.T) {
	dump := `{"functions":[{"id":0,"name":"f","blocks":[{"statements":[],"terminator":{"kind":"goto","target":7}}]}]}`
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := driver.Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid module") {
		t.Fatalf("Load() error = %v, want validation failure", err)
	}
}

// TestLoad_MissingFile tests the read error path.
func TestLoad_MissingFile(t *testing.T) {
	_, err := driver.Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "read module dump") {
		t.Fatalf("Load() error = %v, want read failure", err)
	}
}
