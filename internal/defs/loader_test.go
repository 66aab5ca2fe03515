package defs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLibrary(t *testing.T) {
	lib, err := DefaultLibrary()
	if err != nil {
		t.Fatalf("DefaultLibrary() failed: %v", err)
	}
	if len(lib.PieceOrder) != len(lib.Pieces) || len(lib.InvaderOrder) != len(lib.Invaders) {
		t.Fatalf("order slices out of sync with maps")
	}
	kinds := map[FireKind]bool{}
	for _, id := range lib.PieceOrder {
		if def := lib.Pieces[id]; def.Fire != nil {
			kinds[def.Fire.Kind] = true
		}
	}
	for _, k := range []FireKind{FireBolt, FireLead, FireArc} {
		if !kinds[k] {
			t.Errorf("default library has no %q piece", k)
		}
	}
}

func TestParseLibraryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		pieces   string
		invaders string
		want     string
	}{
		{"bad json", `[`, `[]`, "unmarshal piece"},
		{"unknown fire kind", `[{"id":"x","progress_rate":1,"fire":{"kind":"laser","rate":1}}]`, validInvaders, "unknown fire kind"},
		{"zero progress", `[{"id":"x"}]`, validInvaders, "progress_rate"},
		{"duplicate", `[{"id":"x","progress_rate":1},{"id":"x","progress_rate":1}]`, validInvaders, "duplicate"},
		{"no invaders", `[]`, `[]`, "no invaders"},
		{"unknown ease", `[]`, `[{"id":"i","first":{"life":1,"speed":1},"last":{"life":1,"speed":1},"ease":"wobble"}]`, "unknown ease"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLibrary([]byte(tt.pieces), []byte(tt.invaders))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

const validInvaders = `[{"id":"i","weight":1,"first":{"life":1,"speed":1},"last":{"life":2,"speed":2}}]`

func TestLoadLibraryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.json")
	data := `[{"id":"block","width":1,"height":1,"progress_rate":10,"blocking":true}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadLibrary(path, "")
	if err != nil {
		t.Fatalf("LoadLibrary() failed: %v", err)
	}
	if _, ok := lib.Piece("block"); !ok || len(lib.Pieces) != 1 {
		t.Errorf("expected only the file's piece, got %v", lib.PieceOrder)
	}
	if len(lib.Invaders) == 0 {
		t.Errorf("invaders should fall back to built-in definitions")
	}
}

func TestFireAtScalesWithLevel(t *testing.T) {
	def := PieceDefinition{Fire: &FireStats{Kind: FireBolt, Rate: 1, Range: 2, Attack: 4, AttackPerLevel: 2, RangePerLevel: 0.5, RatePerLevel: 0.25}}
	s, ok := def.FireAt(2)
	if !ok {
		t.Fatal("expected fire stats")
	}
	if s.Attack != 8 || s.Range != 3 || s.Rate != 1.5 {
		t.Errorf("unexpected scaled stats %+v", s)
	}
	if def.Fire.Attack != 4 {
		t.Errorf("FireAt must not mutate the definition")
	}
	if _, ok := (PieceDefinition{}).FireAt(0); ok {
		t.Errorf("piece without fire should report false")
	}
}

func TestInterpolate(t *testing.T) {
	if got := Interpolate("linear", 10, 20, 0.5); got != 15 {
		t.Errorf("linear midpoint = %v, want 15", got)
	}
	if got := Interpolate("in_quad", 0, 100, 0.5); got != 25 {
		t.Errorf("in_quad midpoint = %v, want 25", got)
	}
	if got := Interpolate("in_out_cubic", 3, 9, 0); got != 3 {
		t.Errorf("t=0 should return start, got %v", got)
	}
	if got := Interpolate("in_out_cubic", 3, 9, 1); got != 9 {
		t.Errorf("t=1 should return end, got %v", got)
	}
}
