package recon

import "testing"

func TestNewIdentityIndexInjectsWellKnownIDs(t *testing.T) {
	idx := NewIdentityIndex()
	if name, ok := idx.EditorID(PlayerRefFormID); !ok || name != "PlayerRef" {
		t.Errorf("PlayerRefFormID: got (%q, %v), want (PlayerRef, true)", name, ok)
	}
	if name, ok := idx.EditorID(PlayerFormID); !ok || name != "Player" {
		t.Errorf("PlayerFormID: got (%q, %v), want (Player, true)", name, ok)
	}
}

// TestBindEditorIDPrecedence is spec §8: caller correlations > ESM EDID >
// runtime hash-table > well-known injections.
func TestBindEditorIDPrecedence(t *testing.T) {
	idx := NewIdentityIndex()
	const id FormID = 0x100

	idx.BindEditorID(id, "fromRuntime", sourceRuntime)
	idx.BindEditorID(id, "fromESM", sourceESM)
	if got, _ := idx.EditorID(id); got != "fromESM" {
		t.Errorf("after ESM bind, got %q, want fromESM (higher precedence than runtime)", got)
	}

	idx.BindEditorID(id, "fromRuntimeAgain", sourceRuntime)
	if got, _ := idx.EditorID(id); got != "fromESM" {
		t.Errorf("lower-precedence runtime bind overwrote ESM: got %q", got)
	}

	idx.BindEditorID(id, "fromCorrelation", sourceCorrelation)
	if got, _ := idx.EditorID(id); got != "fromCorrelation" {
		t.Errorf("correlation bind should win: got %q", got)
	}
}

func TestBindEditorIDFirstSeenWinsWithinSamePrecedence(t *testing.T) {
	idx := NewIdentityIndex()
	const id FormID = 0x200
	idx.BindEditorID(id, "first", sourceESM)
	idx.BindEditorID(id, "second", sourceESM)
	if got, _ := idx.EditorID(id); got != "first" {
		t.Errorf("got %q, want first (first-seen wins within same precedence)", got)
	}
}

func TestBindEditorIDEmptyIgnored(t *testing.T) {
	idx := NewIdentityIndex()
	idx.BindEditorID(0x300, "", sourceESM)
	if _, ok := idx.EditorID(0x300); ok {
		t.Error("empty editor ID should not bind")
	}
}

// TestReverseIndexRoundTrip is spec §8: editor_id -> form_id -> editor_id
// yields the same string.
func TestReverseIndexRoundTrip(t *testing.T) {
	idx := NewIdentityIndex()
	idx.BindEditorID(0x400, "MyWeapon", sourceESM)
	idx.BuildReverseIndex()

	id, ok := idx.FormIDFor("MyWeapon")
	if !ok || id != 0x400 {
		t.Fatalf("FormIDFor(MyWeapon) = (0x%X, %v), want (0x400, true)", id, ok)
	}
	name, ok := idx.EditorID(id)
	if !ok || name != "MyWeapon" {
		t.Errorf("round trip broke: got (%q, %v)", name, ok)
	}
}

func TestReverseIndexFirstOccurrenceOnDuplicateEditorID(t *testing.T) {
	idx := NewIdentityIndex()
	idx.BindEditorID(0x10, "Dup", sourceESM)
	idx.BindEditorID(0x20, "Dup", sourceESM)
	idx.BuildReverseIndex()

	id, ok := idx.FormIDFor("Dup")
	if !ok || id != 0x10 {
		t.Errorf("FormIDFor(Dup) = (0x%X, %v), want (0x10, true): lowest FormID is first occurrence", id, ok)
	}
}
