package recon

import "testing"

// TestParseGlobal is spec §8 scenario 1.
func TestParseGlobal(t *testing.T) {
	data := buildSubrecords(false,
		sub("EDID", cstr("fTimeScale")),
		sub("FNAM", []byte{'f'}),
		sub("FLTV", floatLE(30.0)),
	)
	g := ParseGlobal(RecordHeader{FormID: 0x1}, data)
	if g.EditorID != "fTimeScale" {
		t.Errorf("EditorID = %q, want fTimeScale", g.EditorID)
	}
	if g.ValueType != 'f' {
		t.Errorf("ValueType = %q, want 'f'", g.ValueType)
	}
	if g.Value != 30.0 {
		t.Errorf("Value = %v, want 30.0", g.Value)
	}
}
