package recon

import "testing"

// TestParseLeveledList is spec §8 scenario 4.
func TestParseLeveledList(t *testing.T) {
	lvlo := append(append([]byte{}, u16(10, false)...), u16(0, false)...)
	lvlo = append(lvlo, u32(0x00123456, false)...)
	lvlo = append(lvlo, u16(3, false)...)
	lvlo = append(lvlo, u16(0, false)...)

	data := buildSubrecords(false,
		sub("LVLD", []byte{50}),
		sub("LVLF", []byte{0x01}),
		sub("LVLO", lvlo),
	)
	l := ParseLeveledList(RecordHeader{FormID: 0x1}, data)
	if l.ChanceNone != 50 {
		t.Errorf("ChanceNone = %d, want 50", l.ChanceNone)
	}
	if l.Flags != 0x01 {
		t.Errorf("Flags = 0x%02X, want 0x01", l.Flags)
	}
	if len(l.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(l.Entries))
	}
	e := l.Entries[0]
	if e.Level != 10 || e.FormID != 0x00123456 || e.Count != 3 {
		t.Errorf("entry = %+v, want {Level:10 FormID:0x123456 Count:3}", e)
	}
}

// TestParseLeveledListNoEntries is spec §8 boundary behavior: no LVLO
// subrecords reconstructs to zero entries, not an error.
func TestParseLeveledListNoEntries(t *testing.T) {
	data := buildSubrecords(false, sub("LVLD", []byte{0}))
	l := ParseLeveledList(RecordHeader{FormID: 0x1}, data)
	if len(l.Entries) != 0 {
		t.Errorf("len(Entries) = %d, want 0", len(l.Entries))
	}
}
