package recon

import "testing"

// TestDecodePackageDataCrossEndian is spec §8 scenario 2: the same
// logical PKDT fields encoded little- and big-endian must decode to the
// byte-identical PackageData.
func TestDecodePackageDataCrossEndian(t *testing.T) {
	le := []byte{0x07, 0x02, 0x00, 0x00, 0x0C, 0x00, 0x03, 0x00, 0x7E, 0x00, 0x00, 0x00}
	be := []byte{0x00, 0x00, 0x02, 0x07, 0x0C, 0x00, 0x00, 0x03, 0x00, 0x7E, 0x00, 0x00}

	want := PackageData{GeneralFlags: 0x207, PackageType: 12, FalloutFlags: 0x0003, TypeSpecific: 0x007E}

	got, ok := decodePackageData(le, littleEndian)
	if !ok {
		t.Fatal("decodePackageData(LE) failed")
	}
	if got != want {
		t.Errorf("LE: got %+v, want %+v", got, want)
	}
	if PackageTypeName(got.PackageType) != "Sandbox" {
		t.Errorf("PackageTypeName(%d) = %q, want Sandbox", got.PackageType, PackageTypeName(got.PackageType))
	}

	got, ok = decodePackageData(be, bigEndian)
	if !ok {
		t.Fatal("decodePackageData(BE) failed")
	}
	if got != want {
		t.Errorf("BE: got %+v, want %+v", got, want)
	}
}

// TestDecodeScheduleSummary is spec §8 scenario 3.
func TestDecodeScheduleSummary(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0x00, 0x08, 0x08, 0x00, 0x00, 0x00}
	s, ok := decodeSchedule(data, littleEndian)
	if !ok {
		t.Fatal("decodeSchedule failed")
	}
	want := Schedule{Month: -1, DayOfWeek: -1, Date: 0, Time: 8, DurationHours: 8}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
	if got := s.Summary(); got != "Every day, 8:00 AM for 8 hours" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestDecodePackageFlags(t *testing.T) {
	f, ok := decodePackageFlags([]byte{1, 0})
	if !ok || !f.Repeatable || f.LinkedReference {
		t.Errorf("got %+v, ok=%v", f, ok)
	}
	if _, ok := decodePackageFlags([]byte{1}); ok {
		t.Error("short payload should fail")
	}
}

func TestParsePackageAssemblesAllSubrecords(t *testing.T) {
	data := buildSubrecords(false,
		sub("EDID", cstr("PKG_Sandbox")),
		sub("PKDT", []byte{0x07, 0x02, 0x00, 0x00, 0x0C, 0x00, 0x03, 0x00, 0x7E, 0x00, 0x00, 0x00}),
		sub("PSDT", []byte{0xFF, 0xFF, 0x00, 0x08, 0x08, 0x00, 0x00, 0x00}),
		sub("PKPT", []byte{1, 0}),
	)
	p := ParsePackage(RecordHeader{FormID: 0x1}, data)
	if p.EditorID != "PKG_Sandbox" {
		t.Errorf("EditorID = %q", p.EditorID)
	}
	if p.Data.PackageType != 12 {
		t.Errorf("Data.PackageType = %d", p.Data.PackageType)
	}
	if p.Schedule.DurationHours != 8 {
		t.Errorf("Schedule.DurationHours = %d", p.Schedule.DurationHours)
	}
	if !p.Flags.Repeatable {
		t.Error("Flags.Repeatable = false, want true")
	}
}
