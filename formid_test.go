package recon

import "testing"

func TestFormIDIsNone(t *testing.T) {
	tests := []struct {
		name string
		id   FormID
		want bool
	}{
		{"zero", NoFormID, true},
		{"invalid", InvalidFormID, true},
		{"real", FormID(0x01234567), false},
		{"player ref", PlayerRefFormID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsNone(); got != tt.want {
				t.Errorf("IsNone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordHeaderEndian(t *testing.T) {
	le := RecordHeader{BigEndian: false}
	if le.Endian() != littleEndian {
		t.Error("expected littleEndian for BigEndian=false")
	}
	be := RecordHeader{BigEndian: true}
	if be.Endian() != bigEndian {
		t.Error("expected bigEndian for BigEndian=true")
	}
}
