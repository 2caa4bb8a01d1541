package recon

import "testing"

func TestReadUint32Endian(t *testing.T) {
	tests := []struct {
		name string
		e    endian
		want uint32
	}{
		{"little", littleEndian, 0x04030201},
		{"big", bigEndian, 0x01020304},
	}
	data := []byte{0x01, 0x02, 0x03, 0x04}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readUint32(data, 0, tt.e)
			if err != nil {
				t.Fatalf("readUint32: %v", err)
			}
			if got != tt.want {
				t.Errorf("got 0x%08X, want 0x%08X", got, tt.want)
			}
		})
	}
}

func TestReadPrimitivesOutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02}
	if _, err := readUint32(data, 0, littleEndian); err != ErrOutsideBoundary {
		t.Errorf("readUint32 past end: got err %v, want ErrOutsideBoundary", err)
	}
	if _, err := readUint8(data, 5); err != ErrOutsideBoundary {
		t.Errorf("readUint8 past end: got err %v, want ErrOutsideBoundary", err)
	}
	if _, err := readBytes(data, 1, 5); err != ErrOutsideBoundary {
		t.Errorf("readBytes past end: got err %v, want ErrOutsideBoundary", err)
	}
}

func TestReadFloat32(t *testing.T) {
	// 1.5 as little-endian IEEE-754 bits.
	data := []byte{0x00, 0x00, 0xC0, 0x3F}
	got, err := readFloat32(data, 0, littleEndian)
	if err != nil {
		t.Fatalf("readFloat32: %v", err)
	}
	if got != 1.5 {
		t.Errorf("got %v, want 1.5", got)
	}
}

func TestReadCString(t *testing.T) {
	data := append([]byte("hello"), 0, 'X', 'X')
	got, err := readCString(data, 0, maxStringLength)
	if err != nil {
		t.Fatalf("readCString: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestReadCStringNoTerminatorStopsAtMaxLen(t *testing.T) {
	data := []byte("abcdefgh")
	got, err := readCString(data, 0, 3)
	if err != nil {
		t.Fatalf("readCString: %v", err)
	}
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestReadPString(t *testing.T) {
	payload := "hi there"
	data := append(u16(uint16(len(payload)), false), []byte(payload)...)
	got, err := readPString(data, 0, littleEndian)
	if err != nil {
		t.Fatalf("readPString: %v", err)
	}
	if got != payload {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestDecodeLatin1HighBytes(t *testing.T) {
	// 0xE9 is "é" in Latin-1.
	got := decodeLatin1([]byte{'c', 0xE9})
	if got != "cé" {
		t.Errorf("got %q, want %q", got, "cé")
	}
}

func TestPrintableASCIIRatio(t *testing.T) {
	if r := printableASCIIRatio([]byte("hello world")); r != 1 {
		t.Errorf("all-printable ratio = %v, want 1", r)
	}
	if r := printableASCIIRatio([]byte{0x00, 0x01, 'a'}); r >= 0.5 {
		t.Errorf("mostly-binary ratio = %v, want < 0.5", r)
	}
	if r := printableASCIIRatio(nil); r != 1 {
		t.Errorf("empty ratio = %v, want 1", r)
	}
}
