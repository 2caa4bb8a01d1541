package recon

import (
	"reflect"
	"testing"
)

func TestSubrecordIteratorAll(t *testing.T) {
	data := buildSubrecords(false,
		sub("EDID", cstr("TestThing")),
		sub("DATA", u32(42, false)),
	)

	it := NewSubrecordIterator(data, false)
	subs := it.All()
	if len(subs) != 2 {
		t.Fatalf("got %d subrecords, want 2", len(subs))
	}
	if subs[0].Tag.String() != "EDID" || subs[1].Tag.String() != "DATA" {
		t.Errorf("unexpected tags: %v %v", subs[0].Tag, subs[1].Tag)
	}
	if got := it.Data(subs[1]); !reflect.DeepEqual(got, u32(42, false)) {
		t.Errorf("DATA payload = %v, want %v", got, u32(42, false))
	}
}

func TestSubrecordIteratorExtendedLength(t *testing.T) {
	bigPayload := make([]byte, 70000)
	for i := range bigPayload {
		bigPayload[i] = byte(i)
	}

	var data []byte
	data = append(data, []byte("XXXX")...)
	data = append(data, u16(4, false)...)
	data = append(data, u32(uint32(len(bigPayload)), false)...)
	data = append(data, []byte("FULL")...)
	data = append(data, u16(0, false)...) // redundant, overridden by XXXX
	data = append(data, bigPayload...)

	it := NewSubrecordIterator(data, false)
	s, ok := it.Next()
	if !ok {
		t.Fatal("expected one subrecord from XXXX-prefixed stream")
	}
	if s.Tag.String() != "FULL" {
		t.Errorf("tag = %q, want FULL", s.Tag.String())
	}
	if s.Length != uint32(len(bigPayload)) {
		t.Errorf("length = %d, want %d", s.Length, len(bigPayload))
	}
	if got := it.Data(s); !reflect.DeepEqual(got, bigPayload) {
		t.Error("extended-length payload mismatch")
	}
	if _, ok := it.Next(); ok {
		t.Error("expected iteration to end after the single extended subrecord")
	}
}

func TestSubrecordIteratorStopsOnTruncatedTail(t *testing.T) {
	data := append(buildSubrecords(false, sub("EDID", cstr("ok"))), 'E', 'X')
	it := NewSubrecordIterator(data, false)
	subs := it.All()
	if len(subs) != 1 {
		t.Fatalf("got %d subrecords, want 1 (truncated tail should stop cleanly)", len(subs))
	}
}

func TestSubrecordIteratorBigEndian(t *testing.T) {
	data := buildSubrecords(true, sub("DATA", u32(7, true)))
	it := NewSubrecordIterator(data, true)
	s, ok := it.Next()
	if !ok {
		t.Fatal("expected a subrecord")
	}
	got := it.Data(s)
	v, err := readUint32(got, 0, bigEndian)
	if err != nil || v != 7 {
		t.Errorf("payload decoded to %d, err %v, want 7", v, err)
	}
}
