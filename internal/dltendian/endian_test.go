package dltendian

import "testing"

func TestReadUint16(t *testing.T) {
	buf := []byte{0x01, 0x02}
	if v := ReadUint16(buf, true); v != 0x0102 {
		t.Fatalf("big endian: got %#x, want 0x0102", v)
	}
	if v := ReadUint16(buf, false); v != 0x0201 {
		t.Fatalf("little endian: got %#x, want 0x0201", v)
	}
}

func TestReadUint32(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x01, 0x00}
	if v := ReadUint32(buf, true); v != 0x00000100 {
		t.Fatalf("big endian: got %#x, want 0x100", v)
	}
}

func TestExtractAdvancesCursor(t *testing.T) {
	buf := []byte{0x00, 0x01, 0xAB}
	v := ExtractUint16(&buf, true)
	if v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
	if len(buf) != 1 || buf[0] != 0xAB {
		t.Fatalf("cursor not advanced correctly: %v", buf)
	}
}

func TestExtractFloat32(t *testing.T) {
	// 1.0f in IEEE-754 big endian bytes
	buf := []byte{0x3F, 0x80, 0x00, 0x00, 0x99}
	v := ExtractFloat32(&buf, true)
	if v != 1.0 {
		t.Fatalf("got %v, want 1.0", v)
	}
	if len(buf) != 1 || buf[0] != 0x99 {
		t.Fatalf("cursor not advanced correctly: %v", buf)
	}
}

func TestExtractBool(t *testing.T) {
	buf := []byte{0x01, 0x00}
	if !ExtractBool(&buf, true) {
		t.Fatal("expected true")
	}
	if ExtractBool(&buf, true) {
		t.Fatal("expected false")
	}
}
