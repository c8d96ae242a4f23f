package dltarg

import (
	"encoding/binary"
	"testing"
)

func typeInfoBytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func TestParseStringArgument(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoStrg|scodASCII)...)
	str := []byte("hi\x00") // null terminated, len includes the terminator
	payload = append(payload, byte(len(str)>>8), byte(len(str)))
	payload = append(payload, str...)

	got, err := Parse(payload, 1, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "hi" {
		t.Fatalf("got %q, want %q", got, "hi")
	}
}

func TestParseStringZeroLengthFails(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoStrg|scodASCII)...)
	payload = append(payload, 0x00, 0x00)
	if _, err := Parse(payload, 1, true); err == nil {
		t.Fatal("expected error for zero-length string")
	}
}

func TestParseStringNotNullTerminatedFails(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoStrg|scodASCII)...)
	payload = append(payload, 0x00, 0x02, 'a', 'b')
	if _, err := Parse(payload, 1, true); err == nil {
		t.Fatal("expected error for non-null-terminated string")
	}
}

func TestParseRawArgumentExactLength(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoRawd)...)
	payload = append(payload, 0x00, 0x03, 0xDE, 0xAD, 0xFF)

	got, err := Parse(payload, 1, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "DEADFF" {
		t.Fatalf("got %q, want %q", got, "DEADFF")
	}
	if len(got) != 3*2 {
		t.Fatalf("raw output length %d, want exactly len*2 = 6", len(got))
	}
}

func TestParseUintDecimal(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoUint|tyle32bit|scodASCII)...)
	payload = append(payload, 0x00, 0x00, 0x01, 0x2C) // 300

	got, err := Parse(payload, 1, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "300" {
		t.Fatalf("got %q, want %q", got, "300")
	}
}

func TestParseUintHexSingleRepresentation(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoUint|tyle8bit|scodHex)...)
	payload = append(payload, 0xFF)

	got, err := Parse(payload, 1, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "0xff" {
		t.Fatalf("got %q, want %q (hex only, no trailing decimal)", got, "0xff")
	}
}

func TestParseSintDecimal(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoSint|tyle16bit)...)
	payload = append(payload, 0xFF, 0xFF) // -1

	got, err := Parse(payload, 1, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "-1" {
		t.Fatalf("got %q, want %q", got, "-1")
	}
}

func TestParseBool(t *testing.T) {
	payload := append([]byte{}, typeInfoBytes(infoBool)...)
	payload = append(payload, 0x01)

	got, err := Parse(payload, 1, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "true" {
		t.Fatalf("got %q, want %q", got, "true")
	}
}

func TestParseMultipleArgsSpaceSeparated(t *testing.T) {
	var payload []byte
	payload = append(payload, typeInfoBytes(infoBool)...)
	payload = append(payload, 0x01)
	payload = append(payload, typeInfoBytes(infoUint|tyle8bit)...)
	payload = append(payload, 0x07)

	got, err := Parse(payload, 2, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "true 7" {
		t.Fatalf("got %q, want %q", got, "true 7")
	}
}

func TestParseUnsupportedFixedPointFails(t *testing.T) {
	payload := typeInfoBytes(infoFixp)
	if _, err := Parse(payload, 1, true); err == nil {
		t.Fatal("expected unsupported error for INFO_FIXP")
	}
}

func TestParseUnknownTypeFails(t *testing.T) {
	payload := typeInfoBytes(0)
	if _, err := Parse(payload, 1, true); err == nil {
		t.Fatal("expected unknown argument type error")
	}
}
