// Package dltarg decodes the verbose-mode argument sequence of a DLT
// message payload into its human-readable rendering.
package dltarg

import (
	"fmt"
	"strings"

	"github.com/serebryakov7/dlt-parser/internal/dltendian"
)

// Bit layout of the 32-bit type-info word. Grounded on
// original_source/argparser.h's ArgType/TyleType/CodingType enums.
const (
	infoBool = 0x00000010
	infoSint = 0x00000020
	infoUint = 0x00000040
	infoFloa = 0x00000080
	infoAray = 0x00000100
	infoStrg = 0x00000200
	infoRawd = 0x00000400
	infoVari = 0x00000800
	infoFixp = 0x00001000
	infoTrai = 0x00002000
	infoStru = 0x00004000

	tyleMask   = 0x0000000f
	codingMask = 0x00038000

	tyle8bit   = 1
	tyle16bit  = 2
	tyle32bit  = 3
	tyle64bit  = 4
	tyle128bit = 5

	scodASCII = 0x00000000
	scodUTF8  = 0x00008000
	scodHex   = 0x00010000
	scodBin   = 0x00018000
)

type typeInfo uint32

func (t typeInfo) has(bit uint32) bool { return uint32(t)&bit != 0 }
func (t typeInfo) tyle() uint32        { return uint32(t) & tyleMask }
func (t typeInfo) coding() uint32      { return uint32(t) & codingMask }

// Parse renders count verbose arguments from payload, space-separated with
// no trailing space, matching DLT viewer's convention.
func Parse(payload []byte, count uint8, bigEndian bool) (string, error) {
	var out strings.Builder
	cursor := payload
	for i := uint8(0); i < count; i++ {
		if i > 0 {
			out.WriteByte(' ')
		}
		if err := parseOne(&cursor, bigEndian, &out); err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return out.String(), nil
}

func parseOne(cursor *[]byte, bigEndian bool, out *strings.Builder) error {
	if len(*cursor) < 4 {
		return fmt.Errorf("truncated type-info word")
	}
	t := typeInfo(dltendian.ExtractUint32(cursor, bigEndian))

	switch {
	case t.has(infoStrg):
		if t.has(infoVari) {
			return fmt.Errorf("how could string be variable?")
		}
		return parseString(cursor, bigEndian, t.coding(), out)
	case t.has(infoUint):
		return parseUint(cursor, bigEndian, t.tyle(), t.coding(), out)
	case t.has(infoSint):
		return parseSint(cursor, bigEndian, t.tyle(), out)
	case t.has(infoFloa):
		return parseFloat(cursor, bigEndian, t.tyle(), out)
	case t.has(infoBool):
		return parseBool(cursor, bigEndian, out)
	case t.has(infoRawd):
		return parseRaw(cursor, bigEndian, out)
	case t.has(infoFixp), t.has(infoTrai), t.has(infoStru):
		return fmt.Errorf("not supported yet")
	default:
		return fmt.Errorf("unknown argument type")
	}
}

func parseString(cursor *[]byte, bigEndian bool, coding uint32, out *strings.Builder) error {
	if len(*cursor) < 2 {
		return fmt.Errorf("truncated string length")
	}
	length := dltendian.ExtractUint16(cursor, bigEndian)
	if length == 0 {
		return fmt.Errorf("INFO_STRG len is 0")
	}
	if len(*cursor) < int(length) {
		return fmt.Errorf("truncated string payload")
	}
	raw := (*cursor)[:length]
	*cursor = (*cursor)[length:]

	switch coding {
	case scodASCII:
		if raw[length-1] != 0 {
			return fmt.Errorf("string is not null-terminated")
		}
		out.Write(raw[:length-1])
		return nil
	case scodUTF8:
		return fmt.Errorf("SCOD_UTF8 is not supported yet")
	default:
		return fmt.Errorf("incorrect CodingType of string")
	}
}

func parseRaw(cursor *[]byte, bigEndian bool, out *strings.Builder) error {
	if len(*cursor) < 2 {
		return fmt.Errorf("truncated raw length")
	}
	length := dltendian.ExtractUint16(cursor, bigEndian)
	if len(*cursor) < int(length) {
		return fmt.Errorf("truncated raw payload")
	}
	raw := (*cursor)[:length]
	*cursor = (*cursor)[length:]

	const hexLiterals = "0123456789ABCDEF"
	buf := make([]byte, length*2)
	for i, b := range raw {
		buf[i*2] = hexLiterals[b>>4]
		buf[i*2+1] = hexLiterals[b&0x0f]
	}
	out.Write(buf)
	return nil
}

func parseUint(cursor *[]byte, bigEndian bool, tyle, coding uint32, out *strings.Builder) error {
	var text string
	switch tyle {
	case tyle8bit:
		if len(*cursor) < 1 {
			return fmt.Errorf("truncated uint8 argument")
		}
		v := dltendian.ExtractUint8(cursor, bigEndian)
		text = formatUint(uint64(v), coding)
	case tyle16bit:
		if len(*cursor) < 2 {
			return fmt.Errorf("truncated uint16 argument")
		}
		v := dltendian.ExtractUint16(cursor, bigEndian)
		text = formatUint(uint64(v), coding)
	case tyle32bit:
		if len(*cursor) < 4 {
			return fmt.Errorf("truncated uint32 argument")
		}
		v := dltendian.ExtractUint32(cursor, bigEndian)
		text = formatUint(uint64(v), coding)
	case tyle64bit:
		if len(*cursor) < 8 {
			return fmt.Errorf("truncated uint64 argument")
		}
		v := dltendian.ExtractUint64(cursor, bigEndian)
		text = formatUint(v, coding)
	case tyle128bit:
		return fmt.Errorf("not supported yet")
	default:
		return fmt.Errorf("unknown tyle type")
	}
	out.WriteString(text)
	return nil
}

// formatUint renders a single representation of v: hex OR bin OR decimal,
// never more than one. The original implementation formats hex/bin and then
// unconditionally appends a decimal copy too; that fall-through is not
// replicated here.
func formatUint(v uint64, coding uint32) string {
	switch coding {
	case scodHex:
		return fmt.Sprintf("%#x", v)
	case scodBin:
		return fmt.Sprintf("%#b", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}

func parseSint(cursor *[]byte, bigEndian bool, tyle uint32, out *strings.Builder) error {
	var text string
	switch tyle {
	case tyle8bit:
		if len(*cursor) < 1 {
			return fmt.Errorf("truncated int8 argument")
		}
		text = fmt.Sprintf("%d", dltendian.ExtractInt8(cursor, bigEndian))
	case tyle16bit:
		if len(*cursor) < 2 {
			return fmt.Errorf("truncated int16 argument")
		}
		text = fmt.Sprintf("%d", dltendian.ExtractInt16(cursor, bigEndian))
	case tyle32bit:
		if len(*cursor) < 4 {
			return fmt.Errorf("truncated int32 argument")
		}
		text = fmt.Sprintf("%d", dltendian.ExtractInt32(cursor, bigEndian))
	case tyle64bit:
		if len(*cursor) < 8 {
			return fmt.Errorf("truncated int64 argument")
		}
		text = fmt.Sprintf("%d", dltendian.ExtractInt64(cursor, bigEndian))
	case tyle128bit:
		return fmt.Errorf("not supported yet")
	default:
		return fmt.Errorf("unknown tyle type")
	}
	out.WriteString(text)
	return nil
}

func parseFloat(cursor *[]byte, bigEndian bool, tyle uint32, out *strings.Builder) error {
	switch tyle {
	case tyle32bit:
		if len(*cursor) < 4 {
			return fmt.Errorf("truncated float32 argument")
		}
		fmt.Fprintf(out, "%v", dltendian.ExtractFloat32(cursor, bigEndian))
	case tyle64bit:
		if len(*cursor) < 8 {
			return fmt.Errorf("truncated float64 argument")
		}
		fmt.Fprintf(out, "%v", dltendian.ExtractFloat64(cursor, bigEndian))
	default:
		return fmt.Errorf("unknown tyle type")
	}
	return nil
}

func parseBool(cursor *[]byte, bigEndian bool, out *strings.Builder) error {
	if len(*cursor) < 1 {
		return fmt.Errorf("truncated bool argument")
	}
	fmt.Fprintf(out, "%t", dltendian.ExtractBool(cursor, bigEndian))
	return nil
}
