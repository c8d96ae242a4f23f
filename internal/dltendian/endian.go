// Package dltendian reads and extracts fixed-width values from byte slices
// honoring a runtime big/little endian flag, since DLT mixes both on the
// wire depending on the MSBF bit of a given record.
package dltendian

import (
	"encoding/binary"
	"math"
)

func byteOrder(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func ReadUint8(buf []byte, _ bool) uint8   { return buf[0] }
func ReadInt8(buf []byte, bigEndian bool) int8 { return int8(ReadUint8(buf, bigEndian)) }
func ReadBool(buf []byte, _ bool) bool     { return buf[0] != 0 }

func ReadUint16(buf []byte, bigEndian bool) uint16 { return byteOrder(bigEndian).Uint16(buf) }
func ReadUint32(buf []byte, bigEndian bool) uint32 { return byteOrder(bigEndian).Uint32(buf) }
func ReadUint64(buf []byte, bigEndian bool) uint64 { return byteOrder(bigEndian).Uint64(buf) }

func ReadInt16(buf []byte, bigEndian bool) int16 { return int16(ReadUint16(buf, bigEndian)) }
func ReadInt32(buf []byte, bigEndian bool) int32 { return int32(ReadUint32(buf, bigEndian)) }
func ReadInt64(buf []byte, bigEndian bool) int64 { return int64(ReadUint64(buf, bigEndian)) }

func ReadFloat32(buf []byte, bigEndian bool) float32 {
	return math.Float32frombits(ReadUint32(buf, bigEndian))
}

func ReadFloat64(buf []byte, bigEndian bool) float64 {
	return math.Float64frombits(ReadUint64(buf, bigEndian))
}

// Extract* read a value from the front of *buf and advance *buf past it,
// mirroring original's `endian::extract<T>` which both reads and moves the
// cursor in one call.

func ExtractUint8(buf *[]byte, bigEndian bool) uint8 {
	v := ReadUint8(*buf, bigEndian)
	*buf = (*buf)[1:]
	return v
}

func ExtractInt8(buf *[]byte, bigEndian bool) int8 {
	v := ReadInt8(*buf, bigEndian)
	*buf = (*buf)[1:]
	return v
}

func ExtractBool(buf *[]byte, bigEndian bool) bool {
	v := ReadBool(*buf, bigEndian)
	*buf = (*buf)[1:]
	return v
}

func ExtractUint16(buf *[]byte, bigEndian bool) uint16 {
	v := ReadUint16(*buf, bigEndian)
	*buf = (*buf)[2:]
	return v
}

func ExtractUint32(buf *[]byte, bigEndian bool) uint32 {
	v := ReadUint32(*buf, bigEndian)
	*buf = (*buf)[4:]
	return v
}

func ExtractUint64(buf *[]byte, bigEndian bool) uint64 {
	v := ReadUint64(*buf, bigEndian)
	*buf = (*buf)[8:]
	return v
}

func ExtractInt16(buf *[]byte, bigEndian bool) int16 {
	v := ReadInt16(*buf, bigEndian)
	*buf = (*buf)[2:]
	return v
}

func ExtractInt32(buf *[]byte, bigEndian bool) int32 {
	v := ReadInt32(*buf, bigEndian)
	*buf = (*buf)[4:]
	return v
}

func ExtractInt64(buf *[]byte, bigEndian bool) int64 {
	v := ReadInt64(*buf, bigEndian)
	*buf = (*buf)[8:]
	return v
}

func ExtractFloat32(buf *[]byte, bigEndian bool) float32 {
	v := ReadFloat32(*buf, bigEndian)
	*buf = (*buf)[4:]
	return v
}

func ExtractFloat64(buf *[]byte, bigEndian bool) float64 {
	v := ReadFloat64(*buf, bigEndian)
	*buf = (*buf)[8:]
	return v
}
