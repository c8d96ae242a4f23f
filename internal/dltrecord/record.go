// Package dltrecord parses individual DLT messages: the storage and
// standard headers, the optional extras and extended header, and the
// control/verbose/non-verbose payload body. Grounded on
// original_source/record.h and record.cpp.
package dltrecord

import (
	"bytes"
	"fmt"

	"github.com/serebryakov7/dlt-parser/internal/dltarg"
	"github.com/serebryakov7/dlt-parser/internal/dltendian"
	"github.com/serebryakov7/dlt-parser/internal/dltfs"
)

// htyp bit flags.
const (
	htypUEH  = 0x01
	htypMSBF = 0x02
	htypWEID = 0x04
	htypWSID = 0x08
	htypWTMS = 0x10
)

// msin bit fields.
const (
	msinVERB      = 0x01
	msinMSTPMask  = 0x0e
	msinMSTPShift = 1
	msinMTINMask  = 0xf0
	msinMTINShift = 4
)

// MsgType is the type of a DLT message, valid only when the extended header
// was present; TypeUnknown otherwise.
type MsgType int8

const (
	TypeUnknown  MsgType = -2
	TypeLog      MsgType = 0
	TypeAppTrace MsgType = 1
	TypeNwTrace  MsgType = 2
	TypeControl  MsgType = 3
)

const subTypeUnknown int8 = -2

// ControlType subtype values, meaningful only when Type() == TypeControl.
const (
	controlRequest  int8 = 1
	controlResponse int8 = 2
)

var signature = [4]byte{'D', 'L', 'T', 0x01}

// Record is the parsed, read-only view of a single DLT message.
type Record struct {
	corruptionCause *string

	apid [4]byte
	ctid [4]byte
	ecu  [4]byte

	timestampUs    uint64
	timestampExtra uint32
	sessionID      uint32
	mcnt           uint8
	msgType        MsgType
	subType        int8

	message string
}

func (r *Record) IsCorrupted() bool { return r.corruptionCause != nil }

func (r *Record) CorruptionCause() string {
	if r.corruptionCause == nil {
		return ""
	}
	return *r.corruptionCause
}

func (r *Record) Message() string        { return r.message }
func (r *Record) Apid() string           { return trimID(r.apid) }
func (r *Record) Ctid() string           { return trimID(r.ctid) }
func (r *Record) Ecu() string            { return trimID(r.ecu) }
func (r *Record) Timestamp() uint64      { return r.timestampUs }
func (r *Record) TimestampExtra() uint32 { return r.timestampExtra }
func (r *Record) SessionID() uint32      { return r.sessionID }
func (r *Record) MessageCounter() uint8  { return r.mcnt }
func (r *Record) Type() int8             { return int8(r.msgType) }
func (r *Record) SubType() int8          { return r.subType }

// trimID renders a 4-byte ID4 field, trimming trailing zero bytes: the
// length is the index of the first non-zero byte scanned from the right,
// plus one.
func trimID(b [4]byte) string {
	length := 0
	switch {
	case b[3] != 0:
		length = 4
	case b[2] != 0:
		length = 3
	case b[1] != 0:
		length = 2
	case b[0] != 0:
		length = 1
	}
	return string(b[:length])
}

// NewCorrupted builds a placeholder record marking a resync point in the
// byte stream. The supervisor inserts at most one of these per contiguous
// run of unparseable bytes.
func NewCorrupted(cause string) *Record {
	c := cause
	return &Record{corruptionCause: &c, msgType: TypeUnknown, subType: subTypeUnknown}
}

func readID(src dltfs.Source) ([4]byte, error) {
	var id [4]byte
	b, err := src.Read(4)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// Parse reads a single record starting at src's current position. On
// success the cursor is left positioned just past the record; on failure
// the cursor position is unspecified and the caller must reposition before
// retrying.
func Parse(src dltfs.Source) (*Record, error) {
	headerBytes := 0

	sig, err := src.Read(4)
	if err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	if !bytes.Equal(sig, signature[:]) {
		return nil, fmt.Errorf("invalid DLT signature")
	}

	secondsBuf, err := src.Read(4)
	if err != nil {
		return nil, fmt.Errorf("reading seconds: %w", err)
	}
	seconds := dltendian.ReadUint32(secondsBuf, false)

	microsBuf, err := src.Read(4)
	if err != nil {
		return nil, fmt.Errorf("reading microseconds: %w", err)
	}
	micros := dltendian.ReadUint32(microsBuf, false)

	ecu, err := readID(src)
	if err != nil {
		return nil, fmt.Errorf("reading storage ecu: %w", err)
	}

	stdHeader, err := src.Read(4)
	if err != nil {
		return nil, fmt.Errorf("reading standard header: %w", err)
	}
	htyp := stdHeader[0]
	mcnt := stdHeader[1]
	wireLen := dltendian.ReadUint16(stdHeader[2:4], true)
	headerBytes += 4

	bigEndian := htyp&htypMSBF != 0

	if htyp&htypWEID != 0 {
		if _, err := src.Read(4); err != nil {
			return nil, fmt.Errorf("reading ecu extra: %w", err)
		}
		headerBytes += 4
	}

	var sessionID uint32
	if htyp&htypWSID != 0 {
		buf, err := src.Read(4)
		if err != nil {
			return nil, fmt.Errorf("reading session id: %w", err)
		}
		sessionID = dltendian.ReadUint32(buf, true)
		headerBytes += 4
	}

	var timestampExtra uint32
	if htyp&htypWTMS != 0 {
		buf, err := src.Read(4)
		if err != nil {
			return nil, fmt.Errorf("reading timestamp extra: %w", err)
		}
		timestampExtra = dltendian.ReadUint32(buf, true)
		headerBytes += 4
	}

	msgType := TypeUnknown
	subType := subTypeUnknown
	verbose := false
	var apid, ctid [4]byte
	var noar uint8

	if htyp&htypUEH != 0 {
		buf, err := src.Read(10)
		if err != nil {
			return nil, fmt.Errorf("reading extended header: %w", err)
		}
		msin := buf[0]
		noar = buf[1]
		copy(apid[:], buf[2:6])
		copy(ctid[:], buf[6:10])
		headerBytes += 10

		verbose = msin&msinVERB != 0
		msgType = MsgType(int8((msin & msinMSTPMask) >> msinMSTPShift))
		subType = int8((msin & msinMTINMask) >> msinMTINShift)
	}

	if int(wireLen) < headerBytes {
		return nil, fmt.Errorf("declared length %d shorter than headers (%d bytes)", wireLen, headerBytes)
	}
	bodyLen := int(wireLen) - headerBytes

	body, err := src.Read(bodyLen)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	message, err := assembleMessage(body, bigEndian, msgType, subType, verbose, noar)
	if err != nil {
		return nil, err
	}

	return &Record{
		apid:           apid,
		ctid:           ctid,
		ecu:            ecu,
		timestampUs:    uint64(seconds)*1_000_000 + uint64(micros),
		timestampExtra: timestampExtra,
		sessionID:      sessionID,
		mcnt:           mcnt,
		msgType:        msgType,
		subType:        subType,
		message:        message,
	}, nil
}

func assembleMessage(body []byte, bigEndian bool, msgType MsgType, subType int8, verbose bool, noar uint8) (string, error) {
	if msgType == TypeControl {
		if verbose {
			return "", fmt.Errorf("no support for verbose ctrl messages")
		}
		return assembleControlMessage(body, bigEndian, subType)
	}
	if verbose {
		if noar == 0 {
			return "", nil
		}
		return dltarg.Parse(body, noar, bigEndian)
	}
	// Non-verbose: a bare message id, read host-endian regardless of the
	// record's own MSBF flag - matches the reference parser exactly.
	if len(body) < 4 {
		return "", fmt.Errorf("truncated non-verbose message id")
	}
	id := dltendian.ReadUint32(body, false)
	return fmt.Sprintf("[%d]", id), nil
}

func assembleControlMessage(body []byte, bigEndian bool, subType int8) (string, error) {
	if len(body) < 4 {
		return "", fmt.Errorf("truncated control service id")
	}
	cursor := body
	serviceID := ServiceID(dltendian.ExtractUint32(&cursor, bigEndian))

	if subType != controlResponse {
		return fmt.Sprintf("[%s]", serviceID.Name()), nil
	}

	if len(cursor) < 1 {
		return "", fmt.Errorf("truncated control return type")
	}
	// The return code, like the other control-payload scalars below, is
	// read host-endian, never swapped for MSBF.
	returnType := ReturnType(dltendian.ExtractUint8(&cursor, false))

	if serviceID == ServiceMarker {
		return "MARKER", nil
	}

	returnName, err := returnType.Name()
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("[%s %s] ", serviceID.Name(), returnName)

	switch serviceID {
	case ServiceGetSoftwareVersion:
		if len(cursor) < 4 {
			return "", fmt.Errorf("truncated software version length")
		}
		length := dltendian.ExtractUint32(&cursor, false)
		if uint32(len(cursor)) < length {
			return "", fmt.Errorf("truncated software version payload")
		}
		return header + string(cursor[:length]), nil

	case ServiceConnectionInfo:
		// Replaces the service header with "<status> <ecu>" - matches the
		// reference parser, which assigns rather than appends here.
		if len(cursor) < 1 {
			return "", fmt.Errorf("truncated connection status")
		}
		status := ConnectionStatus(dltendian.ExtractUint8(&cursor, false))
		if len(cursor) < 4 {
			return "", fmt.Errorf("truncated connection info ecu")
		}
		return status.String() + " " + string(cursor[:4]), nil

	case ServiceTimezone:
		// Replaces the service header entirely - matches the reference
		// parser, which assigns rather than appends here.
		if len(cursor) < 4 {
			return "", fmt.Errorf("truncated timezone")
		}
		tz := dltendian.ExtractUint32(&cursor, false)
		msg := fmt.Sprintf("%d", tz)
		if len(cursor) >= 1 && dltendian.ExtractBool(&cursor, false) {
			msg += "DST"
		}
		return msg, nil

	default:
		return header, nil
	}
}
