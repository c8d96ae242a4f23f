package dltrecord

import "fmt"

// ServiceID identifies a DLT control-message service. Grounded on
// original_source/record.cpp's CtrlServiceId enum.
type ServiceID uint32

const (
	ServiceSetLogLevel ServiceID = iota + 1
	ServiceSetTraceStatus
	ServiceGetLogInfo
	ServiceGetDefaultLogLevel
	ServiceStoreConfig
	ServiceResetToFactoryDefault
	ServiceSetComInterfaceStatus
	ServiceSetComInterfaceMaxBandwidth
	ServiceSetVerboseMode
	ServiceSetMessageFiltering
	ServiceSetTimingPackets
	ServiceGetLocalTime
	ServiceUseECUID
	ServiceUseSessionID
	ServiceUseTimestamp
	ServiceUseExtendedHeader
	ServiceSetDefaultLogLevel
	ServiceSetDefaultTraceStatus
	ServiceGetSoftwareVersion
	ServiceMessageBufferOverflow
)

// Named but outside the dense 1..20 range, these still render through
// Name() as "service(<id>)" - the reference implementation's lookup table
// only covers the base range, so these identifiers are never looked up by
// name even though they have names here for readability.
const (
	ServiceUnregisterContext ServiceID = 0xf01
	ServiceConnectionInfo    ServiceID = 0xf02
	ServiceTimezone          ServiceID = 0xf03
	ServiceMarker            ServiceID = 0xf04
	ServiceCallswCInjection  ServiceID = 0xfff
)

var serviceIDNames = [...]string{
	"", "set_log_level", "set_trace_status", "get_log_info", "get_default_log_level", "store_config",
	"reset_to_factory_default",
	"set_com_interface_status", "set_com_interface_max_bandwidth", "set_verbose_mode", "set_message_filtering",
	"set_timing_packets",
	"get_local_time", "use_ecu_id", "use_session_id", "use_timestamp", "use_extended_header",
	"set_default_log_level", "set_default_trace_status",
	"get_software_version", "message_buffer_overflow",
}

// Name renders a service id the way DLT viewer does: a name for ids inside
// the dense base range, "service(<id>)" for everything else - including the
// named extended ids above.
func (id ServiceID) Name() string {
	if id >= ServiceSetLogLevel && id <= ServiceMessageBufferOverflow {
		return serviceIDNames[id]
	}
	return fmt.Sprintf("service(%d)", id)
}

// ReturnType is the result code of a control-message response.
type ReturnType uint8

const (
	ReturnOK ReturnType = iota
	ReturnNotSupported
	ReturnError
	returnType3
	returnType4
	returnType5
	returnType6
	returnType7
	ReturnNoMatchingContextID
)

var returnTypeNames = [...]string{
	"ok", "not_supported", "error", "3", "4", "5", "6", "7", "no_matching_context_id",
}

// Name returns the textual rendering of t, or an error if t is outside the
// known range - an invalid return code fails the record the same way a bad
// signature does.
func (t ReturnType) Name() (string, error) {
	if int(t) >= len(returnTypeNames) {
		return "", fmt.Errorf("invalid control return type %d", t)
	}
	return returnTypeNames[t], nil
}

// ConnectionStatus is the payload of a CONNECTION_INFO response.
type ConnectionStatus uint8

const (
	ConnectionDisconnected ConnectionStatus = 1
	ConnectionConnected    ConnectionStatus = 2
)

func (s ConnectionStatus) String() string {
	switch s {
	case ConnectionDisconnected:
		return "disconnected"
	case ConnectionConnected:
		return "connected"
	default:
		return "unknown"
	}
}
