package sai

import "github.com/racoon-project/racoon/pkg/schema"

// Status is the vendor's own status code, preserved verbatim in any
// resulting HwError for diagnostics.
type Status int32

// Status codes from the vendor status enumeration this adapter depends
// on. Values are internal to this minimal header-equivalent; only
// Success is guaranteed to be zero.
const (
	StatusSuccess               Status = 0
	StatusFailure               Status = -1
	StatusNotSupported          Status = -2
	StatusNoMemory              Status = -3
	StatusInsufficientResources Status = -4
	StatusInvalidParameter      Status = -5
	StatusItemAlreadyExists     Status = -6
	StatusItemNotFound          Status = -7
	StatusBufferOverflow        Status = -8
	StatusInvalidVlanID         Status = -9
	StatusUninitialized         Status = -10
	StatusTableFull             Status = -11
	StatusNotImplemented        Status = -12
	StatusObjectInUse           Status = -13
	StatusInvalidObjectID       Status = -14
)

// String renders a human-readable name for logging, falling back to
// the numeric code for anything this adapter doesn't name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusNoMemory:
		return "NO_MEMORY"
	case StatusInsufficientResources:
		return "INSUFFICIENT_RESOURCES"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusItemAlreadyExists:
		return "ITEM_ALREADY_EXISTS"
	case StatusItemNotFound:
		return "ITEM_NOT_FOUND"
	case StatusBufferOverflow:
		return "BUFFER_OVERFLOW"
	case StatusInvalidVlanID:
		return "INVALID_VLAN_ID"
	case StatusUninitialized:
		return "UNINITIALIZED"
	case StatusTableFull:
		return "TABLE_FULL"
	case StatusNotImplemented:
		return "NOT_IMPLEMENTED"
	case StatusObjectInUse:
		return "OBJECT_IN_USE"
	case StatusInvalidObjectID:
		return "INVALID_OBJECT_ID"
	default:
		return "UNKNOWN_STATUS"
	}
}

// IsSuccess reports whether the status represents success.
func (s Status) IsSuccess() bool { return s == StatusSuccess }

// toResult converts a raw vendor status, as returned from a dispatch
// table call for op, to a Go error (nil on success).
func toResult(op string, s Status) error {
	if s.IsSuccess() {
		return nil
	}
	return &schema.HwError{Op: op, Code: int32(s), Msg: s.String()}
}
