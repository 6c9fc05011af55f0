package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below wrap one of these via Unwrap so
// callers can test with errors.Is without caring about the concrete
// type.
var (
	ErrHardware             = errors.New("hardware call failed")
	ErrStoreConnection      = errors.New("state store connection failed")
	ErrStoreNotFound        = errors.New("key not found in state store")
	ErrStoreInvalidFormat   = errors.New("state store value has invalid format")
	ErrStoreOperation       = errors.New("state store operation failed")
	ErrStoreSerialization   = errors.New("state store value serialization failed")
	ErrConfig               = errors.New("configuration invalid")
	ErrLibraryLoad          = errors.New("vendor library load failed")
	ErrInvalidVlanID        = errors.New("vlan id out of range")
	ErrInvalidMacAddress    = errors.New("mac address malformed")
	ErrInvalidAttribute     = errors.New("attribute value invalid")
	ErrPortNotFound         = errors.New("port not found")
	ErrVlanExists           = errors.New("vlan already exists")
	ErrVlanNotFound         = errors.New("vlan not found")
	ErrFdbNotFound          = errors.New("fdb entry not found")
	ErrLagNotFound          = errors.New("lag not found")
	ErrOidNotFound          = errors.New("oid not found")
	ErrDependencyNotSatisfied = errors.New("dependency not satisfied")
	ErrInternal             = errors.New("internal error")
)

// HwError reports a failed vendor call; Code is the vendor's own status
// constant, preserved verbatim for diagnostics.
type HwError struct {
	Op   string
	Code int32
	Msg  string
}

func (e *HwError) Error() string {
	return fmt.Sprintf("hardware call %s failed: %s (code %d)", e.Op, e.Msg, e.Code)
}

func (e *HwError) Unwrap() error { return ErrHardware }

// StoreErrorKind distinguishes the state-store failure modes named in
// the error taxonomy.
type StoreErrorKind int

const (
	StoreConnection StoreErrorKind = iota
	StoreNotFound
	StoreInvalidFormat
	StoreOperation
	StoreSerialization
)

// StoreError reports a state-store client failure.
type StoreError struct {
	Kind  StoreErrorKind
	DB    DB
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error on %s[%s]: %v", e.DB, e.Key, e.Cause)
}

func (e *StoreError) Unwrap() error {
	switch e.Kind {
	case StoreNotFound:
		return ErrStoreNotFound
	case StoreInvalidFormat:
		return ErrStoreInvalidFormat
	case StoreSerialization:
		return ErrStoreSerialization
	case StoreConnection:
		return ErrStoreConnection
	default:
		return ErrStoreOperation
	}
}

// NewStoreError constructs a StoreError, wrapping cause.
func NewStoreError(kind StoreErrorKind, db DB, key string, cause error) *StoreError {
	return &StoreError{Kind: kind, DB: db, Key: key, Cause: cause}
}

// ConfigError reports malformed process configuration.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config: " + e.Msg }
func (e *ConfigError) Unwrap() error { return ErrConfig }

// LibraryLoadError reports a vendor shared library that cannot be
// loaded, or a required symbol that is missing from it.
type LibraryLoadError struct {
	Path string
	Msg  string
}

func (e *LibraryLoadError) Error() string {
	return fmt.Sprintf("loading %s: %s", e.Path, e.Msg)
}

func (e *LibraryLoadError) Unwrap() error { return ErrLibraryLoad }

// InvalidVlanIdError reports a VlanConfig whose vlanid is out of range.
type InvalidVlanIdError struct {
	ID     uint16
	Reason string
}

func (e *InvalidVlanIdError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid vlan id %d: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid vlan id %d: must be in [1,4094]", e.ID)
}

func (e *InvalidVlanIdError) Unwrap() error { return ErrInvalidVlanID }

// InvalidMacAddressError reports a MAC string that failed to parse.
type InvalidMacAddressError struct {
	Value string
}

func (e *InvalidMacAddressError) Error() string {
	return fmt.Sprintf("invalid mac address %q", e.Value)
}

func (e *InvalidMacAddressError) Unwrap() error { return ErrInvalidMacAddress }

// InvalidAttributeError reports a hardware attribute that could not be
// marshaled to the vendor ABI.
type InvalidAttributeError struct {
	Attribute string
}

func (e *InvalidAttributeError) Error() string {
	return "invalid attribute: " + e.Attribute
}

func (e *InvalidAttributeError) Unwrap() error { return ErrInvalidAttribute }

// PortNotFoundError reports a reference to a port unknown to the
// synchronizer's port-to-OID table.
type PortNotFoundError struct {
	Name string
}

func (e *PortNotFoundError) Error() string { return "port not found: " + e.Name }
func (e *PortNotFoundError) Unwrap() error { return ErrPortNotFound }

// VlanExistsError reports an attempt to create a VLAN already realized.
type VlanExistsError struct {
	ID VlanID
}

func (e *VlanExistsError) Error() string { return fmt.Sprintf("vlan %d already exists", e.ID) }
func (e *VlanExistsError) Unwrap() error { return ErrVlanExists }

// VlanNotFoundError reports a reference to an unrealized VLAN.
type VlanNotFoundError struct {
	ID VlanID
}

func (e *VlanNotFoundError) Error() string { return fmt.Sprintf("vlan %d not found", e.ID) }
func (e *VlanNotFoundError) Unwrap() error { return ErrVlanNotFound }

// FdbNotFoundError reports a reference to an unrealized FDB entry.
type FdbNotFoundError struct {
	Key string
}

func (e *FdbNotFoundError) Error() string { return "fdb entry not found: " + e.Key }
func (e *FdbNotFoundError) Unwrap() error { return ErrFdbNotFound }

// LagNotFoundError reports a reference to an unrealized LAG.
type LagNotFoundError struct {
	Name string
}

func (e *LagNotFoundError) Error() string { return "lag not found: " + e.Name }
func (e *LagNotFoundError) Unwrap() error { return ErrLagNotFound }

// OidNotFoundError reports a hardware OID absent from the realized-state
// map it was expected to be found in.
type OidNotFoundError struct {
	OID OID
}

func (e *OidNotFoundError) Error() string { return fmt.Sprintf("oid 0x%x not found", uint64(e.OID)) }
func (e *OidNotFoundError) Unwrap() error { return ErrOidNotFound }

// DependencyNotSatisfiedError reports an operation whose prerequisite
// object (e.g. a VLAN a member is being added to) does not yet exist
// in the synchronizer's realized state.
type DependencyNotSatisfiedError struct {
	Resource  string
	DependsOn string
}

func (e *DependencyNotSatisfiedError) Error() string {
	return fmt.Sprintf("%s requires %s which is not yet realized", e.Resource, e.DependsOn)
}

func (e *DependencyNotSatisfiedError) Unwrap() error { return ErrDependencyNotSatisfied }

// InternalError is the last-resort error for conditions that should be
// unreachable.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal: " + e.Msg }
func (e *InternalError) Unwrap() error { return ErrInternal }
