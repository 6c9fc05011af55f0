package sai

import "github.com/racoon-project/racoon/pkg/schema"

// Adapter is the typed facade C3's downstream counterpart, the
// hardware synchronizer, drives. Every dispatch-table call is assumed
// safe to invoke concurrently, per the vendor contract; Adapter holds
// no mutable state beyond its cached table pointers once Open returns.
type Adapter interface {
	CreateSwitch(attrs []Attribute) (schema.OID, error)
	RemoveSwitch(id schema.OID) error
	SetSwitchAttribute(id schema.OID, attr Attribute) error
	GetSwitchAttribute(id schema.OID, attrID int32) (Attribute, error)

	SetPortAttribute(id schema.OID, attr Attribute) error
	GetPortAttribute(id schema.OID, attrID int32) (Attribute, error)
	GetPortStats(id schema.OID, counterIDs []int32) ([]uint64, error)
	ClearPortStats(id schema.OID, counterIDs []int32) error

	CreateVlan(switchID schema.OID, vlanID uint16) (schema.OID, error)
	RemoveVlan(id schema.OID) error
	CreateVlanMember(switchID, vlanID, bridgePortID schema.OID, mode TaggingMode) (schema.OID, error)
	RemoveVlanMember(id schema.OID) error
	SetVlanAttribute(id schema.OID, attr Attribute) error
	GetVlanAttribute(id schema.OID, attrID int32) (Attribute, error)

	CreateFdbEntry(switchID schema.OID, mac schema.MAC, bvID, bridgePortID schema.OID, entryType FdbEntryType) error
	RemoveFdbEntry(switchID schema.OID, mac schema.MAC, bvID schema.OID) error
	FlushFdbEntries(switchID schema.OID, attrs []Attribute) error

	CreateLag(switchID schema.OID, attrs []Attribute) (schema.OID, error)
	RemoveLag(id schema.OID) error
	CreateLagMember(switchID, lagID, portID schema.OID) (schema.OID, error)
	RemoveLagMember(id schema.OID) error
	SetLagAttribute(id schema.OID, attr Attribute) error

	Close() error
}
