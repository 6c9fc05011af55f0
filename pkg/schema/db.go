// Package schema holds the value types, key formats, channel names and
// error taxonomy shared by every component of the reconciliation pipeline.
// Nothing in this package talks to the store or the hardware; it is the
// vocabulary the other packages are written in.
package schema

// DB identifies one of the logical databases multiplexed over a single
// state-store connection. Keys in one DB never collide with keys in
// another.
type DB int

const (
	// Config holds user intent, written by an external configurator.
	Config DB = 4
	// Appl holds the normalized application state projected by the
	// configuration orchestrator.
	Appl DB = 0
	// Asic holds the realized hardware descriptors written by the
	// hardware synchronizer.
	Asic DB = 1
	// State holds ancillary operational state outside the
	// reconciliation chain.
	State DB = 6
	// Counters holds hardware counter snapshots.
	Counters DB = 2
)

// String returns the conventional SONiC-style name of the logical DB,
// used only for logging.
func (d DB) String() string {
	switch d {
	case Config:
		return "CONFIG_DB"
	case Appl:
		return "APPL_DB"
	case Asic:
		return "ASIC_DB"
	case State:
		return "STATE_DB"
	case Counters:
		return "COUNTERS_DB"
	default:
		return "DB(unknown)"
	}
}

// Table name constants for the config-tier (separated from the instance
// key by '|') and application/asic-tier (separated by ':') keyspaces.
const (
	TableVlan          = "VLAN"
	TableVlanMember    = "VLAN_MEMBER"
	TablePort          = "PORT"
	TableLag           = "LAG"
	TableLagMember     = "LAG_MEMBER"
	TableFdb           = "FDB"
	TableVlanApp       = "VLAN_TABLE"
	TableVlanMemberApp = "VLAN_MEMBER_TABLE"
	TableLagApp        = "LAG_TABLE"
	TableLagMemberApp  = "LAG_MEMBER_TABLE"
	TableFdbApp        = "FDB_TABLE"
	AsicStatePrefix    = "ASIC_STATE"
)

// SAI object-type tokens embedded in ASIC_STATE keys.
const (
	ObjectTypeVlan       = "SAI_OBJECT_TYPE_VLAN"
	ObjectTypeVlanMember = "SAI_OBJECT_TYPE_VLAN_MEMBER"
	ObjectTypeLag        = "SAI_OBJECT_TYPE_LAG"
	ObjectTypeLagMember  = "SAI_OBJECT_TYPE_LAG_MEMBER"
	ObjectTypeFdbEntry   = "SAI_OBJECT_TYPE_FDB_ENTRY"
	ObjectTypePort       = "SAI_OBJECT_TYPE_PORT"
)
