package schema

// OID is an opaque 64-bit hardware object identifier issued by the
// vendor library. The upper bits encode object type on real hardware,
// but decoding is vendor-specific and unused here: type is tracked
// alongside the OID by whoever stores it, never derived from it.
type OID uint64

// TaggingMode is the per-member VLAN semantic applied to a bridge port.
type TaggingMode int

const (
	Untagged TaggingMode = iota
	Tagged
	PriorityTagged
)

// String renders the wire form of a TaggingMode used in
// VlanMemberConfig.TaggingMode.
func (m TaggingMode) String() string {
	switch m {
	case Tagged:
		return "tagged"
	case PriorityTagged:
		return "priority_tagged"
	default:
		return "untagged"
	}
}

// ParseTaggingMode parses a VlanMemberConfig.TaggingMode wire value,
// defaulting to Untagged for an empty string.
func ParseTaggingMode(s string) (TaggingMode, error) {
	switch s {
	case "", "untagged":
		return Untagged, nil
	case "tagged":
		return Tagged, nil
	case "priority_tagged":
		return PriorityTagged, nil
	default:
		return 0, &InvalidAttributeError{Attribute: "tagging_mode: " + s}
	}
}

// VlanConfig is the CONFIG_DB record written by an external
// configurator under VLAN|Vlan{id}.
type VlanConfig struct {
	VlanID      uint16 `json:"vlanid"`
	Description string `json:"description,omitempty"`
}

// VlanEntry is the APPL_DB projection of a VlanConfig, written by the
// configuration orchestrator under VLAN_TABLE:Vlan{id}. Same shape as
// VlanConfig by construction.
type VlanEntry struct {
	VlanID      uint16 `json:"vlanid"`
	Description string `json:"description,omitempty"`
}

// VlanAsicState is the realized-hardware descriptor written by the
// hardware synchronizer under ASIC_STATE:SAI_OBJECT_TYPE_VLAN:0x{oid}.
type VlanAsicState struct {
	VlanID uint16 `json:"vlanid"`
	OID    string `json:"oid"`
}

// VlanMemberConfig is the CONFIG_DB record for a VLAN membership.
type VlanMemberConfig struct {
	VlanID      uint16 `json:"vlanid"`
	Port        string `json:"port"`
	TaggingMode string `json:"tagging_mode,omitempty"`
}

// VlanMemberEntry is the APPL_DB projection of a VlanMemberConfig.
type VlanMemberEntry struct {
	VlanID      uint16 `json:"vlanid"`
	Port        string `json:"port"`
	TaggingMode string `json:"tagging_mode,omitempty"`
}

// VlanMemberAsicState is the realized-hardware descriptor for a VLAN
// member.
type VlanMemberAsicState struct {
	VlanID uint16 `json:"vlanid"`
	Port   string `json:"port"`
	OID    string `json:"oid"`
}

// LagConfig is the CONFIG_DB record for a link aggregation group.
type LagConfig struct {
	LagID uint32 `json:"lag_id"`
}

// LagEntry is the APPL_DB projection of a LagConfig.
type LagEntry struct {
	LagID uint32 `json:"lag_id"`
}

// LagAsicState is the realized-hardware descriptor for a LAG.
type LagAsicState struct {
	LagID uint32 `json:"lag_id"`
	OID   string `json:"oid"`
}

// LagMemberConfig is the CONFIG_DB record for a LAG membership.
type LagMemberConfig struct {
	LagID uint32 `json:"lag_id"`
	Port  string `json:"port"`
}

// LagMemberEntry is the APPL_DB projection of a LagMemberConfig.
type LagMemberEntry struct {
	LagID uint32 `json:"lag_id"`
	Port  string `json:"port"`
}

// LagMemberAsicState is the realized-hardware descriptor for a LAG
// member.
type LagMemberAsicState struct {
	LagID uint32 `json:"lag_id"`
	Port  string `json:"port"`
	OID   string `json:"oid"`
}

// FdbConfig is the CONFIG_DB record for a statically pinned FDB entry.
type FdbConfig struct {
	VlanID uint16 `json:"vlanid"`
	Mac    string `json:"mac"`
	Port   string `json:"port"`
	Type   string `json:"type"` // "static" (only static entries are user-configured)
}

// FdbEntry is the APPL_DB projection of an FdbConfig.
type FdbEntry struct {
	VlanID uint16 `json:"vlanid"`
	Mac    string `json:"mac"`
	Port   string `json:"port"`
	Type   string `json:"type"`
}

// FdbAsicState is the realized-hardware descriptor for an FDB entry.
// FDB entries are addressed by the (vlan, mac) composite, not by OID.
type FdbAsicState struct {
	VlanID uint16 `json:"vlanid"`
	Mac    string `json:"mac"`
	Port   string `json:"port"`
}

// PortConfig is the CONFIG_DB record describing a pre-provisioned
// physical port. Racoon never creates or removes ports; it only reads
// this table to pair port names with the OIDs the switch reports.
type PortConfig struct {
	Name  string `json:"name"`
	Speed string `json:"speed,omitempty"`
}
