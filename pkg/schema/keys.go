package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLagName parses "PortChannel10" into its numeric id.
func ParseLagName(name string) (uint32, error) {
	numeric := strings.TrimPrefix(name, "PortChannel")
	n, err := strconv.ParseUint(numeric, 10, 32)
	if err != nil {
		return 0, &InvalidAttributeError{Attribute: "not a LAG name: " + name}
	}
	return uint32(n), nil
}

// VlanName renders the instance name ("Vlan100") used as the
// table-relative portion of every VLAN key.
func VlanName(id VlanID) string {
	return fmt.Sprintf("Vlan%d", uint16(id))
}

// VlanConfigKey returns the CONFIG_DB key for a VLAN, e.g. "VLAN|Vlan100".
func VlanConfigKey(id VlanID) string {
	return TableVlan + "|" + VlanName(id)
}

// VlanApplKey returns the APPL_DB key for a VLAN, e.g. "VLAN_TABLE:Vlan100".
func VlanApplKey(id VlanID) string {
	return TableVlanApp + ":" + VlanName(id)
}

// VlanAsicKey returns the ASIC_STATE key for a realized VLAN OID.
func VlanAsicKey(oid OID) string {
	return fmt.Sprintf("%s:%s:0x%x", AsicStatePrefix, ObjectTypeVlan, uint64(oid))
}

// VlanMemberConfigKey returns "VLAN_MEMBER|Vlan100|Ethernet0".
func VlanMemberConfigKey(id VlanID, port string) string {
	return TableVlanMember + "|" + VlanName(id) + "|" + port
}

// VlanMemberApplKey returns "VLAN_MEMBER_TABLE:Vlan100:Ethernet0".
func VlanMemberApplKey(id VlanID, port string) string {
	return TableVlanMemberApp + ":" + VlanName(id) + ":" + port
}

// VlanMemberAsicKey returns the ASIC_STATE key for a realized VLAN member OID.
func VlanMemberAsicKey(oid OID) string {
	return fmt.Sprintf("%s:%s:0x%x", AsicStatePrefix, ObjectTypeVlanMember, uint64(oid))
}

// PortConfigKey returns "PORT|Ethernet0".
func PortConfigKey(name string) string {
	return TablePort + "|" + name
}

// LagName renders the instance name ("PortChannel10").
func LagName(id uint32) string {
	return fmt.Sprintf("PortChannel%d", id)
}

// LagConfigKey returns "LAG|PortChannel10".
func LagConfigKey(id uint32) string {
	return TableLag + "|" + LagName(id)
}

// LagApplKey returns "LAG_TABLE:PortChannel10".
func LagApplKey(id uint32) string {
	return TableLagApp + ":" + LagName(id)
}

// LagAsicKey returns the ASIC_STATE key for a realized LAG OID.
func LagAsicKey(oid OID) string {
	return fmt.Sprintf("%s:%s:0x%x", AsicStatePrefix, ObjectTypeLag, uint64(oid))
}

// LagMemberConfigKey returns "LAG_MEMBER|PortChannel10|Ethernet0".
func LagMemberConfigKey(id uint32, port string) string {
	return TableLagMember + "|" + LagName(id) + "|" + port
}

// LagMemberApplKey returns "LAG_MEMBER_TABLE:PortChannel10:Ethernet0".
func LagMemberApplKey(id uint32, port string) string {
	return TableLagMemberApp + ":" + LagName(id) + ":" + port
}

// LagMemberAsicKey returns the ASIC_STATE key for a realized LAG member OID.
func LagMemberAsicKey(oid OID) string {
	return fmt.Sprintf("%s:%s:0x%x", AsicStatePrefix, ObjectTypeLagMember, uint64(oid))
}

// FdbConfigKey returns "FDB|Vlan100|aa:bb:cc:dd:ee:ff".
func FdbConfigKey(id VlanID, mac MAC) string {
	return TableFdb + "|" + VlanName(id) + "|" + mac.String()
}

// FdbApplKey returns "FDB_TABLE:Vlan100:aa:bb:cc:dd:ee:ff".
func FdbApplKey(id VlanID, mac MAC) string {
	return TableFdbApp + ":" + VlanName(id) + ":" + mac.String()
}

// FdbAsicKey returns the ASIC_STATE key for a static FDB entry. FDB
// entries are not OID-addressed in SAI; the composite (vlan, mac) key
// is the identity.
func FdbAsicKey(id VlanID, mac MAC) string {
	return fmt.Sprintf("%s:%s:%d:%s", AsicStatePrefix, ObjectTypeFdbEntry, uint16(id), mac.String())
}
