package schema

import (
	"strconv"
	"strings"
)

// VlanID is a VLAN identifier constrained to [1,4094]. The zero value
// is not a valid VlanID; always construct through NewVlanID.
type VlanID uint16

const (
	minVlanID = 1
	maxVlanID = 4094
)

// NewVlanID validates id and returns the constructed VlanID, or
// InvalidVlanId if out of range.
func NewVlanID(id uint16) (VlanID, error) {
	if id < minVlanID || id > maxVlanID {
		return 0, &InvalidVlanIdError{ID: id}
	}
	return VlanID(id), nil
}

// ParseVlanName parses "Vlan100" into a VlanID.
func ParseVlanName(name string) (VlanID, error) {
	numeric := strings.TrimPrefix(name, "Vlan")
	n, err := strconv.ParseUint(numeric, 10, 16)
	if err != nil {
		return 0, &InvalidVlanIdError{ID: 0, Reason: "not a VLAN name: " + name}
	}
	return NewVlanID(uint16(n))
}
