package syncd

import (
	"testing"

	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
)

func TestParseAsicOID(t *testing.T) {
	oid, ok := parseAsicOID("ASIC_STATE:SAI_OBJECT_TYPE_VLAN:0x2600000000063d")
	if !ok {
		t.Fatal("expected key to parse")
	}
	if oid != 0x2600000000063d {
		t.Errorf("oid = %#x, want 0x2600000000063d", uint64(oid))
	}

	if _, ok := parseAsicOID("ASIC_STATE:SAI_OBJECT_TYPE_VLAN:garbage"); ok {
		t.Error("expected malformed key to be rejected")
	}
	if _, ok := parseAsicOID("no-oid-suffix"); ok {
		t.Error("expected key without 0x suffix to be rejected")
	}
}

func TestPortSortKey(t *testing.T) {
	if portSortKey("Ethernet12") != 12 {
		t.Errorf("portSortKey(Ethernet12) = %d, want 12", portSortKey("Ethernet12"))
	}
	if portSortKey("Ethernet0") != 0 {
		t.Errorf("portSortKey(Ethernet0) = %d, want 0", portSortKey("Ethernet0"))
	}
	// Ethernet2 must sort before Ethernet10.
	if !(portSortKey("Ethernet2") < portSortKey("Ethernet10")) {
		t.Error("expected numeric, not lexicographic, ordering")
	}
	if portSortKey("noport") != -1 {
		t.Errorf("portSortKey(noport) = %d, want -1", portSortKey("noport"))
	}
}

func TestIsAlreadyExistsAndIsNotFound(t *testing.T) {
	exists := &schema.HwError{Op: "create_vlan", Code: int32(sai.StatusItemAlreadyExists), Msg: "ITEM_ALREADY_EXISTS"}
	if !isAlreadyExists(exists) {
		t.Error("expected isAlreadyExists to hold for ITEM_ALREADY_EXISTS")
	}
	if isNotFound(exists) {
		t.Error("isNotFound should not hold for ITEM_ALREADY_EXISTS")
	}

	notFound := &schema.HwError{Op: "remove_vlan", Code: int32(sai.StatusItemNotFound), Msg: "ITEM_NOT_FOUND"}
	if !isNotFound(notFound) {
		t.Error("expected isNotFound to hold for ITEM_NOT_FOUND")
	}

	if isAlreadyExists(&schema.InternalError{Msg: "other"}) {
		t.Error("isAlreadyExists should not hold for non-hardware errors")
	}
}
