package sai

import (
	"testing"

	"github.com/racoon-project/racoon/pkg/schema"
)

func TestMockAdapterCreateVlanDuplicate(t *testing.T) {
	m := NewMockAdapter()

	oid, err := m.CreateVlan(1, 100)
	if err != nil {
		t.Fatalf("CreateVlan: %v", err)
	}
	if oid == 0 {
		t.Fatal("expected nonzero oid")
	}

	if _, err := m.CreateVlan(1, 100); err == nil {
		t.Fatal("expected error creating duplicate vlan")
	}
}

func TestMockAdapterRemoveVlanNotFound(t *testing.T) {
	m := NewMockAdapter()
	if err := m.RemoveVlan(999); err == nil {
		t.Fatal("expected error removing untracked vlan")
	}
}

func TestMockAdapterVlanMemberDuplicate(t *testing.T) {
	m := NewMockAdapter()
	vlanOID, err := m.CreateVlan(1, 100)
	if err != nil {
		t.Fatalf("CreateVlan: %v", err)
	}

	m.SeedPort(42)
	memberOID, err := m.CreateVlanMember(1, vlanOID, 42, TaggingModeUntagged)
	if err != nil {
		t.Fatalf("CreateVlanMember: %v", err)
	}
	if memberOID == 0 {
		t.Fatal("expected nonzero member oid")
	}

	if _, err := m.CreateVlanMember(1, vlanOID, 42, TaggingModeUntagged); err == nil {
		t.Fatal("expected error creating duplicate vlan member")
	}
}

func TestMockAdapterFdbFlushPreservesStatic(t *testing.T) {
	m := NewMockAdapter()
	mac, err := schema.ParseMAC("aa:bb:cc:dd:ee:ff")
	if err != nil {
		t.Fatalf("ParseMAC: %v", err)
	}

	if err := m.CreateFdbEntry(1, mac, 2, 3, FdbEntryStatic); err != nil {
		t.Fatalf("CreateFdbEntry: %v", err)
	}
	if err := m.FlushFdbEntries(1, nil); err != nil {
		t.Fatalf("FlushFdbEntries: %v", err)
	}
	if len(m.FdbEntries) != 1 {
		t.Fatalf("expected static entry to survive flush, got %d entries", len(m.FdbEntries))
	}
}

func TestMockAdapterFailNext(t *testing.T) {
	m := NewMockAdapter()
	m.FailNext = &schema.HwError{Op: "create_vlan", Code: -1, Msg: "injected"}

	if _, err := m.CreateVlan(1, 100); err == nil {
		t.Fatal("expected injected failure")
	}
	if _, err := m.CreateVlan(1, 100); err != nil {
		t.Fatalf("FailNext should only apply once, got: %v", err)
	}
}
