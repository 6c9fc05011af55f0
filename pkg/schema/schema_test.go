package schema

import (
	"errors"
	"testing"
)

func TestNewVlanIDRange(t *testing.T) {
	if _, err := NewVlanID(0); err == nil {
		t.Error("expected error for vlanid 0")
	}
	if _, err := NewVlanID(4095); err == nil {
		t.Error("expected error for vlanid 4095")
	}
	if _, err := NewVlanID(1); err != nil {
		t.Errorf("vlanid 1 should be valid: %v", err)
	}
	if _, err := NewVlanID(4094); err != nil {
		t.Errorf("vlanid 4094 should be valid: %v", err)
	}

	_, err := NewVlanID(5000)
	var vlanErr *InvalidVlanIdError
	if !errors.As(err, &vlanErr) {
		t.Fatalf("expected *InvalidVlanIdError, got %T", err)
	}
	if !errors.Is(err, ErrInvalidVlanID) {
		t.Error("expected errors.Is(err, ErrInvalidVlanID) to hold")
	}
}

func TestParseVlanName(t *testing.T) {
	id, err := ParseVlanName("Vlan100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 100 {
		t.Errorf("expected 100, got %d", id)
	}

	if _, err := ParseVlanName("notavlan"); err == nil {
		t.Error("expected error parsing malformed vlan name")
	}
}

func TestMACParseFormatRoundTrip(t *testing.T) {
	cases := []string{
		"AA-BB-CC-DD-EE-FF",
		"aa:bb:cc:dd:ee:ff",
		"aabb.ccdd.eeff",
	}

	var want MAC
	for i, s := range cases {
		mac, err := ParseMAC(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		if i == 0 {
			want = mac
		} else if mac != want {
			t.Errorf("%q parsed to %v, want %v", s, mac, want)
		}
		if mac.String() != "aa:bb:cc:dd:ee:ff" {
			t.Errorf("%q formatted to %q, want aa:bb:cc:dd:ee:ff", s, mac.String())
		}
	}
}

func TestParseMACInvalid(t *testing.T) {
	if _, err := ParseMAC("not-a-mac"); err == nil {
		t.Error("expected error for malformed mac")
	}
}

func TestPortSpeedRoundTrip(t *testing.T) {
	speeds := []PortSpeed{Speed1G, Speed10G, Speed25G, Speed40G, Speed50G, Speed100G, Speed200G, Speed400G}
	for _, s := range speeds {
		mbps := s.Mbps()
		got, ok := PortSpeedFromMbps(mbps)
		if !ok {
			t.Fatalf("PortSpeedFromMbps(%d) not found", mbps)
		}
		if got != s {
			t.Errorf("round trip mismatch: %v -> %d -> %v", s, mbps, got)
		}
	}
}

func TestKeyFormats(t *testing.T) {
	vlan100, _ := NewVlanID(100)

	if got, want := VlanConfigKey(vlan100), "VLAN|Vlan100"; got != want {
		t.Errorf("VlanConfigKey = %q, want %q", got, want)
	}
	if got, want := VlanApplKey(vlan100), "VLAN_TABLE:Vlan100"; got != want {
		t.Errorf("VlanApplKey = %q, want %q", got, want)
	}
	if got, want := VlanAsicKey(0xabc), "ASIC_STATE:SAI_OBJECT_TYPE_VLAN:0xabc"; got != want {
		t.Errorf("VlanAsicKey = %q, want %q", got, want)
	}
	if got, want := VlanMemberConfigKey(vlan100, "Ethernet0"), "VLAN_MEMBER|Vlan100|Ethernet0"; got != want {
		t.Errorf("VlanMemberConfigKey = %q, want %q", got, want)
	}
	if got, want := LagConfigKey(10), "LAG|PortChannel10"; got != want {
		t.Errorf("LagConfigKey = %q, want %q", got, want)
	}

	mac, _ := ParseMAC("aa:bb:cc:dd:ee:ff")
	if got, want := FdbApplKey(vlan100, mac), "FDB_TABLE:Vlan100:aa:bb:cc:dd:ee:ff"; got != want {
		t.Errorf("FdbApplKey = %q, want %q", got, want)
	}
}

func TestNotificationRoundTrip(t *testing.T) {
	n, err := NewNotification(OpSet, TableVlanApp, "Vlan100", VlanEntry{VlanID: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, err := n.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := ParseNotification(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Operation != OpSet || decoded.Key != "Vlan100" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestParseNotificationMalformed(t *testing.T) {
	if _, err := ParseNotification("not json"); err == nil {
		t.Error("expected error for malformed notification")
	}
}
