//go:build integration || e2e

package syncd_test

import (
	"testing"

	"github.com/racoon-project/racoon/internal/testutil"
	"github.com/racoon-project/racoon/pkg/dbclient"
	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
	"github.com/racoon-project/racoon/pkg/syncd"
)

func newTestSynchronizer(t *testing.T) (*syncd.Synchronizer, *dbclient.Client, *sai.MockAdapter) {
	t.Helper()
	testutil.RequireRedis(t)
	testutil.FlushAll(t)

	db, err := dbclient.New("redis://" + testutil.RedisAddr() + "/0")
	if err != nil {
		t.Fatalf("dbclient.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	adapter := sai.NewMockAdapter()
	return syncd.New(db, adapter, 1), db, adapter
}

func TestReconcileVlanFromApplDB(t *testing.T) {
	s, db, _ := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(100)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	entry := schema.VlanEntry{VlanID: 100}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), entry); err != nil {
		t.Fatalf("Set appl: %v", err)
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if got := s.Stats().VlanCount; got != 1 {
		t.Fatalf("VlanCount = %d, want 1", got)
	}

	keys, err := db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeVlan+":*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected one vlan asic state key, got %d", len(keys))
	}
}

func TestRestartRecoversFromAsicState(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(200)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	entry := schema.VlanEntry{VlanID: 200}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), entry); err != nil {
		t.Fatalf("Set appl: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := len(adapter.Vlans); got != 1 {
		t.Fatalf("adapter.Vlans = %d, want 1", got)
	}

	// A fresh synchronizer, same adapter and store: restart recovery
	// should find the vlan already realized and not call CreateVlan
	// again.
	s2 := syncd.New(db, adapter, 1)
	if err := s2.Start(ctx); err != nil {
		t.Fatalf("Start (restart): %v", err)
	}
	if got := s2.Stats().VlanCount; got != 1 {
		t.Fatalf("VlanCount after restart = %d, want 1", got)
	}
	if got := len(adapter.Vlans); got != 1 {
		t.Fatalf("adapter.Vlans after restart = %d, want 1 (no duplicate create)", got)
	}
}

func TestDoubleSetRealizesOnce(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(300)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), schema.VlanEntry{VlanID: 300}); err != nil {
		t.Fatalf("Set appl: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	set, err := schema.NewNotification(schema.OpSet, schema.TableVlanApp, "Vlan300", schema.VlanEntry{VlanID: 300})
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	payload, err := set.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s.OnNotification(ctx, schema.ChannelVlanTable, payload)
	s.OnNotification(ctx, schema.ChannelVlanTable, payload)

	if got := len(adapter.Vlans); got != 1 {
		t.Fatalf("adapter.Vlans = %d, want 1 after duplicate SET", got)
	}
	keys, err := db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeVlan+":*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected one asic state key, got %d", len(keys))
	}
}

func TestVlanMemberRealization(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	// One configured port, seeded into the mock's port list so the
	// bootstrap scan pairs it by position.
	if err := db.Set(ctx, schema.Config, schema.PortConfigKey("Ethernet0"), schema.PortConfig{Name: "Ethernet0"}); err != nil {
		t.Fatalf("Set port config: %v", err)
	}
	adapter.SeedPort(1000)

	vlanID, err := schema.NewVlanID(100)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), schema.VlanEntry{VlanID: 100}); err != nil {
		t.Fatalf("Set vlan appl: %v", err)
	}
	member := schema.VlanMemberEntry{VlanID: 100, Port: "Ethernet0", TaggingMode: "untagged"}
	if err := db.Set(ctx, schema.Appl, schema.VlanMemberApplKey(vlanID, "Ethernet0"), member); err != nil {
		t.Fatalf("Set member appl: %v", err)
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if got := s.Stats().PortCount; got != 1 {
		t.Fatalf("PortCount = %d, want 1", got)
	}
	if got := s.Stats().VlanMemberCount; got != 1 {
		t.Fatalf("VlanMemberCount = %d, want 1", got)
	}
	if got := len(adapter.VlanMembers); got != 1 {
		t.Fatalf("adapter.VlanMembers = %d, want 1", got)
	}

	keys, err := db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeVlanMember+":*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected one member asic state key, got %d", len(keys))
	}
}

func TestVlanMemberWithoutVlanNotRealized(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	if err := db.Set(ctx, schema.Config, schema.PortConfigKey("Ethernet0"), schema.PortConfig{Name: "Ethernet0"}); err != nil {
		t.Fatalf("Set port config: %v", err)
	}
	adapter.SeedPort(1000)

	// The member's VLAN was never projected; realization must fail
	// with a dependency error and leave hardware untouched, not crash.
	vlanID, err := schema.NewVlanID(100)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	member := schema.VlanMemberEntry{VlanID: 100, Port: "Ethernet0"}
	if err := db.Set(ctx, schema.Appl, schema.VlanMemberApplKey(vlanID, "Ethernet0"), member); err != nil {
		t.Fatalf("Set member appl: %v", err)
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := len(adapter.VlanMembers); got != 0 {
		t.Fatalf("adapter.VlanMembers = %d, want 0 without vlan", got)
	}
	if got := s.Stats().VlanMemberCount; got != 0 {
		t.Fatalf("VlanMemberCount = %d, want 0", got)
	}
}

func TestStaleAsicEntriesGarbageCollected(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(400)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), schema.VlanEntry{VlanID: 400}); err != nil {
		t.Fatalf("Set appl: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Drop the appl entry behind the synchronizer's back and restart: a
	// realized vlan no longer named by APPL_DB must be removed from
	// hardware and from ASIC_STATE.
	if err := db.Del(ctx, schema.Appl, schema.VlanApplKey(vlanID)); err != nil {
		t.Fatalf("Del appl: %v", err)
	}
	s2 := syncd.New(db, adapter, 1)
	if err := s2.Start(ctx); err != nil {
		t.Fatalf("Start (restart): %v", err)
	}

	if got := len(adapter.Vlans); got != 0 {
		t.Fatalf("adapter.Vlans = %d, want 0 after garbage collection", got)
	}
	keys, err := db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeVlan+":*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected asic state cleaned up, got %v", keys)
	}
}

func TestFdbRealization(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	if err := db.Set(ctx, schema.Config, schema.PortConfigKey("Ethernet0"), schema.PortConfig{Name: "Ethernet0"}); err != nil {
		t.Fatalf("Set port config: %v", err)
	}
	adapter.SeedPort(1000)

	vlanID, err := schema.NewVlanID(100)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), schema.VlanEntry{VlanID: 100}); err != nil {
		t.Fatalf("Set vlan appl: %v", err)
	}

	mac, err := schema.ParseMAC("aa:bb:cc:dd:ee:ff")
	if err != nil {
		t.Fatalf("ParseMAC: %v", err)
	}
	fdb := schema.FdbEntry{VlanID: 100, Mac: mac.String(), Port: "Ethernet0", Type: "static"}
	if err := db.Set(ctx, schema.Appl, schema.FdbApplKey(vlanID, mac), fdb); err != nil {
		t.Fatalf("Set fdb appl: %v", err)
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if got := len(adapter.FdbEntries); got != 1 {
		t.Fatalf("adapter.FdbEntries = %d, want 1", got)
	}
	exists, err := db.Exists(ctx, schema.Asic, schema.FdbAsicKey(vlanID, mac))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatal("expected fdb asic state entry")
	}
	if got := s.Stats().FdbCount; got != 1 {
		t.Fatalf("FdbCount = %d, want 1", got)
	}
}

func TestLagAndMemberRealization(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	if err := db.Set(ctx, schema.Config, schema.PortConfigKey("Ethernet4"), schema.PortConfig{Name: "Ethernet4"}); err != nil {
		t.Fatalf("Set port config: %v", err)
	}
	adapter.SeedPort(1004)

	if err := db.Set(ctx, schema.Appl, schema.LagApplKey(10), schema.LagEntry{LagID: 10}); err != nil {
		t.Fatalf("Set lag appl: %v", err)
	}
	member := schema.LagMemberEntry{LagID: 10, Port: "Ethernet4"}
	if err := db.Set(ctx, schema.Appl, schema.LagMemberApplKey(10, "Ethernet4"), member); err != nil {
		t.Fatalf("Set lag member appl: %v", err)
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if got := len(adapter.Lags); got != 1 {
		t.Fatalf("adapter.Lags = %d, want 1", got)
	}
	if got := len(adapter.LagMembers); got != 1 {
		t.Fatalf("adapter.LagMembers = %d, want 1", got)
	}
	if got := s.Stats().LagCount; got != 1 {
		t.Fatalf("LagCount = %d, want 1", got)
	}
	if got := s.Stats().LagMemberCount; got != 1 {
		t.Fatalf("LagMemberCount = %d, want 1", got)
	}
}

func TestDeletingApplEntryRemovesFromHardware(t *testing.T) {
	s, db, adapter := newTestSynchronizer(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(300)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	entry := schema.VlanEntry{VlanID: 300}
	if err := db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), entry); err != nil {
		t.Fatalf("Set appl: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	del, err := schema.NewNotification(schema.OpDel, schema.TableVlanApp, "Vlan300", nil)
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	payload, err := del.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s.OnNotification(ctx, schema.ChannelVlanTable, payload)

	if got := len(adapter.Vlans); got != 0 {
		t.Fatalf("adapter.Vlans = %d, want 0 after delete", got)
	}
	if got := s.Stats().VlanCount; got != 0 {
		t.Fatalf("VlanCount = %d, want 0 after delete", got)
	}
}
