//go:build integration || e2e

package orchd_test

import (
	"testing"

	"github.com/racoon-project/racoon/internal/testutil"
	"github.com/racoon-project/racoon/pkg/dbclient"
	"github.com/racoon-project/racoon/pkg/orchd"
	"github.com/racoon-project/racoon/pkg/schema"
)

func newTestOrchestrator(t *testing.T) (*orchd.Orchestrator, *dbclient.Client) {
	t.Helper()
	testutil.RequireRedis(t)
	testutil.FlushAll(t)

	db, err := dbclient.New("redis://" + testutil.RedisAddr() + "/0")
	if err != nil {
		t.Fatalf("dbclient.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return orchd.New(db), db
}

func TestSyncVlansFromConfigDB(t *testing.T) {
	o, db := newTestOrchestrator(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(100)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	config := schema.VlanConfig{VlanID: 100, Description: "test vlan"}
	if err := db.Set(ctx, schema.Config, schema.VlanConfigKey(vlanID), config); err != nil {
		t.Fatalf("Set config: %v", err)
	}

	if err := o.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var entry schema.VlanEntry
	if err := db.Get(ctx, schema.Appl, schema.VlanApplKey(vlanID), &entry); err != nil {
		t.Fatalf("Get appl: %v", err)
	}
	if entry.VlanID != 100 || entry.Description != "test vlan" {
		t.Fatalf("unexpected appl entry: %+v", entry)
	}
	if got := o.Stats().VlanCount; got != 1 {
		t.Fatalf("VlanCount = %d, want 1", got)
	}
}

func TestVlanNotificationCreateAndDelete(t *testing.T) {
	o, db := newTestOrchestrator(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(200)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	config := schema.VlanConfig{VlanID: 200}
	if err := db.Set(ctx, schema.Config, schema.VlanConfigKey(vlanID), config); err != nil {
		t.Fatalf("Set config: %v", err)
	}

	n, err := schema.NewNotification(schema.OpSet, schema.TableVlan, schema.VlanConfigKey(vlanID), nil)
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	o.OnNotification(ctx, schema.ChannelConfigVlan, mustEncode(t, n))

	exists, err := db.Exists(ctx, schema.Appl, schema.VlanApplKey(vlanID))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatal("expected vlan appl entry to exist after SET notification")
	}

	del, err := schema.NewNotification(schema.OpDel, schema.TableVlan, schema.VlanConfigKey(vlanID), nil)
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	o.OnNotification(ctx, schema.ChannelConfigVlan, mustEncode(t, del))

	exists, err = db.Exists(ctx, schema.Appl, schema.VlanApplKey(vlanID))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("expected vlan appl entry to be removed after DEL notification")
	}
}

func TestInvalidVlanIDNotPropagated(t *testing.T) {
	o, db := newTestOrchestrator(t)
	ctx := testutil.Context(t)

	// A record whose body is out of range never reaches APPL_DB, and
	// the orchestrator keeps processing afterwards.
	if err := db.Set(ctx, schema.Config, "VLAN|Vlan5000", map[string]interface{}{"vlanid": 5000}); err != nil {
		t.Fatalf("Set config: %v", err)
	}

	n, err := schema.NewNotification(schema.OpSet, schema.TableVlan, "VLAN|Vlan5000", nil)
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	o.OnNotification(ctx, schema.ChannelConfigVlan, mustEncode(t, n))

	keys, err := db.Keys(ctx, schema.Appl, schema.TableVlanApp+":*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no appl entries for invalid vlan, got %v", keys)
	}
	if got := o.Stats().VlanCount; got != 0 {
		t.Fatalf("VlanCount = %d, want 0", got)
	}
}

func TestMalformedNotificationDropped(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	ctx := testutil.Context(t)

	o.OnNotification(ctx, schema.ChannelConfigVlan, "not json at all")

	if n := testutil.KeyCount(t, int(schema.Appl)); n != 0 {
		t.Fatalf("expected no appl writes after malformed notification, got %d keys", n)
	}
}

func TestVlanMemberProjection(t *testing.T) {
	o, db := newTestOrchestrator(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(100)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	if err := db.Set(ctx, schema.Config, schema.VlanConfigKey(vlanID), schema.VlanConfig{VlanID: 100}); err != nil {
		t.Fatalf("Set vlan config: %v", err)
	}
	member := schema.VlanMemberConfig{VlanID: 100, Port: "Ethernet0", TaggingMode: "tagged"}
	if err := db.Set(ctx, schema.Config, schema.VlanMemberConfigKey(vlanID, "Ethernet0"), member); err != nil {
		t.Fatalf("Set member config: %v", err)
	}

	if err := o.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var entry schema.VlanMemberEntry
	if err := db.Get(ctx, schema.Appl, schema.VlanMemberApplKey(vlanID, "Ethernet0"), &entry); err != nil {
		t.Fatalf("Get appl member: %v", err)
	}
	if entry.Port != "Ethernet0" || entry.TaggingMode != "tagged" {
		t.Fatalf("unexpected member entry: %+v", entry)
	}
	if got := o.Stats().VlanMemberCount; got != 1 {
		t.Fatalf("VlanMemberCount = %d, want 1", got)
	}
}

func TestProjectionIdempotent(t *testing.T) {
	o, db := newTestOrchestrator(t)
	ctx := testutil.Context(t)

	vlanID, err := schema.NewVlanID(300)
	if err != nil {
		t.Fatalf("NewVlanID: %v", err)
	}
	if err := db.Set(ctx, schema.Config, schema.VlanConfigKey(vlanID), schema.VlanConfig{VlanID: 300}); err != nil {
		t.Fatalf("Set config: %v", err)
	}

	n, err := schema.NewNotification(schema.OpSet, schema.TableVlan, schema.VlanConfigKey(vlanID), nil)
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	payload := mustEncode(t, n)
	o.OnNotification(ctx, schema.ChannelConfigVlan, payload)
	o.OnNotification(ctx, schema.ChannelConfigVlan, payload)

	var entry schema.VlanEntry
	if err := db.Get(ctx, schema.Appl, schema.VlanApplKey(vlanID), &entry); err != nil {
		t.Fatalf("Get appl: %v", err)
	}
	if entry.VlanID != 300 {
		t.Fatalf("unexpected appl entry: %+v", entry)
	}
	if got := o.Stats().VlanCount; got != 1 {
		t.Fatalf("VlanCount = %d, want 1 after duplicate SET", got)
	}

	del, err := schema.NewNotification(schema.OpDel, schema.TableVlan, schema.VlanConfigKey(vlanID), nil)
	if err != nil {
		t.Fatalf("NewNotification: %v", err)
	}
	delPayload := mustEncode(t, del)
	o.OnNotification(ctx, schema.ChannelConfigVlan, delPayload)
	o.OnNotification(ctx, schema.ChannelConfigVlan, delPayload)

	exists, err := db.Exists(ctx, schema.Appl, schema.VlanApplKey(vlanID))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("expected appl entry gone after DEL")
	}
}

func mustEncode(t *testing.T, n schema.Notification) string {
	t.Helper()
	payload, err := n.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return payload
}
