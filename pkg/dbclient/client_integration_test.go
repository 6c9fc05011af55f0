//go:build integration || e2e

package dbclient

import (
	"context"
	"testing"
	"time"

	"github.com/racoon-project/racoon/internal/testutil"
	"github.com/racoon-project/racoon/pkg/schema"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	testutil.SkipIfNoRedis(t)
	testutil.FlushAll(t)

	c, err := New("redis://" + testutil.RedisAddr())
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSetGetDel(t *testing.T) {
	c := newTestClient(t)
	ctx := testutil.Context(t)

	entry := schema.VlanEntry{VlanID: 100, Description: "test"}
	if err := c.Set(ctx, schema.Appl, "VLAN_TABLE:Vlan100", entry); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got schema.VlanEntry
	if err := c.Get(ctx, schema.Appl, "VLAN_TABLE:Vlan100", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != entry {
		t.Errorf("got %+v, want %+v", got, entry)
	}

	if err := c.Del(ctx, schema.Appl, "VLAN_TABLE:Vlan100"); err != nil {
		t.Fatalf("del: %v", err)
	}
	exists, err := c.Exists(ctx, schema.Appl, "VLAN_TABLE:Vlan100")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("expected key to be gone after del")
	}

	// Del on an absent key still succeeds.
	if err := c.Del(ctx, schema.Appl, "VLAN_TABLE:Vlan100"); err != nil {
		t.Fatalf("del on absent key: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	c := newTestClient(t)
	ctx := testutil.Context(t)

	var out schema.VlanEntry
	err := c.Get(ctx, schema.Appl, "VLAN_TABLE:VlanNone", &out)
	if err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestKeysGlob(t *testing.T) {
	c := newTestClient(t)
	ctx := testutil.Context(t)

	for _, id := range []string{"Vlan100", "Vlan200", "Vlan300"} {
		if err := c.Set(ctx, schema.Appl, "VLAN_TABLE:"+id, schema.VlanEntry{}); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
	}

	keys, err := c.Keys(ctx, schema.Appl, "VLAN_TABLE:*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 keys, got %d: %v", len(keys), keys)
	}
}

func TestHSetMultipleHGetAll(t *testing.T) {
	c := newTestClient(t)
	ctx := testutil.Context(t)

	fields := map[string]string{"vlanid": "100", "description": "test"}
	if err := c.HSetMultiple(ctx, schema.Config, "VLAN|Vlan100", fields); err != nil {
		t.Fatalf("hset: %v", err)
	}

	got, err := c.HGetAll(ctx, schema.Config, "VLAN|Vlan100")
	if err != nil {
		t.Fatalf("hgetall: %v", err)
	}
	if got["vlanid"] != "100" || got["description"] != "test" {
		t.Errorf("unexpected fields: %v", got)
	}
}

func TestPublishSubscribe(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan string, 1)
	go func() {
		_ = c.Subscribe(ctx, []string{"VLAN_TABLE"}, func(ctx context.Context, channel, payload string) {
			received <- payload
		})
	}()

	// Give the subscribe loop time to register before publishing.
	time.Sleep(200 * time.Millisecond)

	n, err := schema.NewNotification(schema.OpSet, schema.TableVlanApp, "Vlan100", schema.VlanEntry{VlanID: 100})
	if err != nil {
		t.Fatalf("new notification: %v", err)
	}
	if err := c.PublishNotification(ctx, "VLAN_TABLE", n); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case payload := <-received:
		decoded, err := schema.ParseNotification(payload)
		if err != nil {
			t.Fatalf("parsing received payload: %v", err)
		}
		if decoded.Key != "Vlan100" {
			t.Errorf("got key %q, want Vlan100", decoded.Key)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for published notification")
	}
}
