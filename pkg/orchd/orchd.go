// Package orchd is the configuration orchestrator: it watches CONFIG_DB
// for user intent, projects it into the normalized APPL_DB shape, and
// publishes a downstream notification for the hardware synchronizer.
// Each table (VLAN, VLAN_MEMBER, LAG, LAG_MEMBER, FDB) follows the same
// sync/process/delete/handle-notification shape.
package orchd

import (
	"context"
	"sync"

	"github.com/racoon-project/racoon/pkg/dbclient"
	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// Orchestrator projects CONFIG_DB onto APPL_DB for every table this
// pipeline reconciles.
type Orchestrator struct {
	db *dbclient.Client

	mu          sync.RWMutex
	vlans       map[schema.VlanID]schema.VlanEntry
	vlanMembers map[string]schema.VlanMemberEntry
	lags        map[uint32]schema.LagEntry
	lagMembers  map[string]schema.LagMemberEntry
	fdbs        map[string]schema.FdbEntry
}

// New returns an Orchestrator with empty tracking state; call Start to
// populate it from CONFIG_DB.
func New(db *dbclient.Client) *Orchestrator {
	return &Orchestrator{
		db:          db,
		vlans:       make(map[schema.VlanID]schema.VlanEntry),
		vlanMembers: make(map[string]schema.VlanMemberEntry),
		lags:        make(map[uint32]schema.LagEntry),
		lagMembers:  make(map[string]schema.LagMemberEntry),
		fdbs:        make(map[string]schema.FdbEntry),
	}
}

// Channels lists every CONFIG_DB channel OnNotification handles; see
// Start for when to subscribe to them.
func (o *Orchestrator) Channels() []string {
	return []string{
		schema.ChannelConfigVlan,
		schema.ChannelConfigVlanMember,
		schema.ChannelConfigLag,
		schema.ChannelConfigLagMember,
		schema.ChannelConfigFdb,
	}
}

// Start performs the bulk reconcile of every table from CONFIG_DB into
// APPL_DB. Callers should subscribe to Channels before or immediately
// after calling Start so no notification arriving during the bulk
// reconcile is missed.
func (o *Orchestrator) Start(ctx context.Context) error {
	log := logging.WithComponent("orchd")
	log.Info("starting configuration orchestrator")

	if err := o.syncVlans(ctx); err != nil {
		return err
	}
	if err := o.syncVlanMembers(ctx); err != nil {
		return err
	}
	if err := o.syncLags(ctx); err != nil {
		return err
	}
	if err := o.syncLagMembers(ctx); err != nil {
		return err
	}
	if err := o.syncFdbs(ctx); err != nil {
		return err
	}

	log.Info("configuration orchestrator started")
	return nil
}

// Handler returns the dbclient.Handler driving this orchestrator's
// notification processing, suitable for passing to dbclient.Subscribe.
func (o *Orchestrator) Handler() dbclient.Handler {
	return o.OnNotification
}

// OnNotification routes one CONFIG_DB pub/sub message to the
// table-specific handler for channel, logging and dropping anything it
// cannot parse or does not recognize.
func (o *Orchestrator) OnNotification(ctx context.Context, channel, payload string) {
	log := logging.WithComponent("orchd").WithField("channel", channel)
	log.Debug("received notification")

	n, err := schema.ParseNotification(payload)
	if err != nil {
		log.WithField("error", err).Error("failed to parse notification")
		return
	}

	switch channel {
	case schema.ChannelConfigVlan:
		o.handleVlanNotification(ctx, n)
	case schema.ChannelConfigVlanMember:
		o.handleVlanMemberNotification(ctx, n)
	case schema.ChannelConfigLag:
		o.handleLagNotification(ctx, n)
	case schema.ChannelConfigLagMember:
		o.handleLagMemberNotification(ctx, n)
	case schema.ChannelConfigFdb:
		o.handleFdbNotification(ctx, n)
	default:
		log.Warn("notification on unrecognized channel")
	}
}

// Stats reports the size of every table this orchestrator tracks.
type Stats struct {
	VlanCount       int `json:"vlan_count"`
	VlanMemberCount int `json:"vlan_member_count"`
	LagCount        int `json:"lag_count"`
	LagMemberCount  int `json:"lag_member_count"`
	FdbCount        int `json:"fdb_count"`
}

// Stats returns a snapshot of the orchestrator's tracked table sizes.
func (o *Orchestrator) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return Stats{
		VlanCount:       len(o.vlans),
		VlanMemberCount: len(o.vlanMembers),
		LagCount:        len(o.lags),
		LagMemberCount:  len(o.lagMembers),
		FdbCount:        len(o.fdbs),
	}
}
