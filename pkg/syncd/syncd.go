// Package syncd is the hardware synchronizer: it watches APPL_DB for
// the orchestrator's normalized projections, realizes them against the
// vendor SAI library, and records what it realized in ASIC_STATE so a
// restart can rebuild its in-memory OID bookkeeping without touching
// hardware it already programmed. Every reconciled table follows the
// same sync/create/delete/handle-notification shape, plus a
// restart-recovery scan of ASIC_STATE that runs once before the first
// reconcile pass.
package syncd

import (
	"context"
	"errors"
	"sync"

	"github.com/racoon-project/racoon/pkg/dbclient"
	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
)

// Synchronizer realizes APPL_DB table state against hardware and
// records the result in ASIC_STATE.
type Synchronizer struct {
	db       *dbclient.Client
	adapter  sai.Adapter
	switchID schema.OID

	mu             sync.RWMutex
	portOIDs       map[string]schema.OID
	vlanOIDs       map[schema.VlanID]schema.OID
	vlanMemberOIDs map[string]schema.OID
	lagOIDs        map[uint32]schema.OID
	lagMemberOIDs  map[string]schema.OID
	fdbProgrammed  map[string]struct{}
}

// New returns a Synchronizer bound to switchID, the OID of the
// already-created default switch object.
func New(db *dbclient.Client, adapter sai.Adapter, switchID schema.OID) *Synchronizer {
	return &Synchronizer{
		db:             db,
		adapter:        adapter,
		switchID:       switchID,
		portOIDs:       make(map[string]schema.OID),
		vlanOIDs:       make(map[schema.VlanID]schema.OID),
		vlanMemberOIDs: make(map[string]schema.OID),
		lagOIDs:        make(map[uint32]schema.OID),
		lagMemberOIDs:  make(map[string]schema.OID),
		fdbProgrammed:  make(map[string]struct{}),
	}
}

// Channels lists every APPL_DB channel OnNotification handles. The
// daemon subscribes to them once Start has returned.
func (s *Synchronizer) Channels() []string {
	return []string{
		schema.ChannelVlanTable,
		schema.ChannelVlanMemberTable,
		schema.ChannelLagTable,
		schema.ChannelLagMemberTable,
		schema.ChannelFdbTable,
	}
}

// Start bootstraps the port name-to-OID table, recovers the
// synchronizer's OID bookkeeping from ASIC_STATE (a prior run's
// realized hardware state), then reconciles every table forward from
// APPL_DB and garbage-collects anything realized that APPL_DB no longer
// names.
func (s *Synchronizer) Start(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("starting hardware synchronizer")

	if err := s.bootstrapPorts(ctx); err != nil {
		return err
	}
	if err := s.recoverVlans(ctx); err != nil {
		return err
	}
	if err := s.recoverVlanMembers(ctx); err != nil {
		return err
	}
	if err := s.recoverLags(ctx); err != nil {
		return err
	}
	if err := s.recoverLagMembers(ctx); err != nil {
		return err
	}
	if err := s.recoverFdbs(ctx); err != nil {
		return err
	}

	if err := s.reconcileVlans(ctx); err != nil {
		return err
	}
	if err := s.reconcileVlanMembers(ctx); err != nil {
		return err
	}
	if err := s.reconcileLags(ctx); err != nil {
		return err
	}
	if err := s.reconcileLagMembers(ctx); err != nil {
		return err
	}
	if err := s.reconcileFdbs(ctx); err != nil {
		return err
	}

	log.Info("hardware synchronizer started")
	return nil
}

// Handler returns the dbclient.Handler driving this synchronizer's
// notification processing.
func (s *Synchronizer) Handler() dbclient.Handler {
	return s.OnNotification
}

// OnNotification routes one APPL_DB pub/sub message to the
// table-specific handler for channel.
func (s *Synchronizer) OnNotification(ctx context.Context, channel, payload string) {
	log := logging.WithComponent("syncd").WithField("channel", channel)
	log.Debug("received notification")

	n, err := schema.ParseNotification(payload)
	if err != nil {
		log.WithField("error", err).Error("failed to parse notification")
		return
	}

	switch channel {
	case schema.ChannelVlanTable:
		s.handleVlanNotification(ctx, n)
	case schema.ChannelVlanMemberTable:
		s.handleVlanMemberNotification(ctx, n)
	case schema.ChannelLagTable:
		s.handleLagNotification(ctx, n)
	case schema.ChannelLagMemberTable:
		s.handleLagMemberNotification(ctx, n)
	case schema.ChannelFdbTable:
		s.handleFdbNotification(ctx, n)
	default:
		log.Warn("notification on unrecognized channel")
	}
}

// Stats reports the size of every table this synchronizer has realized
// in hardware.
type Stats struct {
	PortCount       int `json:"port_count"`
	VlanCount       int `json:"vlan_count"`
	VlanMemberCount int `json:"vlan_member_count"`
	LagCount        int `json:"lag_count"`
	LagMemberCount  int `json:"lag_member_count"`
	FdbCount        int `json:"fdb_count"`
}

// Stats returns a snapshot of the synchronizer's realized table sizes.
func (s *Synchronizer) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		PortCount:       len(s.portOIDs),
		VlanCount:       len(s.vlanOIDs),
		VlanMemberCount: len(s.vlanMemberOIDs),
		LagCount:        len(s.lagOIDs),
		LagMemberCount:  len(s.lagMemberOIDs),
		FdbCount:        len(s.fdbProgrammed),
	}
}

// isAlreadyExists reports whether err represents the vendor's
// ITEM_ALREADY_EXISTS status, which this synchronizer treats as a
// successful create: the object is already realized, which is the
// caller's goal.
func isAlreadyExists(err error) bool {
	var hwErr *schema.HwError
	if errors.As(err, &hwErr) {
		return hwErr.Code == int32(sai.StatusItemAlreadyExists)
	}
	return false
}

// isNotFound reports whether err represents the vendor's
// ITEM_NOT_FOUND status, which this synchronizer treats as a
// successful delete: the object is already gone, which is the
// caller's goal.
func isNotFound(err error) bool {
	var hwErr *schema.HwError
	if errors.As(err, &hwErr) {
		return hwErr.Code == int32(sai.StatusItemNotFound)
	}
	return false
}
