package syncd

import (
	"context"
	"strconv"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// recoverVlans rebuilds vlanOIDs from ASIC_STATE, the record of what a
// prior run of this process already realized in hardware. It never
// touches the vendor library: restart recovery trusts the store, not a
// hardware re-query.
func (s *Synchronizer) recoverVlans(ctx context.Context) error {
	log := logging.WithComponent("syncd")

	keys, err := s.db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeVlan+":*")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		oid, ok := parseAsicOID(key)
		if !ok {
			log.WithField("key", key).Warn("malformed vlan asic state key")
			continue
		}
		var state schema.VlanAsicState
		if err := s.db.Get(ctx, schema.Asic, key, &state); err != nil {
			log.WithField("key", key).WithField("error", err).Warn("failed to read vlan asic state")
			continue
		}
		vlanID, err := schema.NewVlanID(state.VlanID)
		if err != nil {
			log.WithField("key", key).WithField("error", err).Warn("invalid vlan id in asic state")
			continue
		}
		s.vlanOIDs[vlanID] = oid
	}

	log.WithField("count", len(s.vlanOIDs)).Info("recovered vlans from asic state")
	return nil
}

// parseAsicOID extracts the trailing "0x<hex>" OID suffix of an
// ASIC_STATE key.
func parseAsicOID(key string) (schema.OID, bool) {
	idx := strings.LastIndex(key, ":0x")
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(key[idx+3:], 16, 64)
	if err != nil {
		return 0, false
	}
	return schema.OID(n), true
}

// reconcileVlans realizes every APPL_DB VLAN_TABLE entry not yet
// tracked, then removes any tracked VLAN no longer present in
// APPL_DB.
func (s *Synchronizer) reconcileVlans(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("reconciling vlans from APPL_DB")

	keys, err := s.db.Keys(ctx, schema.Appl, schema.TableVlanApp+":Vlan*")
	if err != nil {
		return err
	}

	present := make(map[schema.VlanID]struct{}, len(keys))
	for _, key := range keys {
		vlanName := strings.TrimPrefix(key, schema.TableVlanApp+":")
		vlanID, err := schema.ParseVlanName(vlanName)
		if err != nil {
			log.WithField("key", key).WithField("error", err).Warn("malformed vlan appl key")
			continue
		}
		present[vlanID] = struct{}{}
		if err := s.createVlan(ctx, vlanID); err != nil {
			log.WithField("vlan", vlanName).WithField("error", err).Warn("failed to realize vlan")
		}
	}

	s.mu.RLock()
	var stale []schema.VlanID
	for vlanID := range s.vlanOIDs {
		if _, ok := present[vlanID]; !ok {
			stale = append(stale, vlanID)
		}
	}
	s.mu.RUnlock()

	for _, vlanID := range stale {
		if err := s.deleteVlan(ctx, vlanID); err != nil {
			log.WithField("vlan", schema.VlanName(vlanID)).WithField("error", err).Warn("failed to remove stale vlan")
		}
	}

	log.WithField("count", len(present)).Info("reconciled vlans")
	return nil
}

// createVlan realizes vlanID in hardware if not already tracked,
// writing the resulting OID to ASIC_STATE.
func (s *Synchronizer) createVlan(ctx context.Context, vlanID schema.VlanID) error {
	s.mu.RLock()
	_, tracked := s.vlanOIDs[vlanID]
	s.mu.RUnlock()
	if tracked {
		return nil
	}

	var entry schema.VlanEntry
	if err := s.db.Get(ctx, schema.Appl, schema.VlanApplKey(vlanID), &entry); err != nil {
		return err
	}
	if _, err := schema.NewVlanID(entry.VlanID); err != nil {
		return err
	}

	oid, err := s.adapter.CreateVlan(s.switchID, entry.VlanID)
	if err != nil {
		if isAlreadyExists(err) {
			logging.WithComponent("syncd").WithField("vlan", schema.VlanName(vlanID)).
				Warn("vlan already exists in hardware but untracked; leaving unmanaged")
			return nil
		}
		return err
	}

	state := schema.VlanAsicState{VlanID: uint16(vlanID), OID: oidHex(oid)}
	if err := s.db.Set(ctx, schema.Asic, schema.VlanAsicKey(oid), state); err != nil {
		return err
	}

	s.mu.Lock()
	s.vlanOIDs[vlanID] = oid
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("vlan", schema.VlanName(vlanID)).WithField("oid", oidHex(oid)).
		Info("created vlan in hardware")
	return nil
}

// deleteVlan removes vlanID from hardware and ASIC_STATE if tracked.
func (s *Synchronizer) deleteVlan(ctx context.Context, vlanID schema.VlanID) error {
	s.mu.RLock()
	oid, tracked := s.vlanOIDs[vlanID]
	s.mu.RUnlock()
	if !tracked {
		logging.WithComponent("syncd").WithField("vlan", schema.VlanName(vlanID)).
			Warn("delete for untracked vlan; nothing to remove")
		return nil
	}

	if err := s.adapter.RemoveVlan(oid); err != nil && !isNotFound(err) {
		return err
	}

	if err := s.db.Del(ctx, schema.Asic, schema.VlanAsicKey(oid)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.vlanOIDs, vlanID)
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("vlan", schema.VlanName(vlanID)).Info("removed vlan from hardware")
	return nil
}

func (s *Synchronizer) handleVlanNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("syncd").WithField("key", n.Key)
	vlanID, err := schema.ParseVlanName(n.Key)
	if err != nil {
		log.WithField("error", err).Warn("malformed vlan notification key")
		return
	}

	switch {
	case n.Operation.IsSet():
		if err := s.createVlan(ctx, vlanID); err != nil {
			log.WithField("error", err).Error("failed to create vlan")
		}
	case n.Operation.IsDel():
		if err := s.deleteVlan(ctx, vlanID); err != nil {
			log.WithField("error", err).Error("failed to delete vlan")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}

// oidHex renders an OID in the "0x..." form ASIC_STATE values use.
func oidHex(oid schema.OID) string {
	return "0x" + strconv.FormatUint(uint64(oid), 16)
}
