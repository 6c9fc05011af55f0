package syncd

import (
	"context"
	"strconv"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
)

// recoverFdbs rebuilds fdbProgrammed from ASIC_STATE. FDB entries are
// addressed by the (vlan, mac) composite rather than an OID, so there
// is no OID to recover, only the fact that the entry was realized.
func (s *Synchronizer) recoverFdbs(ctx context.Context) error {
	log := logging.WithComponent("syncd")

	keys, err := s.db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeFdbEntry+":*")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		rest := strings.TrimPrefix(key, schema.AsicStatePrefix+":"+schema.ObjectTypeFdbEntry+":")
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			log.WithField("key", key).Warn("malformed fdb asic state key")
			continue
		}
		vlanNum, err := strconv.ParseUint(parts[0], 10, 16)
		if err != nil {
			log.WithField("key", key).Warn("malformed fdb asic state key")
			continue
		}
		vlanID, err := schema.NewVlanID(uint16(vlanNum))
		if err != nil {
			continue
		}
		mac, err := schema.ParseMAC(parts[1])
		if err != nil {
			log.WithField("key", key).Warn("malformed fdb asic state mac")
			continue
		}
		s.fdbProgrammed[schema.VlanName(vlanID)+"|"+mac.String()] = struct{}{}
	}

	log.WithField("count", len(s.fdbProgrammed)).Info("recovered fdb entries from asic state")
	return nil
}

func (s *Synchronizer) reconcileFdbs(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("reconciling fdb entries from APPL_DB")

	keys, err := s.db.Keys(ctx, schema.Appl, schema.TableFdbApp+":Vlan*")
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		rest := strings.TrimPrefix(key, schema.TableFdbApp+":")
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			log.WithField("key", key).Warn("malformed fdb appl key")
			continue
		}
		vlanName, macStr := parts[0], parts[1]
		mac, err := schema.ParseMAC(macStr)
		if err != nil {
			log.WithField("key", key).Warn("malformed fdb appl key mac")
			continue
		}
		mapKey := vlanName + "|" + mac.String()
		present[mapKey] = struct{}{}
		if err := s.createFdb(ctx, vlanName, mac); err != nil {
			log.WithField("vlan", vlanName).WithField("mac", mac.String()).WithField("error", err).Warn("failed to realize fdb entry")
		}
	}

	s.mu.RLock()
	var stale []string
	for mapKey := range s.fdbProgrammed {
		if _, ok := present[mapKey]; !ok {
			stale = append(stale, mapKey)
		}
	}
	s.mu.RUnlock()

	for _, mapKey := range stale {
		if err := s.deleteFdbByKey(ctx, mapKey); err != nil {
			log.WithField("key", mapKey).WithField("error", err).Warn("failed to remove stale fdb entry")
		}
	}

	log.WithField("count", len(present)).Info("reconciled fdb entries")
	return nil
}

func (s *Synchronizer) createFdb(ctx context.Context, vlanName string, mac schema.MAC) error {
	mapKey := vlanName + "|" + mac.String()
	s.mu.RLock()
	_, tracked := s.fdbProgrammed[mapKey]
	s.mu.RUnlock()
	if tracked {
		return nil
	}

	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	s.mu.RLock()
	bvID, vlanTracked := s.vlanOIDs[vlanID]
	s.mu.RUnlock()
	if !vlanTracked {
		return &schema.DependencyNotSatisfiedError{Resource: "fdb entry " + mapKey, DependsOn: vlanName}
	}

	var entry schema.FdbEntry
	if err := s.db.Get(ctx, schema.Appl, schema.FdbApplKey(vlanID, mac), &entry); err != nil {
		return err
	}

	bridgePortID, err := s.portOID(entry.Port)
	if err != nil {
		return err
	}

	if err := s.adapter.CreateFdbEntry(s.switchID, mac, bvID, bridgePortID, sai.FdbEntryStatic); err != nil {
		if isAlreadyExists(err) {
			logging.WithComponent("syncd").WithField("key", mapKey).
				Warn("fdb entry already exists in hardware but untracked; leaving unmanaged")
			return nil
		}
		return err
	}

	state := schema.FdbAsicState{VlanID: uint16(vlanID), Mac: mac.String(), Port: entry.Port}
	if err := s.db.Set(ctx, schema.Asic, schema.FdbAsicKey(vlanID, mac), state); err != nil {
		return err
	}

	s.mu.Lock()
	s.fdbProgrammed[mapKey] = struct{}{}
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("key", mapKey).Info("created fdb entry in hardware")
	return nil
}

func (s *Synchronizer) deleteFdbByKey(ctx context.Context, mapKey string) error {
	s.mu.RLock()
	_, tracked := s.fdbProgrammed[mapKey]
	s.mu.RUnlock()
	if !tracked {
		return nil
	}

	parts := strings.SplitN(mapKey, "|", 2)
	if len(parts) != 2 {
		return &schema.InternalError{Msg: "malformed fdb tracking key: " + mapKey}
	}
	vlanName, macStr := parts[0], parts[1]
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}
	mac, err := schema.ParseMAC(macStr)
	if err != nil {
		return err
	}

	s.mu.RLock()
	bvID, vlanTracked := s.vlanOIDs[vlanID]
	s.mu.RUnlock()
	if vlanTracked {
		if err := s.adapter.RemoveFdbEntry(s.switchID, mac, bvID); err != nil && !isNotFound(err) {
			return err
		}
	}

	if err := s.db.Del(ctx, schema.Asic, schema.FdbAsicKey(vlanID, mac)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.fdbProgrammed, mapKey)
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("key", mapKey).Info("removed fdb entry from hardware")
	return nil
}

func (s *Synchronizer) handleFdbNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("syncd").WithField("key", n.Key)
	parts := strings.SplitN(n.Key, "|", 2)
	if len(parts) != 2 {
		log.Warn("malformed fdb notification key")
		return
	}
	vlanName, macStr := parts[0], parts[1]
	mac, err := schema.ParseMAC(macStr)
	if err != nil {
		log.WithField("error", err).Warn("malformed fdb notification mac")
		return
	}

	switch {
	case n.Operation.IsSet():
		if err := s.createFdb(ctx, vlanName, mac); err != nil {
			log.WithField("error", err).Error("failed to create fdb entry")
		}
	case n.Operation.IsDel():
		if err := s.deleteFdbByKey(ctx, vlanName+"|"+mac.String()); err != nil {
			log.WithField("error", err).Error("failed to delete fdb entry")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
