package syncd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
)

func (s *Synchronizer) recoverVlanMembers(ctx context.Context) error {
	log := logging.WithComponent("syncd")

	keys, err := s.db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeVlanMember+":*")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		oid, ok := parseAsicOID(key)
		if !ok {
			log.WithField("key", key).Warn("malformed vlan member asic state key")
			continue
		}
		var state schema.VlanMemberAsicState
		if err := s.db.Get(ctx, schema.Asic, key, &state); err != nil {
			log.WithField("key", key).WithField("error", err).Warn("failed to read vlan member asic state")
			continue
		}
		vlanID, err := schema.NewVlanID(state.VlanID)
		if err != nil {
			continue
		}
		mapKey := schema.VlanName(vlanID) + "|" + state.Port
		s.vlanMemberOIDs[mapKey] = oid
	}

	log.WithField("count", len(s.vlanMemberOIDs)).Info("recovered vlan members from asic state")
	return nil
}

func (s *Synchronizer) reconcileVlanMembers(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("reconciling vlan members from APPL_DB")

	keys, err := s.db.Keys(ctx, schema.Appl, schema.TableVlanMemberApp+":Vlan*")
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		rest := strings.TrimPrefix(key, schema.TableVlanMemberApp+":")
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			log.WithField("key", key).Warn("malformed vlan member appl key")
			continue
		}
		vlanName, port := parts[0], parts[1]
		mapKey := vlanName + "|" + port
		present[mapKey] = struct{}{}
		if err := s.createVlanMember(ctx, vlanName, port); err != nil {
			log.WithField("vlan", vlanName).WithField("port", port).WithField("error", err).Warn("failed to realize vlan member")
		}
	}

	s.mu.RLock()
	var stale []string
	for mapKey := range s.vlanMemberOIDs {
		if _, ok := present[mapKey]; !ok {
			stale = append(stale, mapKey)
		}
	}
	s.mu.RUnlock()

	for _, mapKey := range stale {
		if err := s.deleteVlanMemberByKey(ctx, mapKey); err != nil {
			log.WithField("key", mapKey).WithField("error", err).Warn("failed to remove stale vlan member")
		}
	}

	log.WithField("count", len(present)).Info("reconciled vlan members")
	return nil
}

func (s *Synchronizer) createVlanMember(ctx context.Context, vlanName, port string) error {
	mapKey := vlanName + "|" + port
	s.mu.RLock()
	_, tracked := s.vlanMemberOIDs[mapKey]
	s.mu.RUnlock()
	if tracked {
		return nil
	}

	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	s.mu.RLock()
	vlanOID, vlanTracked := s.vlanOIDs[vlanID]
	s.mu.RUnlock()
	if !vlanTracked {
		return &schema.DependencyNotSatisfiedError{Resource: "vlan member " + vlanName + "|" + port, DependsOn: vlanName}
	}

	portOID, err := s.portOID(port)
	if err != nil {
		return err
	}

	var entry schema.VlanMemberEntry
	if err := s.db.Get(ctx, schema.Appl, schema.TableVlanMemberApp+":"+vlanName+":"+port, &entry); err != nil {
		return err
	}
	mode, err := schema.ParseTaggingMode(entry.TaggingMode)
	if err != nil {
		return err
	}

	oid, err := s.adapter.CreateVlanMember(s.switchID, vlanOID, portOID, sai.FromSchemaTaggingMode(mode))
	if err != nil {
		if isAlreadyExists(err) {
			logging.WithComponent("syncd").WithField("vlan", vlanName).WithField("port", port).
				Warn("vlan member already exists in hardware but untracked; leaving unmanaged")
			return nil
		}
		return err
	}

	state := schema.VlanMemberAsicState{VlanID: uint16(vlanID), Port: port, OID: oidHex(oid)}
	if err := s.db.Set(ctx, schema.Asic, schema.VlanMemberAsicKey(oid), state); err != nil {
		return err
	}

	s.mu.Lock()
	s.vlanMemberOIDs[mapKey] = oid
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("vlan", vlanName).WithField("port", port).Info("created vlan member in hardware")
	return nil
}

func (s *Synchronizer) deleteVlanMemberByKey(ctx context.Context, mapKey string) error {
	s.mu.RLock()
	oid, tracked := s.vlanMemberOIDs[mapKey]
	s.mu.RUnlock()
	if !tracked {
		return nil
	}

	if err := s.adapter.RemoveVlanMember(oid); err != nil && !isNotFound(err) {
		return err
	}
	if err := s.db.Del(ctx, schema.Asic, schema.VlanMemberAsicKey(oid)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.vlanMemberOIDs, mapKey)
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("key", mapKey).Info("removed vlan member from hardware")
	return nil
}

func (s *Synchronizer) handleVlanMemberNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("syncd").WithField("key", n.Key)
	parts := strings.SplitN(n.Key, "|", 2)
	if len(parts) != 2 {
		log.Warn("malformed vlan member notification key")
		return
	}
	vlanName, port := parts[0], parts[1]

	switch {
	case n.Operation.IsSet():
		if err := s.createVlanMember(ctx, vlanName, port); err != nil {
			log.WithField("error", err).Error("failed to create vlan member")
		}
	case n.Operation.IsDel():
		if err := s.deleteVlanMemberByKey(ctx, vlanName+"|"+port); err != nil {
			log.WithField("error", err).Error("failed to delete vlan member")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
