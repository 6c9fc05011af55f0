package syncd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

func (s *Synchronizer) recoverLagMembers(ctx context.Context) error {
	log := logging.WithComponent("syncd")

	keys, err := s.db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeLagMember+":*")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		oid, ok := parseAsicOID(key)
		if !ok {
			log.WithField("key", key).Warn("malformed lag member asic state key")
			continue
		}
		var state schema.LagMemberAsicState
		if err := s.db.Get(ctx, schema.Asic, key, &state); err != nil {
			log.WithField("key", key).WithField("error", err).Warn("failed to read lag member asic state")
			continue
		}
		mapKey := schema.LagName(state.LagID) + "|" + state.Port
		s.lagMemberOIDs[mapKey] = oid
	}

	log.WithField("count", len(s.lagMemberOIDs)).Info("recovered lag members from asic state")
	return nil
}

func (s *Synchronizer) reconcileLagMembers(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("reconciling lag members from APPL_DB")

	keys, err := s.db.Keys(ctx, schema.Appl, schema.TableLagMemberApp+":PortChannel*")
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		rest := strings.TrimPrefix(key, schema.TableLagMemberApp+":")
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			log.WithField("key", key).Warn("malformed lag member appl key")
			continue
		}
		lagName, port := parts[0], parts[1]
		mapKey := lagName + "|" + port
		present[mapKey] = struct{}{}
		if err := s.createLagMember(ctx, lagName, port); err != nil {
			log.WithField("lag", lagName).WithField("port", port).WithField("error", err).Warn("failed to realize lag member")
		}
	}

	s.mu.RLock()
	var stale []string
	for mapKey := range s.lagMemberOIDs {
		if _, ok := present[mapKey]; !ok {
			stale = append(stale, mapKey)
		}
	}
	s.mu.RUnlock()

	for _, mapKey := range stale {
		if err := s.deleteLagMemberByKey(ctx, mapKey); err != nil {
			log.WithField("key", mapKey).WithField("error", err).Warn("failed to remove stale lag member")
		}
	}

	log.WithField("count", len(present)).Info("reconciled lag members")
	return nil
}

func (s *Synchronizer) createLagMember(ctx context.Context, lagName, port string) error {
	mapKey := lagName + "|" + port
	s.mu.RLock()
	_, tracked := s.lagMemberOIDs[mapKey]
	s.mu.RUnlock()
	if tracked {
		return nil
	}

	lagID, err := schema.ParseLagName(lagName)
	if err != nil {
		return err
	}

	s.mu.RLock()
	lagOID, lagTracked := s.lagOIDs[lagID]
	s.mu.RUnlock()
	if !lagTracked {
		return &schema.DependencyNotSatisfiedError{Resource: "lag member " + lagName + "|" + port, DependsOn: lagName}
	}

	portOID, err := s.portOID(port)
	if err != nil {
		return err
	}

	oid, err := s.adapter.CreateLagMember(s.switchID, lagOID, portOID)
	if err != nil {
		if isAlreadyExists(err) {
			logging.WithComponent("syncd").WithField("lag", lagName).WithField("port", port).
				Warn("lag member already exists in hardware but untracked; leaving unmanaged")
			return nil
		}
		return err
	}

	state := schema.LagMemberAsicState{LagID: lagID, Port: port, OID: oidHex(oid)}
	if err := s.db.Set(ctx, schema.Asic, schema.LagMemberAsicKey(oid), state); err != nil {
		return err
	}

	s.mu.Lock()
	s.lagMemberOIDs[mapKey] = oid
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("lag", lagName).WithField("port", port).Info("created lag member in hardware")
	return nil
}

func (s *Synchronizer) deleteLagMemberByKey(ctx context.Context, mapKey string) error {
	s.mu.RLock()
	oid, tracked := s.lagMemberOIDs[mapKey]
	s.mu.RUnlock()
	if !tracked {
		return nil
	}

	if err := s.adapter.RemoveLagMember(oid); err != nil && !isNotFound(err) {
		return err
	}
	if err := s.db.Del(ctx, schema.Asic, schema.LagMemberAsicKey(oid)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.lagMemberOIDs, mapKey)
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("key", mapKey).Info("removed lag member from hardware")
	return nil
}

func (s *Synchronizer) handleLagMemberNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("syncd").WithField("key", n.Key)
	parts := strings.SplitN(n.Key, "|", 2)
	if len(parts) != 2 {
		log.Warn("malformed lag member notification key")
		return
	}
	lagName, port := parts[0], parts[1]

	switch {
	case n.Operation.IsSet():
		if err := s.createLagMember(ctx, lagName, port); err != nil {
			log.WithField("error", err).Error("failed to create lag member")
		}
	case n.Operation.IsDel():
		if err := s.deleteLagMemberByKey(ctx, lagName+"|"+port); err != nil {
			log.WithField("error", err).Error("failed to delete lag member")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
