package syncd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

func (s *Synchronizer) recoverLags(ctx context.Context) error {
	log := logging.WithComponent("syncd")

	keys, err := s.db.Keys(ctx, schema.Asic, schema.AsicStatePrefix+":"+schema.ObjectTypeLag+":*")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		oid, ok := parseAsicOID(key)
		if !ok {
			log.WithField("key", key).Warn("malformed lag asic state key")
			continue
		}
		var state schema.LagAsicState
		if err := s.db.Get(ctx, schema.Asic, key, &state); err != nil {
			log.WithField("key", key).WithField("error", err).Warn("failed to read lag asic state")
			continue
		}
		s.lagOIDs[state.LagID] = oid
	}

	log.WithField("count", len(s.lagOIDs)).Info("recovered lags from asic state")
	return nil
}

func (s *Synchronizer) reconcileLags(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("reconciling lags from APPL_DB")

	keys, err := s.db.Keys(ctx, schema.Appl, schema.TableLagApp+":PortChannel*")
	if err != nil {
		return err
	}

	present := make(map[uint32]struct{}, len(keys))
	for _, key := range keys {
		lagName := strings.TrimPrefix(key, schema.TableLagApp+":")
		lagID, err := schema.ParseLagName(lagName)
		if err != nil {
			log.WithField("key", key).WithField("error", err).Warn("malformed lag appl key")
			continue
		}
		present[lagID] = struct{}{}
		if err := s.createLag(ctx, lagID); err != nil {
			log.WithField("lag", lagName).WithField("error", err).Warn("failed to realize lag")
		}
	}

	s.mu.RLock()
	var stale []uint32
	for lagID := range s.lagOIDs {
		if _, ok := present[lagID]; !ok {
			stale = append(stale, lagID)
		}
	}
	s.mu.RUnlock()

	for _, lagID := range stale {
		if err := s.deleteLag(ctx, lagID); err != nil {
			log.WithField("lag", schema.LagName(lagID)).WithField("error", err).Warn("failed to remove stale lag")
		}
	}

	log.WithField("count", len(present)).Info("reconciled lags")
	return nil
}

func (s *Synchronizer) createLag(ctx context.Context, lagID uint32) error {
	s.mu.RLock()
	_, tracked := s.lagOIDs[lagID]
	s.mu.RUnlock()
	if tracked {
		return nil
	}

	oid, err := s.adapter.CreateLag(s.switchID, nil)
	if err != nil {
		if isAlreadyExists(err) {
			logging.WithComponent("syncd").WithField("lag", schema.LagName(lagID)).
				Warn("lag already exists in hardware but untracked; leaving unmanaged")
			return nil
		}
		return err
	}

	state := schema.LagAsicState{LagID: lagID, OID: oidHex(oid)}
	if err := s.db.Set(ctx, schema.Asic, schema.LagAsicKey(oid), state); err != nil {
		return err
	}

	s.mu.Lock()
	s.lagOIDs[lagID] = oid
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("lag", schema.LagName(lagID)).Info("created lag in hardware")
	return nil
}

func (s *Synchronizer) deleteLag(ctx context.Context, lagID uint32) error {
	s.mu.RLock()
	oid, tracked := s.lagOIDs[lagID]
	s.mu.RUnlock()
	if !tracked {
		return nil
	}

	if err := s.adapter.RemoveLag(oid); err != nil && !isNotFound(err) {
		return err
	}
	if err := s.db.Del(ctx, schema.Asic, schema.LagAsicKey(oid)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.lagOIDs, lagID)
	s.mu.Unlock()

	logging.WithComponent("syncd").WithField("lag", schema.LagName(lagID)).Info("removed lag from hardware")
	return nil
}

func (s *Synchronizer) handleLagNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("syncd").WithField("key", n.Key)
	lagID, err := schema.ParseLagName(n.Key)
	if err != nil {
		log.WithField("error", err).Warn("malformed lag notification key")
		return
	}

	switch {
	case n.Operation.IsSet():
		if err := s.createLag(ctx, lagID); err != nil {
			log.WithField("error", err).Error("failed to create lag")
		}
	case n.Operation.IsDel():
		if err := s.deleteLag(ctx, lagID); err != nil {
			log.WithField("error", err).Error("failed to delete lag")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
