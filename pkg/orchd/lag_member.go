package orchd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// lagMemberKey splits a "LAG_MEMBER|PortChannel10|Ethernet0" config key
// into its lag name and port, or ok=false if malformed.
func lagMemberKey(configKey string) (lagName, port string, ok bool) {
	rest := strings.TrimPrefix(configKey, schema.TableLagMember+"|")
	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (o *Orchestrator) syncLagMembers(ctx context.Context) error {
	log := logging.WithComponent("orchd")
	log.Info("syncing lag members from CONFIG_DB")

	keys, err := o.db.Keys(ctx, schema.Config, schema.TableLagMember+"|PortChannel*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		lagName, port, ok := lagMemberKey(key)
		if !ok {
			log.WithField("key", key).Warn("malformed lag member key")
			continue
		}
		if err := o.processLagMemberConfig(ctx, lagName, port); err != nil {
			log.WithField("lag", lagName).WithField("port", port).WithField("error", err).Warn("failed to sync lag member")
		}
	}

	log.WithField("count", len(o.lagMembers)).Info("synced lag members")
	return nil
}

func (o *Orchestrator) processLagMemberConfig(ctx context.Context, lagName, port string) error {
	lagID, err := schema.ParseLagName(lagName)
	if err != nil {
		return err
	}

	var config schema.LagMemberConfig
	if err := o.db.Get(ctx, schema.Config, schema.LagMemberConfigKey(lagID, port), &config); err != nil {
		return err
	}

	entry := schema.LagMemberEntry{LagID: config.LagID, Port: config.Port}
	if err := o.db.Set(ctx, schema.Appl, schema.LagMemberApplKey(lagID, port), entry); err != nil {
		return err
	}

	key := lagName + "|" + port
	o.mu.Lock()
	o.lagMembers[key] = entry
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpSet, schema.TableLagMemberApp, key, entry)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelLagMemberTable, n)
}

func (o *Orchestrator) deleteLagMember(ctx context.Context, lagName, port string) error {
	lagID, err := schema.ParseLagName(lagName)
	if err != nil {
		return err
	}

	if err := o.db.Del(ctx, schema.Appl, schema.LagMemberApplKey(lagID, port)); err != nil {
		return err
	}

	key := lagName + "|" + port
	o.mu.Lock()
	delete(o.lagMembers, key)
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpDel, schema.TableLagMemberApp, key, nil)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelLagMemberTable, n)
}

func (o *Orchestrator) handleLagMemberNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("orchd").WithField("key", n.Key)
	lagName, port, ok := lagMemberKey(n.Key)
	if !ok {
		log.Warn("malformed lag member notification key")
		return
	}

	switch {
	case n.Operation.IsSet():
		if err := o.processLagMemberConfig(ctx, lagName, port); err != nil {
			log.WithField("error", err).Error("failed to process lag member")
		}
	case n.Operation.IsDel():
		if err := o.deleteLagMember(ctx, lagName, port); err != nil {
			log.WithField("error", err).Error("failed to delete lag member")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
