package orchd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// vlanMemberKey splits a "VLAN_MEMBER|Vlan100|Ethernet0" config key
// into its vlan name and port, or ok=false if malformed.
func vlanMemberKey(configKey string) (vlanName, port string, ok bool) {
	rest := strings.TrimPrefix(configKey, schema.TableVlanMember+"|")
	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (o *Orchestrator) syncVlanMembers(ctx context.Context) error {
	log := logging.WithComponent("orchd")
	log.Info("syncing vlan members from CONFIG_DB")

	keys, err := o.db.Keys(ctx, schema.Config, schema.TableVlanMember+"|Vlan*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		vlanName, port, ok := vlanMemberKey(key)
		if !ok {
			log.WithField("key", key).Warn("malformed vlan member key")
			continue
		}
		if err := o.processVlanMemberConfig(ctx, vlanName, port); err != nil {
			log.WithField("vlan", vlanName).WithField("port", port).WithField("error", err).Warn("failed to sync vlan member")
		}
	}

	log.WithField("count", len(o.vlanMembers)).Info("synced vlan members")
	return nil
}

func (o *Orchestrator) processVlanMemberConfig(ctx context.Context, vlanName, port string) error {
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	var config schema.VlanMemberConfig
	if err := o.db.Get(ctx, schema.Config, schema.VlanMemberConfigKey(vlanID, port), &config); err != nil {
		return err
	}

	entry := schema.VlanMemberEntry{VlanID: config.VlanID, Port: config.Port, TaggingMode: config.TaggingMode}
	if err := o.db.Set(ctx, schema.Appl, schema.VlanMemberApplKey(vlanID, port), entry); err != nil {
		return err
	}

	key := vlanName + "|" + port
	o.mu.Lock()
	o.vlanMembers[key] = entry
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpSet, schema.TableVlanMemberApp, key, entry)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelVlanMemberTable, n)
}

func (o *Orchestrator) deleteVlanMember(ctx context.Context, vlanName, port string) error {
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	if err := o.db.Del(ctx, schema.Appl, schema.VlanMemberApplKey(vlanID, port)); err != nil {
		return err
	}

	key := vlanName + "|" + port
	o.mu.Lock()
	delete(o.vlanMembers, key)
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpDel, schema.TableVlanMemberApp, key, nil)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelVlanMemberTable, n)
}

func (o *Orchestrator) handleVlanMemberNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("orchd").WithField("key", n.Key)
	vlanName, port, ok := vlanMemberKey(n.Key)
	if !ok {
		log.Warn("malformed vlan member notification key")
		return
	}

	switch {
	case n.Operation.IsSet():
		if err := o.processVlanMemberConfig(ctx, vlanName, port); err != nil {
			log.WithField("error", err).Error("failed to process vlan member")
		}
	case n.Operation.IsDel():
		if err := o.deleteVlanMember(ctx, vlanName, port); err != nil {
			log.WithField("error", err).Error("failed to delete vlan member")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
