package orchd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// fdbKey splits a "FDB|Vlan100|aa:bb:cc:dd:ee:ff" config key into its
// vlan name and mac address, or ok=false if malformed.
func fdbKey(configKey string) (vlanName string, mac schema.MAC, ok bool) {
	rest := strings.TrimPrefix(configKey, schema.TableFdb+"|")
	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 {
		return "", schema.MAC{}, false
	}
	m, err := schema.ParseMAC(parts[1])
	if err != nil {
		return "", schema.MAC{}, false
	}
	return parts[0], m, true
}

func (o *Orchestrator) syncFdbs(ctx context.Context) error {
	log := logging.WithComponent("orchd")
	log.Info("syncing fdb entries from CONFIG_DB")

	keys, err := o.db.Keys(ctx, schema.Config, schema.TableFdb+"|Vlan*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		vlanName, mac, ok := fdbKey(key)
		if !ok {
			log.WithField("key", key).Warn("malformed fdb key")
			continue
		}
		if err := o.processFdbConfig(ctx, vlanName, mac); err != nil {
			log.WithField("vlan", vlanName).WithField("mac", mac.String()).WithField("error", err).Warn("failed to sync fdb entry")
		}
	}

	log.WithField("count", len(o.fdbs)).Info("synced fdb entries")
	return nil
}

func (o *Orchestrator) processFdbConfig(ctx context.Context, vlanName string, mac schema.MAC) error {
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	var config schema.FdbConfig
	if err := o.db.Get(ctx, schema.Config, schema.FdbConfigKey(vlanID, mac), &config); err != nil {
		return err
	}

	entry := schema.FdbEntry{VlanID: config.VlanID, Mac: config.Mac, Port: config.Port, Type: config.Type}
	if err := o.db.Set(ctx, schema.Appl, schema.FdbApplKey(vlanID, mac), entry); err != nil {
		return err
	}

	key := vlanName + "|" + mac.String()
	o.mu.Lock()
	o.fdbs[key] = entry
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpSet, schema.TableFdbApp, key, entry)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelFdbTable, n)
}

func (o *Orchestrator) deleteFdb(ctx context.Context, vlanName string, mac schema.MAC) error {
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	if err := o.db.Del(ctx, schema.Appl, schema.FdbApplKey(vlanID, mac)); err != nil {
		return err
	}

	key := vlanName + "|" + mac.String()
	o.mu.Lock()
	delete(o.fdbs, key)
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpDel, schema.TableFdbApp, key, nil)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelFdbTable, n)
}

func (o *Orchestrator) handleFdbNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("orchd").WithField("key", n.Key)
	vlanName, mac, ok := fdbKey(n.Key)
	if !ok {
		log.Warn("malformed fdb notification key")
		return
	}

	switch {
	case n.Operation.IsSet():
		if err := o.processFdbConfig(ctx, vlanName, mac); err != nil {
			log.WithField("error", err).Error("failed to process fdb entry")
		}
	case n.Operation.IsDel():
		if err := o.deleteFdb(ctx, vlanName, mac); err != nil {
			log.WithField("error", err).Error("failed to delete fdb entry")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
