package orchd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// syncVlans loads every VLAN|* key from CONFIG_DB and projects it into
// APPL_DB, mirroring sync_vlans.
func (o *Orchestrator) syncVlans(ctx context.Context) error {
	log := logging.WithComponent("orchd")
	log.Info("syncing vlans from CONFIG_DB")

	keys, err := o.db.Keys(ctx, schema.Config, schema.TableVlan+"|Vlan*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		vlanName := strings.TrimPrefix(key, schema.TableVlan+"|")
		if err := o.processVlanConfig(ctx, vlanName); err != nil {
			log.WithField("vlan", vlanName).WithField("error", err).Warn("failed to sync vlan")
		}
	}

	log.WithField("count", len(o.vlans)).Info("synced vlans")
	return nil
}

// processVlanConfig reads one VLAN config record and writes its APPL_DB
// projection, tracking it and publishing a downstream notification.
func (o *Orchestrator) processVlanConfig(ctx context.Context, vlanName string) error {
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	var config schema.VlanConfig
	if err := o.db.Get(ctx, schema.Config, schema.VlanConfigKey(vlanID), &config); err != nil {
		return err
	}
	if _, err := schema.NewVlanID(config.VlanID); err != nil {
		return err
	}

	entry := schema.VlanEntry{VlanID: config.VlanID, Description: config.Description}
	if err := o.db.Set(ctx, schema.Appl, schema.VlanApplKey(vlanID), entry); err != nil {
		return err
	}

	o.mu.Lock()
	o.vlans[vlanID] = entry
	o.mu.Unlock()

	logging.WithComponent("orchd").WithField("vlan", vlanName).Info("processed vlan config")

	n, err := schema.NewNotification(schema.OpSet, schema.TableVlanApp, vlanName, entry)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelVlanTable, n)
}

// deleteVlan removes a VLAN's APPL_DB projection and publishes a
// deletion notification.
func (o *Orchestrator) deleteVlan(ctx context.Context, vlanName string) error {
	vlanID, err := schema.ParseVlanName(vlanName)
	if err != nil {
		return err
	}

	if err := o.db.Del(ctx, schema.Appl, schema.VlanApplKey(vlanID)); err != nil {
		return err
	}

	o.mu.Lock()
	delete(o.vlans, vlanID)
	o.mu.Unlock()

	logging.WithComponent("orchd").WithField("vlan", vlanName).Info("deleted vlan")

	n, err := schema.NewNotification(schema.OpDel, schema.TableVlanApp, vlanName, nil)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelVlanTable, n)
}

func (o *Orchestrator) handleVlanNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("orchd").WithField("key", n.Key)
	vlanName := strings.TrimPrefix(n.Key, schema.TableVlan+"|")

	switch {
	case n.Operation.IsSet():
		if err := o.processVlanConfig(ctx, vlanName); err != nil {
			log.WithField("error", err).Error("failed to process vlan")
		}
	case n.Operation.IsDel():
		if err := o.deleteVlan(ctx, vlanName); err != nil {
			log.WithField("error", err).Error("failed to delete vlan")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
