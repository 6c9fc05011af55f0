package orchd

import (
	"context"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

func (o *Orchestrator) syncLags(ctx context.Context) error {
	log := logging.WithComponent("orchd")
	log.Info("syncing lags from CONFIG_DB")

	keys, err := o.db.Keys(ctx, schema.Config, schema.TableLag+"|PortChannel*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		lagName := strings.TrimPrefix(key, schema.TableLag+"|")
		if err := o.processLagConfig(ctx, lagName); err != nil {
			log.WithField("lag", lagName).WithField("error", err).Warn("failed to sync lag")
		}
	}

	log.WithField("count", len(o.lags)).Info("synced lags")
	return nil
}

func (o *Orchestrator) processLagConfig(ctx context.Context, lagName string) error {
	lagID, err := schema.ParseLagName(lagName)
	if err != nil {
		return err
	}

	var config schema.LagConfig
	if err := o.db.Get(ctx, schema.Config, schema.LagConfigKey(lagID), &config); err != nil {
		return err
	}

	entry := schema.LagEntry{LagID: config.LagID}
	if err := o.db.Set(ctx, schema.Appl, schema.LagApplKey(lagID), entry); err != nil {
		return err
	}

	o.mu.Lock()
	o.lags[lagID] = entry
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpSet, schema.TableLagApp, lagName, entry)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelLagTable, n)
}

func (o *Orchestrator) deleteLag(ctx context.Context, lagName string) error {
	lagID, err := schema.ParseLagName(lagName)
	if err != nil {
		return err
	}

	if err := o.db.Del(ctx, schema.Appl, schema.LagApplKey(lagID)); err != nil {
		return err
	}

	o.mu.Lock()
	delete(o.lags, lagID)
	o.mu.Unlock()

	n, err := schema.NewNotification(schema.OpDel, schema.TableLagApp, lagName, nil)
	if err != nil {
		return err
	}
	return o.db.PublishNotification(ctx, schema.ChannelLagTable, n)
}

func (o *Orchestrator) handleLagNotification(ctx context.Context, n schema.Notification) {
	log := logging.WithComponent("orchd").WithField("key", n.Key)
	lagName := strings.TrimPrefix(n.Key, schema.TableLag+"|")

	switch {
	case n.Operation.IsSet():
		if err := o.processLagConfig(ctx, lagName); err != nil {
			log.WithField("error", err).Error("failed to process lag")
		}
	case n.Operation.IsDel():
		if err := o.deleteLag(ctx, lagName); err != nil {
			log.WithField("error", err).Error("failed to delete lag")
		}
	default:
		log.WithField("operation", n.Operation).Warn("unknown operation")
	}
}
