package syncd

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
)

// bootstrapPorts pairs every CONFIG_DB PORT entry with the OID the
// switch reports for it. Racoon never creates or removes ports: it
// only needs the name-to-OID table to resolve a VLAN member or FDB
// entry's port into the OID the vendor library expects. Ports are
// paired to OIDs positionally, sorted by their numeric suffix against
// the order SAI_SWITCH_ATTR_PORT_LIST returns; this assumes the
// platform's port-to-lane ordering matches CONFIG_DB's Ethernet
// numbering, true of every platform this adapter targets.
func (s *Synchronizer) bootstrapPorts(ctx context.Context) error {
	log := logging.WithComponent("syncd")
	log.Info("bootstrapping port table")

	keys, err := s.db.Keys(ctx, schema.Config, schema.TablePort+"|*")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, strings.TrimPrefix(key, schema.TablePort+"|"))
	}
	sort.Slice(names, func(i, j int) bool {
		return portSortKey(names[i]) < portSortKey(names[j])
	})

	attr, err := s.adapter.GetSwitchAttribute(s.switchID, sai.AttrSwitchPortList)
	if err != nil {
		return err
	}

	n := len(names)
	if len(attr.OIDList) < n {
		n = len(attr.OIDList)
	}
	if len(names) != len(attr.OIDList) {
		log.WithField("config_ports", len(names)).WithField("hardware_ports", len(attr.OIDList)).
			Warn("port count mismatch between CONFIG_DB and switch port list")
	}

	s.mu.Lock()
	for i := 0; i < n; i++ {
		s.portOIDs[names[i]] = attr.OIDList[i]
	}
	s.mu.Unlock()

	log.WithField("count", n).Info("bootstrapped port table")
	return nil
}

// portSortKey extracts the trailing numeric suffix of a port name
// ("Ethernet12" -> 12) so ports sort in lane order rather than
// lexicographic order.
func portSortKey(name string) int {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(name[i:])
	if err != nil {
		return -1
	}
	return n
}

// portOID resolves a port name to its hardware OID.
func (s *Synchronizer) portOID(name string) (schema.OID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	oid, ok := s.portOIDs[name]
	if !ok {
		return 0, &schema.PortNotFoundError{Name: name}
	}
	return oid, nil
}
