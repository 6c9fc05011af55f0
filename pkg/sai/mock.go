package sai

import (
	"sync"

	"github.com/racoon-project/racoon/pkg/schema"
)

// MockAdapter is an in-memory Adapter used to test syncd without a
// vendor library or real hardware. It assigns OIDs
// sequentially and records every created object so tests can assert on
// the realized state without reaching into vendor internals.
type MockAdapter struct {
	mu sync.Mutex

	nextOID schema.OID

	Switches    map[schema.OID]struct{}
	Ports       map[schema.OID]map[int32]Attribute
	Vlans       map[schema.OID]uint16
	VlanMembers map[schema.OID]mockVlanMember
	Lags        map[schema.OID]struct{}
	LagMembers  map[schema.OID]mockLagMember
	FdbEntries  map[mockFdbKey]mockFdbEntry

	// FailNext, if set, is returned (and cleared) by the next call,
	// letting tests exercise C4's error handling paths.
	FailNext error
}

type mockVlanMember struct {
	switchID, vlanID, bridgePortID schema.OID
	mode                           TaggingMode
}

type mockLagMember struct {
	switchID, lagID, portID schema.OID
}

type mockFdbKey struct {
	switchID schema.OID
	bvID     schema.OID
	mac      schema.MAC
}

type mockFdbEntry struct {
	bridgePortID schema.OID
	entryType    FdbEntryType
}

// NewMockAdapter returns a ready-to-use MockAdapter with switch OID 1
// pre-created, mirroring syncd's assumption that a default switch
// object already exists at startup.
func NewMockAdapter() *MockAdapter {
	m := &MockAdapter{
		nextOID:     2,
		Switches:    map[schema.OID]struct{}{1: {}},
		Ports:       map[schema.OID]map[int32]Attribute{},
		Vlans:       map[schema.OID]uint16{},
		VlanMembers: map[schema.OID]mockVlanMember{},
		Lags:        map[schema.OID]struct{}{},
		LagMembers:  map[schema.OID]mockLagMember{},
		FdbEntries:  map[mockFdbKey]mockFdbEntry{},
	}
	return m
}

var _ Adapter = (*MockAdapter)(nil)

func (m *MockAdapter) takeFailure() error {
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return err
	}
	return nil
}

func (m *MockAdapter) allocOID() schema.OID {
	id := m.nextOID
	m.nextOID++
	return id
}

// CreateSwitch records a new switch object.
func (m *MockAdapter) CreateSwitch(attrs []Attribute) (schema.OID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	id := m.allocOID()
	m.Switches[id] = struct{}{}
	return id, nil
}

// RemoveSwitch deletes a switch object, returning ITEM_NOT_FOUND if
// absent, as the vendor ABI would.
func (m *MockAdapter) RemoveSwitch(id schema.OID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.Switches[id]; !ok {
		return toResult("remove_switch", StatusItemNotFound)
	}
	delete(m.Switches, id)
	return nil
}

// SetSwitchAttribute is a no-op success; the mock does not track
// arbitrary switch attribute state beyond port enumeration.
func (m *MockAdapter) SetSwitchAttribute(id schema.OID, attr Attribute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takeFailure()
}

// GetSwitchAttribute returns the configured port list for
// AttrSwitchPortList, or a zero attribute otherwise.
func (m *MockAdapter) GetSwitchAttribute(id schema.OID, attrID int32) (Attribute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return Attribute{}, err
	}
	if attrID == AttrSwitchPortList {
		ports := make([]schema.OID, 0, len(m.Ports))
		for oid := range m.Ports {
			ports = append(ports, oid)
		}
		return NewOIDListAttr(attrID, ports), nil
	}
	return Attribute{ID: attrID, Type: AttrU32}, nil
}

// SeedPort registers a port OID the mock will report back from
// GetSwitchAttribute(AttrSwitchPortList), for tests driving C4's
// bootstrap leg.
func (m *MockAdapter) SeedPort(id schema.OID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Ports[id] == nil {
		m.Ports[id] = map[int32]Attribute{}
	}
}

// SetPortAttribute records the attribute against the port.
func (m *MockAdapter) SetPortAttribute(id schema.OID, attr Attribute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if m.Ports[id] == nil {
		m.Ports[id] = map[int32]Attribute{}
	}
	m.Ports[id][attr.ID] = attr
	return nil
}

// GetPortAttribute returns a previously set attribute.
func (m *MockAdapter) GetPortAttribute(id schema.OID, attrID int32) (Attribute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return Attribute{}, err
	}
	if attrs, ok := m.Ports[id]; ok {
		if a, ok := attrs[attrID]; ok {
			return a, nil
		}
	}
	return Attribute{ID: attrID, Type: AttrU32}, nil
}

// GetPortStats returns zeroed counters; the mock keeps no counter
// state.
func (m *MockAdapter) GetPortStats(id schema.OID, counterIDs []int32) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	return make([]uint64, len(counterIDs)), nil
}

// ClearPortStats is a no-op success.
func (m *MockAdapter) ClearPortStats(id schema.OID, counterIDs []int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takeFailure()
}

// CreateVlan records a new vlan object, returning ITEM_ALREADY_EXISTS
// if the vlan id is already in use, as the vendor ABI would for a
// duplicate create. The mock does not record which switch a vlan
// belongs to, so switchID plays no part in the check.
func (m *MockAdapter) CreateVlan(switchID schema.OID, vlanID uint16) (schema.OID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	for _, v := range m.Vlans {
		if v == vlanID {
			return 0, toResult("create_vlan", StatusItemAlreadyExists)
		}
	}
	id := m.allocOID()
	m.Vlans[id] = vlanID
	return id, nil
}

// RemoveVlan deletes a vlan object.
func (m *MockAdapter) RemoveVlan(id schema.OID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.Vlans[id]; !ok {
		return toResult("remove_vlan", StatusItemNotFound)
	}
	delete(m.Vlans, id)
	return nil
}

// CreateVlanMember records a new vlan member object.
func (m *MockAdapter) CreateVlanMember(switchID, vlanID, bridgePortID schema.OID, mode TaggingMode) (schema.OID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	for _, vm := range m.VlanMembers {
		if vm.vlanID == vlanID && vm.bridgePortID == bridgePortID {
			return 0, toResult("create_vlan_member", StatusItemAlreadyExists)
		}
	}
	id := m.allocOID()
	m.VlanMembers[id] = mockVlanMember{switchID: switchID, vlanID: vlanID, bridgePortID: bridgePortID, mode: mode}
	return id, nil
}

// RemoveVlanMember deletes a vlan member object.
func (m *MockAdapter) RemoveVlanMember(id schema.OID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.VlanMembers[id]; !ok {
		return toResult("remove_vlan_member", StatusItemNotFound)
	}
	delete(m.VlanMembers, id)
	return nil
}

// SetVlanAttribute is a no-op success.
func (m *MockAdapter) SetVlanAttribute(id schema.OID, attr Attribute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takeFailure()
}

// GetVlanAttribute returns a zero attribute; the mock does not track
// arbitrary vlan attribute state.
func (m *MockAdapter) GetVlanAttribute(id schema.OID, attrID int32) (Attribute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return Attribute{}, err
	}
	return Attribute{ID: attrID, Type: AttrU32}, nil
}

// CreateFdbEntry records a static or dynamic FDB entry keyed by
// switch/bv/mac, returning ITEM_ALREADY_EXISTS on a duplicate key.
func (m *MockAdapter) CreateFdbEntry(switchID schema.OID, mac schema.MAC, bvID, bridgePortID schema.OID, entryType FdbEntryType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	key := mockFdbKey{switchID: switchID, bvID: bvID, mac: mac}
	if _, ok := m.FdbEntries[key]; ok {
		return toResult("create_fdb_entry", StatusItemAlreadyExists)
	}
	m.FdbEntries[key] = mockFdbEntry{bridgePortID: bridgePortID, entryType: entryType}
	return nil
}

// RemoveFdbEntry deletes an FDB entry.
func (m *MockAdapter) RemoveFdbEntry(switchID schema.OID, mac schema.MAC, bvID schema.OID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	key := mockFdbKey{switchID: switchID, bvID: bvID, mac: mac}
	if _, ok := m.FdbEntries[key]; !ok {
		return toResult("remove_fdb_entry", StatusItemNotFound)
	}
	delete(m.FdbEntries, key)
	return nil
}

// FlushFdbEntries clears every dynamic entry on switchID, mirroring the
// vendor semantics racoon relies on (static entries are preserved).
func (m *MockAdapter) FlushFdbEntries(switchID schema.OID, attrs []Attribute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	for key, entry := range m.FdbEntries {
		if key.switchID == switchID && entry.entryType == FdbEntryDynamic {
			delete(m.FdbEntries, key)
		}
	}
	return nil
}

// CreateLag records a new lag object.
func (m *MockAdapter) CreateLag(switchID schema.OID, attrs []Attribute) (schema.OID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	id := m.allocOID()
	m.Lags[id] = struct{}{}
	return id, nil
}

// RemoveLag deletes a lag object.
func (m *MockAdapter) RemoveLag(id schema.OID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.Lags[id]; !ok {
		return toResult("remove_lag", StatusItemNotFound)
	}
	delete(m.Lags, id)
	return nil
}

// CreateLagMember records a new lag member object, returning
// ITEM_ALREADY_EXISTS if portID is already a member of any lag, since a
// physical port cannot join two lags at once.
func (m *MockAdapter) CreateLagMember(switchID, lagID, portID schema.OID) (schema.OID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	for _, lm := range m.LagMembers {
		if lm.portID == portID {
			return 0, toResult("create_lag_member", StatusItemAlreadyExists)
		}
	}
	id := m.allocOID()
	m.LagMembers[id] = mockLagMember{switchID: switchID, lagID: lagID, portID: portID}
	return id, nil
}

// RemoveLagMember deletes a lag member object.
func (m *MockAdapter) RemoveLagMember(id schema.OID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.LagMembers[id]; !ok {
		return toResult("remove_lag_member", StatusItemNotFound)
	}
	delete(m.LagMembers, id)
	return nil
}

// SetLagAttribute is a no-op success.
func (m *MockAdapter) SetLagAttribute(id schema.OID, attr Attribute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takeFailure()
}

// Close is a no-op; the mock holds no external resources.
func (m *MockAdapter) Close() error {
	return nil
}
