package sai

import "github.com/racoon-project/racoon/pkg/schema"

// Attribute ids used by this adapter's per-feature operations. No
// vendor header is vendored here; only the call shape this adapter
// actually exercises is defined.
const (
	AttrVlanVlanID int32 = iota + 1
)

const (
	AttrVlanMemberVlanID int32 = iota + 1
	AttrVlanMemberBridgePortID
	AttrVlanMemberTaggingMode
)

const (
	AttrLagMemberLagID int32 = iota + 1
	AttrLagMemberPortID
)

const (
	AttrFdbEntryType int32 = iota + 1
	AttrFdbEntryBridgePortID
	AttrFdbEntryPacketAction
)

const (
	AttrSwitchPortList int32 = iota + 1
)

// FdbEntryType distinguishes dynamically-learned from statically-pinned
// FDB entries.
type FdbEntryType int32

const (
	FdbEntryDynamic FdbEntryType = 0
	FdbEntryStatic  FdbEntryType = 1
)

// PacketAction is the FDB forwarding action; racoon only ever programs
// Forward, but the vendor ABI requires it be stated explicitly.
type PacketAction int32

const PacketActionForward PacketAction = 0

// TaggingMode mirrors schema.TaggingMode as the vendor-ABI-facing
// integer encoding.
type TaggingMode int32

const (
	TaggingModeUntagged       TaggingMode = 0
	TaggingModeTagged         TaggingMode = 1
	TaggingModePriorityTagged TaggingMode = 2
)

// FromSchemaTaggingMode converts the schema-level tagging mode to its
// vendor-ABI encoding.
func FromSchemaTaggingMode(m schema.TaggingMode) TaggingMode {
	switch m {
	case schema.Tagged:
		return TaggingModeTagged
	case schema.PriorityTagged:
		return TaggingModePriorityTagged
	default:
		return TaggingModeUntagged
	}
}
