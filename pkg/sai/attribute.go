// Package sai is the hardware adapter: it loads a vendor-supplied
// shared library exposing a stable C ABI of per-feature-area dispatch
// tables and presents a typed, memory-safe facade over them.
package sai

import "github.com/racoon-project/racoon/pkg/schema"

// AttrValueType tags the active variant of an Attribute's value, one
// case per primitive the vendor union supports.
type AttrValueType int

const (
	AttrBool AttrValueType = iota
	AttrU8
	AttrU16
	AttrU32
	AttrU64
	AttrS32
	AttrOID
	AttrMAC
	AttrIPv4
	AttrIPv6
	AttrOIDList
)

// Attribute is the Go-side mirror of the vendor's {id, tagged-union}
// pair. Attribute ids are signed 32-bit.
type Attribute struct {
	ID   int32
	Type AttrValueType

	Bool    bool
	U8      uint8
	U16     uint16
	U32     uint32
	U64     uint64
	S32     int32
	OID     schema.OID
	MAC     schema.MAC
	IPv4    [4]byte
	IPv6    [16]byte
	OIDList []schema.OID
}

// NewBoolAttr constructs a bool-valued attribute.
func NewBoolAttr(id int32, v bool) Attribute { return Attribute{ID: id, Type: AttrBool, Bool: v} }

// NewU8Attr constructs a uint8-valued attribute.
func NewU8Attr(id int32, v uint8) Attribute { return Attribute{ID: id, Type: AttrU8, U8: v} }

// NewU16Attr constructs a uint16-valued attribute.
func NewU16Attr(id int32, v uint16) Attribute { return Attribute{ID: id, Type: AttrU16, U16: v} }

// NewU32Attr constructs a uint32-valued attribute.
func NewU32Attr(id int32, v uint32) Attribute { return Attribute{ID: id, Type: AttrU32, U32: v} }

// NewU64Attr constructs a uint64-valued attribute.
func NewU64Attr(id int32, v uint64) Attribute { return Attribute{ID: id, Type: AttrU64, U64: v} }

// NewS32Attr constructs a signed-32-bit-valued attribute (used for enum
// attributes such as tagging mode or packet action).
func NewS32Attr(id int32, v int32) Attribute { return Attribute{ID: id, Type: AttrS32, S32: v} }

// NewOIDAttr constructs an OID-valued attribute.
func NewOIDAttr(id int32, v schema.OID) Attribute { return Attribute{ID: id, Type: AttrOID, OID: v} }

// NewMACAttr constructs a MAC-valued attribute.
func NewMACAttr(id int32, v schema.MAC) Attribute { return Attribute{ID: id, Type: AttrMAC, MAC: v} }

// NewOIDListAttr constructs an OID-list-valued attribute.
func NewOIDListAttr(id int32, v []schema.OID) Attribute {
	return Attribute{ID: id, Type: AttrOIDList, OIDList: v}
}
