package schema

import "strconv"

// PortSpeed is one of the enumerated link speeds.
type PortSpeed int

const (
	Speed1G PortSpeed = iota
	Speed10G
	Speed25G
	Speed40G
	Speed50G
	Speed100G
	Speed200G
	Speed400G
)

var speedToMbps = map[PortSpeed]uint32{
	Speed1G:   1000,
	Speed10G:  10000,
	Speed25G:  25000,
	Speed40G:  40000,
	Speed50G:  50000,
	Speed100G: 100000,
	Speed200G: 200000,
	Speed400G: 400000,
}

var mbpsToSpeed = func() map[uint32]PortSpeed {
	m := make(map[uint32]PortSpeed, len(speedToMbps))
	for speed, mbps := range speedToMbps {
		m[mbps] = speed
	}
	return m
}()

// Mbps returns the decimal megabits-per-second value for the speed.
func (s PortSpeed) Mbps() uint32 {
	return speedToMbps[s]
}

// String renders the speed as the decimal-Mbps wire form, e.g. "10000".
func (s PortSpeed) String() string {
	return strconv.FormatUint(uint64(s.Mbps()), 10)
}

// PortSpeedFromMbps constructs a PortSpeed from its decimal-Mbps wire
// form. Returns false if mbps does not match an enumerated speed.
func PortSpeedFromMbps(mbps uint32) (PortSpeed, bool) {
	s, ok := mbpsToSpeed[mbps]
	return s, ok
}
