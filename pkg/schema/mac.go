package schema

import (
	"fmt"
	"strings"
)

// MAC is a 6-byte hardware address.
type MAC [6]byte

// ParseMAC accepts colon, dash, or dot separated hex, case-insensitively,
// and returns the canonical 6-byte value.
func ParseMAC(s string) (MAC, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', '.':
			return -1
		default:
			return r
		}
	}, s)

	if len(cleaned) != 12 {
		return MAC{}, &InvalidMacAddressError{Value: s}
	}

	var mac MAC
	for i := 0; i < 6; i++ {
		var b byte
		if _, err := fmt.Sscanf(cleaned[i*2:i*2+2], "%02x", &b); err != nil {
			return MAC{}, &InvalidMacAddressError{Value: s}
		}
		mac[i] = b
	}
	return mac, nil
}

// String renders the canonical lowercase colon form.
func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Bytes returns a copy of the address as a byte slice.
func (m MAC) Bytes() []byte {
	b := make([]byte, 6)
	copy(b, m[:])
	return b
}
