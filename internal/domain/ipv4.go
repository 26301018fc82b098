package domain

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// ValidateIPv4 accepts only dotted-decimal IPv4 addresses: four octets,
// no leading zeros, no IPv6 or zone forms.
func ValidateIPv4(ip string) error {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
	}
	return nil
}

// IPv4Number returns the big-endian 32-bit form of ip, or 0 if ip does not
// parse.
func IPv4Number(ip string) uint32 {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return 0
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}
