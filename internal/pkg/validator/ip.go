package validator

import (
	"net/netip"
	"strings"
)

// UnknownClient keys requests whose address cannot be parsed
const UnknownClient = "unknown"

// IsValidIP reports whether ip is a valid IPv4 or IPv6 address
func IsValidIP(ip string) bool {
	_, err := netip.ParseAddr(NormalizeIP(ip))
	return err == nil
}

// NormalizeIP strips an IPv6 zone identifier (fe80::1%eth0 -> fe80::1)
func NormalizeIP(ip string) string {
	if idx := strings.IndexByte(ip, '%'); idx != -1 {
		return ip[:idx]
	}
	return ip
}

// ClientKey turns a client address into a rate limit key. IPv4-mapped addresses
// count as IPv4 and IPv6 clients are grouped by /64, the smallest block a host
// usually gets.
func ClientKey(ip string) string {
	addr, err := netip.ParseAddr(NormalizeIP(strings.TrimSpace(ip)))
	if err != nil {
		return UnknownClient
	}
	addr = addr.Unmap()
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(64)
	if err != nil {
		return UnknownClient
	}
	return prefix.String()
}
