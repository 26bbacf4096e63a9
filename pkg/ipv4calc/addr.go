// Package ipv4calc provides integer arithmetic over IPv4 addresses, CIDR
// blocks, and address pools. All functions are pure and operate on dotted-quad
// strings and uint32 values.
package ipv4calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for address parsing failures.
var (
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	ErrInvalidCIDR    = errors.New("invalid CIDR")
	ErrInvalidPool    = errors.New("invalid pool")
	ErrPoolReversed   = errors.New("pool start must be <= end")
)

// ParseIPv4 converts a dotted-quad string to its uint32 value.
// The string must have exactly 4 decimal octets in [0,255] with no
// extraneous characters; leading zeros are rejected so that
// FormatIPv4(ParseIPv4(s)) round-trips exactly.
func ParseIPv4(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	var v uint32
	for _, part := range parts {
		if part == "" || (len(part) > 1 && part[0] == '0') {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		v = v<<8 | uint32(octet)
	}
	return v, nil
}

// FormatIPv4 converts a uint32 to its dotted-quad representation.
func FormatIPv4(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", v>>24, v>>16&0xff, v>>8&0xff, v&0xff)
}

// CIDRRange computes the first (network) and last (broadcast) address of a
// CIDR block as uint32 values.
func CIDRRange(cidr string) (network, broadcast uint32, err error) {
	addrPart, prefixPart, ok := strings.Cut(cidr, "/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCIDR, cidr)
	}

	addr, err := ParseIPv4(addrPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCIDR, cidr)
	}

	prefix, err := strconv.ParseUint(prefixPart, 10, 8)
	if err != nil || prefix > 32 {
		return 0, 0, fmt.Errorf("%w: prefix length in %q", ErrInvalidCIDR, cidr)
	}

	// Shifting a uint32 by 32 yields 0 in Go, so /0 needs no special case.
	mask := ^uint32(0) << (32 - prefix)
	network = addr & mask
	broadcast = network | ^mask
	return network, broadcast, nil
}
