// Package vendoropts encodes vendor-specific DHCP option payloads.
// Option 43 (Vendor Specific Information) carries TLV-framed sub-options;
// some vendor formats expect a bare UTF-8 string rendered as hex instead.
package vendoropts

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrPayloadTooLong is returned when a sub-option value exceeds the single
// length byte of the TLV frame.
var ErrPayloadTooLong = errors.New("sub-option value exceeds 255 bytes")

// SubOption is one TLV entry inside an option 43 payload.
type SubOption struct {
	Type  byte
	Value []byte
}

// EncodeTLV serializes sub-options in input order as type|length|value and
// returns the concatenation as a lowercase hex string.
func EncodeTLV(subs []SubOption) (string, error) {
	var buf []byte
	for _, sub := range subs {
		if len(sub.Value) > 255 {
			return "", fmt.Errorf("%w: sub-option %d is %d bytes", ErrPayloadTooLong, sub.Type, len(sub.Value))
		}
		buf = append(buf, sub.Type, byte(len(sub.Value)))
		buf = append(buf, sub.Value...)
	}
	return hex.EncodeToString(buf), nil
}

// EncodeRawHex renders a UTF-8 string as lowercase hex with no TLV framing.
// Used for vendor formats that expect a bare string, e.g. an inform URL.
func EncodeRawHex(s string) string {
	return hex.EncodeToString([]byte(s))
}
