package keacfg

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingIdentifier is returned when an option value carries neither a
// name nor a code.
var ErrMissingIdentifier = errors.New("option needs a name or a code")

// OptionIDKind discriminates how an option is identified.
type OptionIDKind int

const (
	OptionByName OptionIDKind = iota + 1
	OptionByCode
	OptionByBoth
)

// OptionID is the validated identity of an option value: by name, by code,
// or by both. It is only constructed once at least one identifier is known
// to be present.
type OptionID struct {
	Kind OptionIDKind
	Name string
	Code uint16
}

// ID derives the option's identity. A code of 0 is "unset" in Kea's option
// grammar, so it never counts as an identifier.
func (o OptionValue) ID() (OptionID, error) {
	switch {
	case o.Name != "" && o.Code != 0:
		return OptionID{Kind: OptionByBoth, Name: o.Name, Code: o.Code}, nil
	case o.Name != "":
		return OptionID{Kind: OptionByName, Name: o.Name}, nil
	case o.Code != 0:
		return OptionID{Kind: OptionByCode, Code: o.Code}, nil
	default:
		return OptionID{}, ErrMissingIdentifier
	}
}

func (id OptionID) String() string {
	switch id.Kind {
	case OptionByName:
		return id.Name
	case OptionByCode:
		return fmt.Sprintf("code %d", id.Code)
	default:
		return fmt.Sprintf("%s (code %d)", id.Name, id.Code)
	}
}

// ValidateOptionCodes scans one scope's option list for duplicate codes and
// duplicate names. Codes and names are tracked independently: an option
// identified only by name never conflicts with one identified by a different
// code. Messages are emitted in input order.
func ValidateOptionCodes(options []OptionValue) []string {
	msgs := []string{}
	seenCodes := map[uint16]bool{}
	seenNames := map[string]bool{}

	for _, opt := range options {
		if opt.Code != 0 {
			if seenCodes[opt.Code] {
				msgs = append(msgs, fmt.Sprintf("Duplicate option code: %d", opt.Code))
			}
			seenCodes[opt.Code] = true
		}
		if opt.Name != "" {
			if seenNames[opt.Name] {
				msgs = append(msgs, fmt.Sprintf("Duplicate option name: %s", opt.Name))
			}
			seenNames[opt.Name] = true
		}
	}
	return msgs
}

// Vendor-encapsulated option codes whose data field must be raw hex.
const (
	codeVendorEncapsulated = 43
	codeVIVSO              = 125
)

// validHexPayload reports whether s, stripped of an optional 0x prefix, is
// an even-length string of hex digits. The empty payload is valid.
func validHexPayload(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
