package keacfg

import (
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/miekg/dns"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/pkg/ipv4calc"
)

var (
	macRE       = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)
	duidRE      = regexp.MustCompile(`^[0-9A-Fa-f]{2}([:-]?[0-9A-Fa-f]{2})+$`)
	classNameRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// ValidatePool checks one pool fragment in isolation: the range must be
// "start-end" or a single IPv4 address, with start <= end.
func ValidatePool(p Pool) *Result {
	r := newResult()
	checkPoolRange(r, p.Pool)
	if p.ClientClass != "" && !classNameRE.MatchString(p.ClientClass) {
		r.errorf("pool %q: invalid client class name %q", p.Pool, p.ClientClass)
	}
	r.merge(ValidateOptionList(p.OptionData))
	return r
}

func checkPoolRange(r *Result, pool string) {
	_, _, err := ipv4calc.ParsePool(pool)
	switch {
	case err == nil:
	case errors.Is(err, ipv4calc.ErrPoolReversed):
		r.errorf("pool %q: start must be <= end", pool)
	default:
		r.errorf("pool %q is not a valid IPv4 range", pool)
	}
}

// ValidateSubnet4 checks a subnet fragment: CIDR shape, pool containment,
// pool overlap, and every nested option list and reservation.
func ValidateSubnet4(s Subnet4) *Result {
	r := newResult()

	if s.Subnet == "" {
		r.errorf("subnet is required")
	}
	network, broadcast, cidrErr := ipv4calc.CIDRRange(s.Subnet)
	if s.Subnet != "" && cidrErr != nil {
		r.errorf("subnet %q is not a valid IPv4 CIDR", s.Subnet)
	}

	pools := make([]string, 0, len(s.Pools))
	for _, p := range s.Pools {
		checkPoolRange(r, p.Pool)
		pools = append(pools, p.Pool)
		if cidrErr == nil && !ipv4calc.PoolWithinCIDR(p.Pool, s.Subnet) {
			if _, _, err := ipv4calc.ParsePool(p.Pool); err == nil {
				r.errorf("pool %q is outside subnet %s", p.Pool, s.Subnet)
			}
		}
		r.merge(ValidateOptionList(p.OptionData))
	}
	if ipv4calc.PoolsOverlap(pools) {
		r.errorf("subnet %s has overlapping pools", s.Subnet)
	}
	if len(s.Pools) == 0 {
		r.warnf("subnet %s has no pools; only reservations will be served", s.Subnet)
	}

	if s.ClientClass != "" && !classNameRE.MatchString(s.ClientClass) {
		r.errorf("invalid client class name %q", s.ClientClass)
	}
	if s.NextServer != "" {
		if _, err := ipv4calc.ParseIPv4(s.NextServer); err != nil {
			r.errorf("next-server %q is not a valid IPv4 address", s.NextServer)
		}
	}

	for _, res := range s.Reservations {
		r.merge(ValidateReservation(res))
		if cidrErr == nil && res.IPAddress != "" {
			if ip, err := ipv4calc.ParseIPv4(res.IPAddress); err == nil && (ip < network || ip > broadcast) {
				r.errorf("reservation %s is outside subnet %s", res.IPAddress, s.Subnet)
			}
		}
	}

	r.merge(ValidateOptionList(s.OptionData))
	return r
}

// ValidateReservation checks a host reservation: identifier grammar, the
// fixed IPv4 address, hostname shape, and v6 address/prefix shapes.
func ValidateReservation(res Reservation) *Result {
	r := newResult()

	if res.HWAddress == "" && res.DUID == "" {
		r.errorf("reservation needs a hw-address or duid")
	}
	if res.HWAddress != "" && !macRE.MatchString(res.HWAddress) {
		r.errorf("hw-address %q is not a valid MAC address", res.HWAddress)
	}
	if res.DUID != "" && !duidRE.MatchString(res.DUID) {
		r.errorf("duid %q is not valid hex", res.DUID)
	}

	if res.IPAddress == "" && len(res.IPAddresses) == 0 && len(res.Prefixes) == 0 {
		r.errorf("reservation needs an ip-address")
	}
	if res.IPAddress != "" {
		if _, err := ipv4calc.ParseIPv4(res.IPAddress); err != nil {
			r.errorf("ip-address %q is not a valid IPv4 address", res.IPAddress)
		}
	}
	for _, addr := range res.IPAddresses {
		if !validIPv6(addr) {
			r.errorf("ip-address %q is not a valid IPv6 address", addr)
		}
	}
	for _, prefix := range res.Prefixes {
		if !validIPv6Prefix(prefix) {
			r.errorf("prefix %q is not a valid IPv6 prefix", prefix)
		}
	}

	if res.Hostname != "" && !validHostname(res.Hostname) {
		r.errorf("hostname %q is not a valid domain name", res.Hostname)
	}

	r.merge(ValidateOptionList(res.OptionData))
	return r
}

// ValidateClientClass checks a client class: identifier grammar, a non-empty
// test expression, and the PXE boot fields.
func ValidateClientClass(c ClientClass) *Result {
	r := newResult()

	if c.Name == "" {
		r.errorf("class name is required")
	} else if !classNameRE.MatchString(c.Name) {
		r.errorf("class name %q must start with a letter and contain only letters, digits, hyphens, and underscores", c.Name)
	}
	if strings.TrimSpace(c.Test) == "" {
		r.errorf("class test expression is required")
	}
	if c.NextServer != "" {
		if _, err := ipv4calc.ParseIPv4(c.NextServer); err != nil {
			r.errorf("next-server %q is not a valid IPv4 address", c.NextServer)
		}
	}
	if c.ServerHostname != "" && !validHostname(c.ServerHostname) {
		r.errorf("server-hostname %q is not a valid domain name", c.ServerHostname)
	}

	r.merge(ValidateOptionList(c.OptionData))
	return r
}

// ValidateOptionDef checks a custom option definition: code range for its
// space, a known type tag, and the reserved-code name table.
func ValidateOptionDef(d OptionDef) *Result {
	r := newResult()

	if d.Name == "" {
		r.errorf("option definition needs a name")
	}

	space := d.Space
	if space == "" {
		space = SpaceDHCPv4
	}
	switch space {
	case SpaceDHCPv4:
		if d.Code < 1 || d.Code > 254 {
			r.errorf("option code %d is outside the dhcp4 range 1-254", d.Code)
		}
		if canonical := StandardOptionName(d.Code); canonical != "" && d.Name != canonical {
			r.errorf("option code %d is reserved for standard option %q", d.Code, canonical)
		}
	case SpaceDHCPv6:
		if d.Code < 1 {
			r.errorf("option code %d is outside the dhcp6 range 1-65535", d.Code)
		}
	}

	if d.Type == "" {
		r.errorf("option definition needs a type")
	} else if !optionDefTypes[d.Type] {
		r.errorf("unknown option type %q", d.Type)
	}
	if d.Type == "record" && d.RecordTypes == "" {
		r.errorf("record option %q needs record-types", d.Name)
	}

	return r
}

// ValidateOptionValue checks one option instance: it must carry a name or a
// code, vendor-encapsulated payloads must be hex, and the send flags must
// not contradict each other.
func ValidateOptionValue(o OptionValue) *Result {
	r := newResult()

	id, err := o.ID()
	if err != nil {
		r.errorf("option needs a name or a code")
		return r
	}

	if o.Code == codeVendorEncapsulated || o.Code == codeVIVSO {
		if !validHexPayload(o.Data) {
			r.errorf("option %s: data must be a hex string", id)
		}
	}
	if o.AlwaysSend && o.NeverSend {
		r.errorf("option %s: always-send and never-send are mutually exclusive", id)
	}
	if o.Data == "" && !o.NeverSend {
		r.warnf("option %s has no data", id)
	}

	return r
}

// ValidateOptionList checks every option in one scope plus the scope-wide
// duplicate constraints.
func ValidateOptionList(options []OptionValue) *Result {
	r := newResult()
	for _, opt := range options {
		r.merge(ValidateOptionValue(opt))
	}
	for _, msg := range ValidateOptionCodes(options) {
		r.errorf("%s", msg)
	}
	return r
}

// validHostname accepts anything Kea would pass to DNS as a host or domain
// name.
func validHostname(s string) bool {
	_, ok := dns.IsDomainName(s)
	return ok
}

func validIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

func validIPv6Prefix(s string) bool {
	addr, lenPart, ok := strings.Cut(s, "/")
	if !ok || !validIPv6(addr) {
		return false
	}
	n, err := strconv.Atoi(lenPart)
	return err == nil && n >= 0 && n <= 128
}
