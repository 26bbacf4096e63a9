// Package keacfg validates Kea DHCP configuration fragments before the
// console wraps them into control-agent commands. Field names and JSON tags
// follow Kea's configuration grammar so validated fragments can be embedded
// into command arguments unchanged.
package keacfg

// Subnet4 is an IPv4 subnet fragment.
type Subnet4 struct {
	ID           int64         `json:"id,omitempty"`
	Subnet       string        `json:"subnet"`
	Pools        []Pool        `json:"pools,omitempty"`
	OptionData   []OptionValue `json:"option-data,omitempty"`
	ClientClass  string        `json:"client-class,omitempty"`
	Reservations []Reservation `json:"reservations,omitempty"`
	NextServer   string        `json:"next-server,omitempty"`
}

// Pool is an address pool inside a subnet. The range is expressed as
// "start-end" or a single address.
type Pool struct {
	Pool        string        `json:"pool"`
	OptionData  []OptionValue `json:"option-data,omitempty"`
	ClientClass string        `json:"client-class,omitempty"`
}

// Reservation binds a client identifier to a fixed address.
// IPAddresses and Prefixes are the v6 analogues; they are checked at the
// string level only.
type Reservation struct {
	HWAddress   string        `json:"hw-address,omitempty"`
	DUID        string        `json:"duid,omitempty"`
	IPAddress   string        `json:"ip-address,omitempty"`
	IPAddresses []string      `json:"ip-addresses,omitempty"`
	Prefixes    []string      `json:"prefixes,omitempty"`
	Hostname    string        `json:"hostname,omitempty"`
	OptionData  []OptionValue `json:"option-data,omitempty"`
}

// ClientClass is a named client classification rule. The test expression is
// opaque to the console; Kea evaluates it.
type ClientClass struct {
	Name           string        `json:"name"`
	Test           string        `json:"test"`
	OptionData     []OptionValue `json:"option-data,omitempty"`
	NextServer     string        `json:"next-server,omitempty"`
	ServerHostname string        `json:"server-hostname,omitempty"`
	BootFileName   string        `json:"boot-file-name,omitempty"`
}

// OptionDef declares a custom DHCP option.
type OptionDef struct {
	Name        string `json:"name"`
	Code        uint16 `json:"code"`
	Type        string `json:"type"`
	Space       string `json:"space,omitempty"`
	Array       bool   `json:"array,omitempty"`
	RecordTypes string `json:"record-types,omitempty"`
	Encapsulate string `json:"encapsulate,omitempty"`
}

// OptionValue is an option instance attached to a scope (global, subnet,
// pool, class, or reservation). At least one of Name/Code must be set.
type OptionValue struct {
	Name       string `json:"name,omitempty"`
	Code       uint16 `json:"code,omitempty"`
	Data       string `json:"data,omitempty"`
	Space      string `json:"space,omitempty"`
	AlwaysSend bool   `json:"always-send,omitempty"`
	NeverSend  bool   `json:"never-send,omitempty"`
	CSVFormat  bool   `json:"csv-format,omitempty"`
}

// Option spaces understood by the validator.
const (
	SpaceDHCPv4 = "dhcp4"
	SpaceDHCPv6 = "dhcp6"
)

// Option definition types accepted by Kea.
var optionDefTypes = map[string]bool{
	"empty":        true,
	"binary":       true,
	"boolean":      true,
	"int8":         true,
	"int16":        true,
	"int32":        true,
	"uint8":        true,
	"uint16":       true,
	"uint32":       true,
	"string":       true,
	"fqdn":         true,
	"ipv4-address": true,
	"ipv6-address": true,
	"ipv6-prefix":  true,
	"psid":         true,
	"tuple":        true,
	"record":       true,
}
