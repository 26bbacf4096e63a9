package keacfg

// standardOptions4 maps reserved dhcp4 option codes to their canonical Kea
// names. A custom definition reusing one of these codes must keep the
// canonical name. The table is deliberately partial: it covers the codes
// the console's forms offer, and codes outside it are not cross-checked.
var standardOptions4 = map[uint16]string{
	3:   "routers",
	6:   "domain-name-servers",
	12:  "host-name",
	15:  "domain-name",
	26:  "interface-mtu",
	28:  "broadcast-address",
	42:  "ntp-servers",
	43:  "vendor-encapsulated-options",
	44:  "netbios-name-servers",
	51:  "dhcp-lease-time",
	66:  "tftp-server-name",
	67:  "boot-file-name",
	121: "classless-static-route",
	125: "vivso-suboptions",
}

// StandardOptionName returns the canonical dhcp4 name for a reserved code,
// or "" if the code is not in the reserved table.
func StandardOptionName(code uint16) string {
	return standardOptions4[code]
}
