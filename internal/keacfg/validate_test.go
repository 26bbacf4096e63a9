package keacfg

import (
	"strings"
	"testing"
)

func assertValid(t *testing.T, r *Result) {
	t.Helper()
	if !r.Valid || len(r.Errors) != 0 {
		t.Fatalf("expected valid result, got errors %v", r.Errors)
	}
}

func assertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	if r.Valid {
		t.Fatalf("expected invalid result, got valid (warnings %v)", r.Warnings)
	}
	for _, e := range r.Errors {
		if strings.Contains(e, substr) {
			return
		}
	}
	t.Fatalf("no error containing %q in %v", substr, r.Errors)
}

func TestValidatePool(t *testing.T) {
	assertValid(t, ValidatePool(Pool{Pool: "192.168.1.100-192.168.1.200"}))
	assertValid(t, ValidatePool(Pool{Pool: "192.168.1.100"}))

	assertErrorContains(t, ValidatePool(Pool{Pool: "192.168.1.200-192.168.1.100"}), "start must be <= end")
	assertErrorContains(t, ValidatePool(Pool{Pool: "not-a-range"}), "not a valid IPv4 range")
	assertErrorContains(t, ValidatePool(Pool{Pool: "10.0.0.1", ClientClass: "9bad"}), "client class")
}

func TestValidateSubnet4(t *testing.T) {
	t.Run("valid subnet with pools and reservation", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Pools: []Pool{
				{Pool: "192.168.1.100-192.168.1.150"},
				{Pool: "192.168.1.151-192.168.1.200"},
			},
			Reservations: []Reservation{
				{HWAddress: "aa:bb:cc:dd:ee:ff", IPAddress: "192.168.1.10"},
			},
		})
		assertValid(t, r)
	})

	t.Run("missing subnet", func(t *testing.T) {
		assertErrorContains(t, ValidateSubnet4(Subnet4{}), "subnet is required")
	})

	t.Run("malformed cidr", func(t *testing.T) {
		assertErrorContains(t, ValidateSubnet4(Subnet4{Subnet: "192.168.1.0/33"}), "not a valid IPv4 CIDR")
	})

	t.Run("pool outside subnet", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Pools:  []Pool{{Pool: "192.168.2.10-192.168.2.20"}},
		})
		assertErrorContains(t, r, "outside subnet")
	})

	t.Run("overlapping pools", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Pools: []Pool{
				{Pool: "192.168.1.100-192.168.1.150"},
				{Pool: "192.168.1.140-192.168.1.200"},
			},
		})
		assertErrorContains(t, r, "overlapping pools")
	})

	t.Run("adjacent pools are fine", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Pools: []Pool{
				{Pool: "192.168.1.100-192.168.1.150"},
				{Pool: "192.168.1.151-192.168.1.200"},
			},
		})
		assertValid(t, r)
	})

	t.Run("no pools is a warning, not an error", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{Subnet: "192.168.1.0/24"})
		assertValid(t, r)
		if len(r.Warnings) == 0 {
			t.Error("expected a no-pools warning")
		}
	})

	t.Run("reservation outside subnet", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Reservations: []Reservation{
				{HWAddress: "aa:bb:cc:dd:ee:ff", IPAddress: "10.0.0.5"},
			},
		})
		assertErrorContains(t, r, "outside subnet")
	})

	t.Run("reversed pool reported once", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Pools:  []Pool{{Pool: "192.168.1.200-192.168.1.100"}},
		})
		if len(r.Errors) != 1 {
			t.Fatalf("expected exactly one error, got %v", r.Errors)
		}
		assertErrorContains(t, r, "start must be <= end")
	})
}

func TestValidateReservation(t *testing.T) {
	tests := []struct {
		name    string
		res     Reservation
		errPart string // empty means valid
	}{
		{
			"valid mac reservation",
			Reservation{HWAddress: "aa:bb:cc:dd:ee:ff", IPAddress: "192.168.1.10", Hostname: "printer.lan"},
			"",
		},
		{
			"hyphen-separated mac",
			Reservation{HWAddress: "AA-BB-CC-DD-EE-FF", IPAddress: "192.168.1.10"},
			"",
		},
		{
			"valid duid reservation with v6 addresses",
			Reservation{DUID: "00:01:00:01:aa:bb", IPAddresses: []string{"2001:db8::10"}},
			"",
		},
		{
			"prefix delegation reservation",
			Reservation{DUID: "0001aabb", Prefixes: []string{"2001:db8:1::/64"}},
			"",
		},
		{"no identifier", Reservation{IPAddress: "192.168.1.10"}, "hw-address or duid"},
		{"bad mac", Reservation{HWAddress: "aa:bb:cc:dd:ee", IPAddress: "192.168.1.10"}, "not a valid MAC"},
		{"mac with junk", Reservation{HWAddress: "zz:bb:cc:dd:ee:ff", IPAddress: "192.168.1.10"}, "not a valid MAC"},
		{"bad duid", Reservation{DUID: "xyz", IPAddress: "192.168.1.10"}, "not valid hex"},
		{"no address", Reservation{HWAddress: "aa:bb:cc:dd:ee:ff"}, "needs an ip-address"},
		{"bad ip", Reservation{HWAddress: "aa:bb:cc:dd:ee:ff", IPAddress: "192.168.1.256"}, "not a valid IPv4"},
		{"v4 address in v6 list", Reservation{DUID: "0001", IPAddresses: []string{"192.168.1.10"}}, "not a valid IPv6"},
		{"bad prefix length", Reservation{DUID: "0001", Prefixes: []string{"2001:db8::/129"}}, "not a valid IPv6 prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateReservation(tt.res)
			if tt.errPart == "" {
				assertValid(t, r)
				return
			}
			assertErrorContains(t, r, tt.errPart)
		})
	}
}

func TestValidateClientClass(t *testing.T) {
	tests := []struct {
		name    string
		class   ClientClass
		errPart string
	}{
		{
			"valid class",
			ClientClass{Name: "voip-phones", Test: "option[60].text == 'sip'"},
			"",
		},
		{
			"valid class with pxe fields",
			ClientClass{
				Name:         "pxe_clients",
				Test:         "member('ALL')",
				NextServer:   "192.168.1.5",
				BootFileName: "pxelinux.0",
			},
			"",
		},
		{"missing name", ClientClass{Test: "x"}, "name is required"},
		{"name starts with digit", ClientClass{Name: "1class", Test: "x"}, "must start with a letter"},
		{"name with space", ClientClass{Name: "my class", Test: "x"}, "must start with a letter"},
		{"empty test", ClientClass{Name: "c"}, "test expression is required"},
		{"blank test", ClientClass{Name: "c", Test: "   "}, "test expression is required"},
		{"bad next-server", ClientClass{Name: "c", Test: "x", NextServer: "300.1.1.1"}, "next-server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateClientClass(tt.class)
			if tt.errPart == "" {
				assertValid(t, r)
				return
			}
			assertErrorContains(t, r, tt.errPart)
		})
	}
}

func TestValidateOptionDef(t *testing.T) {
	tests := []struct {
		name    string
		def     OptionDef
		errPart string
	}{
		{"valid custom def", OptionDef{Name: "acme-server", Code: 224, Type: "ipv4-address"}, ""},
		{"standard code with canonical name", OptionDef{Name: "routers", Code: 3, Type: "ipv4-address"}, ""},
		{"standard code with wrong name", OptionDef{Name: "my-routers", Code: 3, Type: "ipv4-address"}, "reserved for standard option"},
		{"code zero", OptionDef{Name: "x", Code: 0, Type: "string"}, "outside the dhcp4 range"},
		{"code 255", OptionDef{Name: "x", Code: 255, Type: "string"}, "outside the dhcp4 range"},
		{"dhcp6 code above 254 is fine", OptionDef{Name: "x", Code: 2000, Type: "string", Space: SpaceDHCPv6}, ""},
		{"unknown type", OptionDef{Name: "x", Code: 224, Type: "float"}, "unknown option type"},
		{"missing type", OptionDef{Name: "x", Code: 224}, "needs a type"},
		{"missing name", OptionDef{Code: 224, Type: "string"}, "needs a name"},
		{"record without record-types", OptionDef{Name: "x", Code: 224, Type: "record"}, "record-types"},
		// Code outside the reserved table is not cross-checked against any name.
		{"unreserved code with arbitrary name", OptionDef{Name: "whatever", Code: 200, Type: "string"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateOptionDef(tt.def)
			if tt.errPart == "" {
				assertValid(t, r)
				return
			}
			assertErrorContains(t, r, tt.errPart)
		})
	}
}

func TestValidateOptionValue(t *testing.T) {
	t.Run("missing identifier", func(t *testing.T) {
		assertErrorContains(t, ValidateOptionValue(OptionValue{Data: "x"}), "name or a code")
	})

	t.Run("vendor option data must be hex", func(t *testing.T) {
		assertErrorContains(t, ValidateOptionValue(OptionValue{Code: 43, Data: "nothex"}), "hex string")
		assertErrorContains(t, ValidateOptionValue(OptionValue{Code: 125, Data: "abc"}), "hex string")
		assertValid(t, ValidateOptionValue(OptionValue{Code: 43, Data: "0x010141"}))
	})

	t.Run("contradictory send flags", func(t *testing.T) {
		r := ValidateOptionValue(OptionValue{Name: "routers", Data: "192.168.1.1", AlwaysSend: true, NeverSend: true})
		assertErrorContains(t, r, "mutually exclusive")
	})

	t.Run("empty data warns", func(t *testing.T) {
		r := ValidateOptionValue(OptionValue{Name: "routers"})
		assertValid(t, r)
		if len(r.Warnings) == 0 {
			t.Error("expected empty-data warning")
		}
	})

	t.Run("never-send with no data is quiet", func(t *testing.T) {
		r := ValidateOptionValue(OptionValue{Name: "routers", NeverSend: true})
		assertValid(t, r)
		if len(r.Warnings) != 0 {
			t.Errorf("unexpected warnings %v", r.Warnings)
		}
	})

	t.Run("duplicate codes surface through subnet validation", func(t *testing.T) {
		r := ValidateSubnet4(Subnet4{
			Subnet: "192.168.1.0/24",
			Pools:  []Pool{{Pool: "192.168.1.100-192.168.1.200"}},
			OptionData: []OptionValue{
				{Code: 43, Data: "0101ff"},
				{Code: 43, Data: "0102ffff"},
			},
		})
		assertErrorContains(t, r, "Duplicate option code: 43")
	})
}
