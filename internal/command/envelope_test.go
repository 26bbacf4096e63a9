package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/keacfg"
)

func marshal(t *testing.T, e Envelope) string {
	t.Helper()
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshaling envelope: %v", err)
	}
	return string(b)
}

func TestSubnet4Add(t *testing.T) {
	env := Subnet4Add(keacfg.Subnet4{
		ID:     7,
		Subnet: "192.168.1.0/24",
		Pools:  []keacfg.Pool{{Pool: "192.168.1.100-192.168.1.200"}},
	})

	got := marshal(t, env)
	for _, want := range []string{
		`"command":"subnet4-add"`,
		`"service":["dhcp4"]`,
		`"subnet":"192.168.1.0/24"`,
		`"pool":"192.168.1.100-192.168.1.200"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope %s missing %s", got, want)
		}
	}
}

func TestReservationAddCarriesSubnetID(t *testing.T) {
	env := ReservationAdd(4, keacfg.Reservation{
		HWAddress: "aa:bb:cc:dd:ee:ff",
		IPAddress: "192.168.1.10",
	})

	got := marshal(t, env)
	for _, want := range []string{
		`"command":"reservation-add"`,
		`"subnet-id":4`,
		`"hw-address":"aa:bb:cc:dd:ee:ff"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope %s missing %s", got, want)
		}
	}
}

func TestClassDel(t *testing.T) {
	got := marshal(t, ClassDel("voip-phones"))
	if !strings.Contains(got, `"command":"class-del"`) || !strings.Contains(got, `"name":"voip-phones"`) {
		t.Errorf("unexpected envelope %s", got)
	}
}

func TestNewOmitsEmptyFields(t *testing.T) {
	got := marshal(t, New("config-get", nil, nil))
	if got != `{"command":"config-get"}` {
		t.Errorf("New envelope = %s", got)
	}
}
