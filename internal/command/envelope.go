// Package command builds Kea control-agent command envelopes. The console
// only prepares envelopes; issuing them to the control agent's HTTP endpoint
// is the operator's (or an external client's) job.
package command

import (
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/keacfg"
)

// Service names understood by the control agent.
const (
	ServiceDHCP4 = "dhcp4"
	ServiceDHCP6 = "dhcp6"
)

// Envelope is the JSON shape the control agent accepts.
type Envelope struct {
	Command   string   `json:"command"`
	Service   []string `json:"service,omitempty"`
	Arguments any      `json:"arguments,omitempty"`
}

// New builds an envelope for an arbitrary command.
func New(cmd string, service []string, args any) Envelope {
	return Envelope{Command: cmd, Service: service, Arguments: args}
}

// Subnet4Add wraps a validated subnet into a subnet4-add command.
func Subnet4Add(s keacfg.Subnet4) Envelope {
	return Envelope{
		Command:   "subnet4-add",
		Service:   []string{ServiceDHCP4},
		Arguments: map[string]any{"subnet4": []keacfg.Subnet4{s}},
	}
}

// Subnet4Update wraps a validated subnet into a subnet4-update command.
func Subnet4Update(s keacfg.Subnet4) Envelope {
	return Envelope{
		Command:   "subnet4-update",
		Service:   []string{ServiceDHCP4},
		Arguments: map[string]any{"subnet4": []keacfg.Subnet4{s}},
	}
}

// Subnet4Del builds a subnet4-del command for a subnet ID.
func Subnet4Del(id int64) Envelope {
	return Envelope{
		Command:   "subnet4-del",
		Service:   []string{ServiceDHCP4},
		Arguments: map[string]any{"id": id},
	}
}

// ReservationAdd wraps a validated reservation into a reservation-add
// command scoped to a subnet.
func ReservationAdd(subnetID int64, r keacfg.Reservation) Envelope {
	return Envelope{
		Command: "reservation-add",
		Service: []string{ServiceDHCP4},
		Arguments: map[string]any{
			"reservation": reservationArgs(subnetID, r),
		},
	}
}

// ReservationDel builds a reservation-del command keyed by address.
func ReservationDel(subnetID int64, ipAddress string) Envelope {
	return Envelope{
		Command: "reservation-del",
		Service: []string{ServiceDHCP4},
		Arguments: map[string]any{
			"subnet-id":  subnetID,
			"ip-address": ipAddress,
		},
	}
}

// ClassAdd wraps a validated client class into a class-add command.
func ClassAdd(c keacfg.ClientClass) Envelope {
	return Envelope{
		Command:   "class-add",
		Service:   []string{ServiceDHCP4},
		Arguments: map[string]any{"client-classes": []keacfg.ClientClass{c}},
	}
}

// ClassUpdate wraps a validated client class into a class-update command.
func ClassUpdate(c keacfg.ClientClass) Envelope {
	return Envelope{
		Command:   "class-update",
		Service:   []string{ServiceDHCP4},
		Arguments: map[string]any{"client-classes": []keacfg.ClientClass{c}},
	}
}

// ClassDel builds a class-del command by class name.
func ClassDel(name string) Envelope {
	return Envelope{
		Command:   "class-del",
		Service:   []string{ServiceDHCP4},
		Arguments: map[string]any{"name": name},
	}
}

type reservationWithSubnet struct {
	keacfg.Reservation
	SubnetID int64 `json:"subnet-id"`
}

func reservationArgs(subnetID int64, r keacfg.Reservation) reservationWithSubnet {
	return reservationWithSubnet{Reservation: r, SubnetID: subnetID}
}
