package vendoropts

import "encoding/binary"

// TR-069 (CWMP) sub-option types inside DHCP option 43.
const (
	TR069SubACSURL           = 1
	TR069SubProvisioningCode = 2
	TR069SubUsername         = 3
	TR069SubPassword         = 4
	TR069SubInformInterval   = 5
)

// TR069Params holds the CPE auto-configuration profile fields.
// Zero-valued string fields and a nil InformInterval are omitted from the
// encoded payload.
type TR069Params struct {
	ACSURL           string  `json:"acs_url"`
	ProvisioningCode string  `json:"provisioning_code"`
	Username         string  `json:"username"`
	Password         string  `json:"password"`
	InformInterval   *uint32 `json:"inform_interval,omitempty"`
}

// EncodeTR069 builds the option 43 payload for a TR-069 ACS profile.
// Sub-options are emitted in fixed type order (1..5); the inform interval is
// a 4-byte big-endian unsigned integer.
func EncodeTR069(params TR069Params) (string, error) {
	var subs []SubOption
	if params.ACSURL != "" {
		subs = append(subs, SubOption{Type: TR069SubACSURL, Value: []byte(params.ACSURL)})
	}
	if params.ProvisioningCode != "" {
		subs = append(subs, SubOption{Type: TR069SubProvisioningCode, Value: []byte(params.ProvisioningCode)})
	}
	if params.Username != "" {
		subs = append(subs, SubOption{Type: TR069SubUsername, Value: []byte(params.Username)})
	}
	if params.Password != "" {
		subs = append(subs, SubOption{Type: TR069SubPassword, Value: []byte(params.Password)})
	}
	if params.InformInterval != nil {
		interval := make([]byte, 4)
		binary.BigEndian.PutUint32(interval, *params.InformInterval)
		subs = append(subs, SubOption{Type: TR069SubInformInterval, Value: interval})
	}
	return EncodeTLV(subs)
}
