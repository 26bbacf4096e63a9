package keacfg

import (
	"errors"
	"reflect"
	"testing"
)

func TestOptionValueID(t *testing.T) {
	tests := []struct {
		name    string
		opt     OptionValue
		want    OptionID
		wantErr bool
	}{
		{
			"by name",
			OptionValue{Name: "routers"},
			OptionID{Kind: OptionByName, Name: "routers"},
			false,
		},
		{
			"by code",
			OptionValue{Code: 43},
			OptionID{Kind: OptionByCode, Code: 43},
			false,
		},
		{
			"by both",
			OptionValue{Name: "routers", Code: 3},
			OptionID{Kind: OptionByBoth, Name: "routers", Code: 3},
			false,
		},
		{"neither", OptionValue{Data: "1.2.3.4"}, OptionID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opt.ID()
			if tt.wantErr {
				if !errors.Is(err, ErrMissingIdentifier) {
					t.Fatalf("ID() error = %v, want ErrMissingIdentifier", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ID(): %v", err)
			}
			if got != tt.want {
				t.Errorf("ID() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateOptionCodes(t *testing.T) {
	tests := []struct {
		name    string
		options []OptionValue
		want    []string
	}{
		{"empty", nil, []string{}},
		{
			"duplicate code",
			[]OptionValue{{Code: 43}, {Code: 43}},
			[]string{"Duplicate option code: 43"},
		},
		{
			"duplicate name",
			[]OptionValue{{Name: "routers"}, {Name: "routers"}},
			[]string{"Duplicate option name: routers"},
		},
		{
			"name-only and code-only never conflict",
			[]OptionValue{{Name: "routers"}, {Code: 6}},
			[]string{},
		},
		{
			"codes and names tracked independently, input order kept",
			[]OptionValue{
				{Name: "routers", Code: 3},
				{Name: "routers", Code: 6},
				{Name: "domain-name-servers", Code: 6},
			},
			[]string{
				"Duplicate option name: routers",
				"Duplicate option code: 6",
			},
		},
		{
			"triple duplicate reported per repeat",
			[]OptionValue{{Code: 43}, {Code: 43}, {Code: 43}},
			[]string{"Duplicate option code: 43", "Duplicate option code: 43"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateOptionCodes(tt.options)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateOptionCodes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidHexPayload(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"0a1b2c", true},
		{"0x0a1b2c", true},
		{"0X0A1B2C", true},
		{"0a1", false},
		{"wxyz", false},
		{"0x", true},
	}
	for _, tt := range tests {
		if got := validHexPayload(tt.in); got != tt.want {
			t.Errorf("validHexPayload(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStandardOptionName(t *testing.T) {
	if got := StandardOptionName(43); got != "vendor-encapsulated-options" {
		t.Errorf("StandardOptionName(43) = %q", got)
	}
	// The table is deliberately partial; uncovered codes return "".
	if got := StandardOptionName(200); got != "" {
		t.Errorf("StandardOptionName(200) = %q, want empty", got)
	}
}
