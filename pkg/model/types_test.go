package model

import "testing"

func strp(s string) *string { return &s }

func TestNormalize_RuleDefaults(t *testing.T) {
	m := &DeviceModel{
		Security: SecuritySpec{
			AccessLists: []AclSpec{
				{
					Name: "EDGE-IN",
					Type: AclTypeExtended,
					Rules: []AclRule{
						{Action: ActionPermit, Protocol: "tcp", Source: "10.1.0.0"},
						{
							Action:         ActionDeny,
							Protocol:       "udp",
							Source:         "10.2.0.0",
							SourceWildcard: "0.0.255.255",
							Destination:    "192.168.1.0",
						},
					},
				},
			},
		},
	}

	m.Normalize()

	bare := m.Security.AccessLists[0].Rules[0]
	if bare.SourceWildcard != "0.0.0.0" {
		t.Errorf("SourceWildcard = %q, want default %q", bare.SourceWildcard, "0.0.0.0")
	}
	if bare.Destination != "any" {
		t.Errorf("Destination = %q, want default %q", bare.Destination, "any")
	}

	full := m.Security.AccessLists[0].Rules[1]
	if full.SourceWildcard != "0.0.255.255" {
		t.Errorf("Normalize overwrote SourceWildcard: %q", full.SourceWildcard)
	}
	if full.Destination != "192.168.1.0" {
		t.Errorf("Normalize overwrote Destination: %q", full.Destination)
	}
}

func TestNormalize_LeavesValidatorObservedFieldsAlone(t *testing.T) {
	m := &DeviceModel{
		Device:     DeviceInfo{Hostname: "r1"},
		Interfaces: []InterfaceSpec{{Name: "Gi0/0"}},
	}

	m.Normalize()

	if m.Device.DeviceType != "" {
		t.Errorf("Normalize must not fill device_type, got %q", m.Device.DeviceType)
	}
	if m.Interfaces[0].Status != "" {
		t.Errorf("Normalize must not fill interface status, got %q", m.Interfaces[0].Status)
	}
	if m.Interfaces[0].Description != "" {
		t.Errorf("Normalize must not fill interface description, got %q", m.Interfaces[0].Description)
	}
}

func TestEffectiveDeviceType(t *testing.T) {
	d := DeviceInfo{}
	if got := d.EffectiveDeviceType(); got != "cisco_ios" {
		t.Errorf("EffectiveDeviceType() = %q, want %q", got, "cisco_ios")
	}

	d.DeviceType = "cisco_xe"
	if got := d.EffectiveDeviceType(); got != "cisco_xe" {
		t.Errorf("EffectiveDeviceType() = %q, want %q", got, "cisco_xe")
	}
}

func TestHasAddress(t *testing.T) {
	tests := []struct {
		name string
		spec InterfaceSpec
		want bool
	}{
		{"both present", InterfaceSpec{IPAddress: strp("10.0.0.1"), SubnetMask: strp("255.255.255.0")}, true},
		{"ip only", InterfaceSpec{IPAddress: strp("10.0.0.1")}, false},
		{"mask only", InterfaceSpec{SubnetMask: strp("255.255.255.0")}, false},
		{"neither", InterfaceSpec{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.HasAddress(); got != tt.want {
				t.Errorf("HasAddress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToken_Empty(t *testing.T) {
	if !Token("").Empty() {
		t.Error("empty token should report Empty")
	}
	if Token("0").Empty() {
		t.Error("token \"0\" should not report Empty")
	}
}
