// Package model defines the device model that drives config generation,
// validation, and deployment.
package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Interface status values
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// ACL types
const (
	AclTypeStandard = "standard"
	AclTypeExtended = "extended"
)

// ACL rule actions
const (
	ActionPermit = "permit"
	ActionDeny   = "deny"
)

// DefaultDeviceType is the conventional type for IOS-style devices,
// applied at deploy time when a model does not name one.
const DefaultDeviceType = "cisco_ios"

// DeviceModel is the root record loaded from a device YAML file.
// Absent sections stay empty; field semantics are enforced by the
// validator, never at load time.
type DeviceModel struct {
	Device     DeviceInfo      `yaml:"device"`
	Interfaces []InterfaceSpec `yaml:"interfaces"`
	Routing    RoutingSpec     `yaml:"routing"`
	Security   SecuritySpec    `yaml:"security"`
}

// DeviceInfo identifies the device and how to reach it
type DeviceInfo struct {
	Hostname    string      `yaml:"hostname"`
	IPAddress   string      `yaml:"ip_address"` // management address, dotted quad
	DeviceType  string      `yaml:"device_type"`
	Credentials Credentials `yaml:"credentials"`
}

// Credentials carries login secrets embedded in the model. Environment
// variables override these at deploy time; see deploy.ResolveCredentials.
type Credentials struct {
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	EnablePassword string `yaml:"enable_password"`
}

// InterfaceSpec describes one interface. IPAddress and SubnetMask are
// pointers because present-and-valid, present-but-broken, and absent are
// three different states: the generator only emits an address line when
// both are present, and the validator errors on an address without a mask.
type InterfaceSpec struct {
	Name        string  `yaml:"name"` // e.g. "GigabitEthernet0/0"
	Description string  `yaml:"description"`
	Status      string  `yaml:"status"` // up, down
	IPAddress   *string `yaml:"ip_address"`
	SubnetMask  *string `yaml:"subnet_mask"`
}

// RoutingSpec groups routing protocol sections. Only OSPF exists today.
type RoutingSpec struct {
	OSPF *OspfSpec `yaml:"ospf"`
}

// OspfSpec describes a single OSPF routing instance
type OspfSpec struct {
	Enabled   bool          `yaml:"enabled"`
	ProcessID Token         `yaml:"process_id"`
	Networks  []OspfNetwork `yaml:"networks"`
}

// OspfNetwork is one network statement. Area is a pointer because
// area 0 is a meaningful value; only a missing key counts as absent.
type OspfNetwork struct {
	Network  string `yaml:"network"`
	Wildcard string `yaml:"wildcard"`
	Area     *Token `yaml:"area"`
}

// SecuritySpec groups security sections
type SecuritySpec struct {
	AccessLists []AclSpec `yaml:"access_lists"`
}

// AclSpec is a named access list
type AclSpec struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"` // standard, extended
	Rules []AclRule `yaml:"rules"`
}

// AclRule is one permit/deny entry within an ACL
type AclRule struct {
	Action          string `yaml:"action"` // permit, deny
	Protocol        string `yaml:"protocol"`
	Source          string `yaml:"source"`
	SourceWildcard  string `yaml:"source_wildcard"`
	Destination     string `yaml:"destination"`
	DestinationPort Token  `yaml:"destination_port"`
}

// Token is a YAML scalar captured as text. Model authors write process
// IDs, areas, and ports both as bare numbers and as quoted strings;
// both forms land here unchanged.
type Token string

// UnmarshalYAML accepts any scalar node and keeps its literal text.
func (t *Token) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cannot use %s as a scalar value", value.Line, value.Tag)
	}
	*t = Token(value.Value)
	return nil
}

func (t Token) String() string {
	return string(t)
}

// Empty reports whether the token carries no value.
func (t Token) Empty() bool {
	return t == ""
}

// EffectiveDeviceType returns device_type, or the IOS default when the
// model leaves it out. The validator still warns on the omission.
func (d DeviceInfo) EffectiveDeviceType() string {
	if d.DeviceType != "" {
		return d.DeviceType
	}
	return DefaultDeviceType
}

// Normalize applies model-level defaults in a single pass after load:
// ACL rule source wildcards default to 0.0.0.0 and destinations to
// "any". Absences the validator must still observe (status, description,
// device_type, OSPF process id) are deliberately left untouched.
func (m *DeviceModel) Normalize() {
	for i := range m.Security.AccessLists {
		acl := &m.Security.AccessLists[i]
		for j := range acl.Rules {
			rule := &acl.Rules[j]
			if rule.SourceWildcard == "" {
				rule.SourceWildcard = "0.0.0.0"
			}
			if rule.Destination == "" {
				rule.Destination = "any"
			}
		}
	}
}

// HasAddress reports whether the interface declares both halves of an
// address assignment.
func (i *InterfaceSpec) HasAddress() bool {
	return i.IPAddress != nil && i.SubnetMask != nil
}
