// Package validate checks device models for problems before deployment.
//
// Validation is the strict counterpart of generation: where pkg/iosgen
// silently skips incomplete entries, Validate reports every missing or
// malformed field it can find. Every check runs against every relevant
// entry, so a single pass over an invalid document surfaces all problems
// at once.
package validate

import (
	"strconv"

	"github.com/confgen-net/confgen/pkg/model"
	"github.com/confgen-net/confgen/pkg/util"
)

// commonProtocols are the protocols ACL rules normally match on. Anything
// else present is flagged as a warning, not an error.
var commonProtocols = map[string]bool{
	"tcp":  true,
	"udp":  true,
	"ip":   true,
	"icmp": true,
}

// Validate runs every check against the model and returns the accumulated
// findings. It never fails and has no side effects; callers decide what to
// do with the report.
func Validate(m *model.DeviceModel) *Report {
	if m == nil {
		m = &model.DeviceModel{}
	}
	r := &Report{}
	checkDevice(r, &m.Device)
	checkInterfaces(r, m.Interfaces)
	checkRouting(r, &m.Routing)
	checkSecurity(r, &m.Security)
	return r
}

func checkDevice(r *Report, d *model.DeviceInfo) {
	if d.Hostname == "" {
		r.errorf("device: hostname is required")
	}
	if d.IPAddress == "" {
		r.errorf("device: ip_address is required")
	} else if !util.IsDottedQuad(d.IPAddress) {
		r.errorf("device: invalid ip_address %q", d.IPAddress)
	}
	if d.DeviceType == "" {
		r.warnf("device: device_type not set, defaulting to %s", model.DefaultDeviceType)
	}
}

func checkInterfaces(r *Report, interfaces []model.InterfaceSpec) {
	if len(interfaces) == 0 {
		r.warnf("no interfaces configured")
		return
	}
	for idx, iface := range interfaces {
		// Nameless interfaces are labelled by position.
		label := iface.Name
		if label == "" {
			label = strconv.Itoa(idx)
		}
		if iface.Name == "" {
			r.errorf("interface %d: name is required", idx)
		}
		if iface.Description == "" {
			r.errorf("interface %s: description is required", label)
		}
		if iface.Status == "" {
			r.errorf("interface %s: status is required", label)
		}
		if iface.IPAddress != nil {
			if !util.IsDottedQuad(*iface.IPAddress) {
				r.errorf("interface %s: invalid ip_address %q", label, *iface.IPAddress)
			}
			if iface.SubnetMask == nil {
				r.errorf("interface %s: subnet_mask is required when ip_address is set", label)
			} else if !util.IsDottedQuad(*iface.SubnetMask) {
				r.errorf("interface %s: invalid subnet_mask %q", label, *iface.SubnetMask)
			}
		}
	}
}

func checkRouting(r *Report, routing *model.RoutingSpec) {
	ospf := routing.OSPF
	if ospf == nil || !ospf.Enabled {
		return
	}
	if ospf.ProcessID.Empty() {
		r.errorf("ospf: process_id is required when ospf is enabled")
	}
	if len(ospf.Networks) == 0 {
		r.warnf("ospf enabled but no networks configured")
	}
	for idx, net := range ospf.Networks {
		if !util.IsDottedQuad(net.Network) {
			r.errorf("ospf network %d: invalid network address %q", idx, net.Network)
		}
		if !util.IsDottedQuad(net.Wildcard) {
			r.errorf("ospf network %d: invalid wildcard mask %q", idx, net.Wildcard)
		}
		// Area 0 is the backbone; only missing areas are an error.
		if net.Area == nil {
			r.errorf("ospf network %d: area is required", idx)
		}
	}
}

func checkSecurity(r *Report, sec *model.SecuritySpec) {
	for idx, acl := range sec.AccessLists {
		label := acl.Name
		if label == "" {
			label = strconv.Itoa(idx)
		}
		if acl.Name == "" {
			r.errorf("acl %d: name is required", idx)
		}
		if acl.Type != model.AclTypeStandard && acl.Type != model.AclTypeExtended {
			r.errorf("acl %s: type must be %q or %q", label, model.AclTypeStandard, model.AclTypeExtended)
		}
		for ridx, rule := range acl.Rules {
			if rule.Action != model.ActionPermit && rule.Action != model.ActionDeny {
				r.errorf("acl %s rule %d: action must be %q or %q", label, ridx, model.ActionPermit, model.ActionDeny)
			}
			if rule.Protocol == "" {
				r.errorf("acl %s rule %d: protocol is required", label, ridx)
			} else if !commonProtocols[rule.Protocol] {
				r.warnf("acl %s rule %d: uncommon protocol %q", label, ridx, rule.Protocol)
			}
			if rule.Source == "" {
				r.errorf("acl %s rule %d: source is required", label, ridx)
			}
		}
	}
}
