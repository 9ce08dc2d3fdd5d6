// Package iosgen renders device models as Cisco IOS-style CLI text.
//
// Generation is deliberately tolerant: interfaces, OSPF networks and ACL
// rules missing required fields are skipped rather than reported, so the
// generator can run against drafts that have not been validated yet.
// pkg/validate is the strict half of that split.
package iosgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/confgen-net/confgen/pkg/model"
	"github.com/confgen-net/confgen/pkg/util"
)

// Generate renders the model as a complete IOS configuration. The output is
// a pure function of the model: same model in, byte-identical text out.
//
// Sections appear in a fixed order: header comments, hostname, interfaces,
// OSPF, access lists, end. Each section carries its own trailing newline and
// an empty section still occupies its slot in the join, so the overall
// skeleton is stable regardless of which sections have content.
func Generate(m *model.DeviceModel) string {
	device := m.Device.Hostname
	if device == "" {
		device = "Unknown-Device"
	}

	sections := []string{
		"! Generated Configuration",
		"! Device: " + device,
		"!",
		hostnameSection(m),
		interfacesSection(m),
		ospfSection(m),
		aclSection(m),
		"end",
	}
	return strings.Join(sections, "\n")
}

func hostnameSection(m *model.DeviceModel) string {
	name := m.Device.Hostname
	if name == "" {
		name = "default-hostname"
	}
	return "hostname " + name + "\n"
}

// interfacesSection emits one block per named interface. Nameless entries
// are skipped whole; the address line appears only when both ip_address and
// subnet_mask are present. Any status other than "up" shuts the port down.
func interfacesSection(m *model.DeviceModel) string {
	var commands []string
	for _, iface := range m.Interfaces {
		if iface.Name == "" {
			continue
		}
		commands = append(commands, "interface "+iface.Name)

		description := iface.Description
		if description == "" {
			description = "Interface " + iface.Name
		}
		commands = append(commands, " description "+description)

		if iface.Status == model.StatusUp {
			commands = append(commands, " no shutdown")
		} else {
			commands = append(commands, " shutdown")
		}

		if iface.HasAddress() {
			commands = append(commands, fmt.Sprintf(" ip address %s %s", *iface.IPAddress, *iface.SubnetMask))
		}
		commands = append(commands, "!")
	}
	return strings.Join(commands, "\n") + "\n"
}

// ospfSection emits the OSPF stanza only when routing.ospf is enabled and
// carries a process id. Network statements need network, wildcard and area;
// area 0 is the backbone, so presence is what counts, not the value.
func ospfSection(m *model.DeviceModel) string {
	ospf := m.Routing.OSPF
	if ospf == nil || !ospf.Enabled || ospf.ProcessID.Empty() {
		return ""
	}

	commands := []string{"router ospf " + ospf.ProcessID.String()}
	for _, net := range ospf.Networks {
		if net.Network == "" || net.Wildcard == "" || net.Area == nil {
			continue
		}
		commands = append(commands, fmt.Sprintf(" network %s %s area %s", net.Network, net.Wildcard, net.Area))
	}
	commands = append(commands, "!")
	return strings.Join(commands, "\n") + "\n"
}

// aclSection emits one access-list line per complete rule of each named,
// typed ACL. Only extended ACLs produce output: the standard-ACL rule shape
// is accepted by the validator but has no generation rule yet.
func aclSection(m *model.DeviceModel) string {
	var commands []string
	for _, acl := range m.Security.AccessLists {
		if acl.Name == "" || acl.Type == "" {
			continue
		}
		for _, rule := range acl.Rules {
			if rule.Action == "" || rule.Protocol == "" || rule.Source == "" {
				continue
			}

			wildcard := rule.SourceWildcard
			if wildcard == "" {
				wildcard = "0.0.0.0"
			}
			destination := rule.Destination
			if destination == "" {
				destination = "any"
			}

			if acl.Type == model.AclTypeExtended {
				parts := []string{"access-list " + acl.Name, rule.Action, rule.Protocol, rule.Source, wildcard, destination}
				if !rule.DestinationPort.Empty() {
					parts = append(parts, "eq "+rule.DestinationPort.String())
				}
				commands = append(commands, strings.Join(parts, " "))
			}
		}
	}
	if len(commands) == 0 {
		return ""
	}
	return strings.Join(commands, "\n") + "\n"
}

// WriteFile renders the model and writes the result to path.
func WriteFile(m *model.DeviceModel, path string) error {
	text := Generate(m)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	util.Debugf("wrote %d bytes of config to %s", len(text), path)
	return nil
}

// DefaultOutputPath derives the generated-config path from the model path:
// a .yaml or .yml suffix becomes .cfg, anything else gets .cfg appended.
func DefaultOutputPath(modelPath string) string {
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(modelPath, ext) {
			return strings.TrimSuffix(modelPath, ext) + ".cfg"
		}
	}
	return modelPath + ".cfg"
}
