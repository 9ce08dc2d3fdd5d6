package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/confgen-net/confgen/pkg/util"
)

// Load reads a device model from a YAML file. A missing file is
// reported as util.ErrConfigNotFound and unparseable content as
// util.ErrConfigParse; both abort before any generation or validation
// can run. Nothing semantic is checked here and unknown keys are
// ignored, so a loadable-but-wrong model still loads.
func Load(path string) (*DeviceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.NewNotFoundError(path)
		}
		return nil, fmt.Errorf("reading model file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, util.NewParseError(path, err)
	}

	util.Debugf("loaded device model from %s", path)
	return m, nil
}

// Parse unmarshals a device model from YAML content and runs the
// normalization pass. Exposed separately so callers holding content
// (tests, stdin pipelines) skip the file read.
func Parse(data []byte) (*DeviceModel, error) {
	var m DeviceModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.Normalize()
	return &m, nil
}
