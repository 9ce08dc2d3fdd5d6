// Package deploy pushes generated configuration to network devices over
// SSH. Credentials are resolved explicitly before connecting, the transport
// classifies its failures into shared error kinds, and a dry-run mode
// reports what would be sent without touching the network.
package deploy

import (
	"strings"
	"time"

	"github.com/confgen-net/confgen/pkg/model"
	"github.com/confgen-net/confgen/pkg/util"
)

// Result describes one deployment attempt.
type Result struct {
	Host     string
	DryRun   bool
	Lines    []string // config lines that were, or would have been, sent
	Output   string   // captured device output, empty for dry runs
	Saved    bool
	Duration time.Duration
}

// DialFunc opens a device session. The deployer uses Connect unless a test
// substitutes a scripted transport.
type DialFunc func(ConnectParams) (*Session, error)

// Deployer pushes configuration text to the single device a model names.
type Deployer struct {
	Model   *model.DeviceModel
	Creds   Credentials
	DryRun  bool
	Port    int
	Timeout time.Duration
	Dial    DialFunc
}

// Deploy sends cliText to the device. In dry-run mode it performs no
// network I/O at all; the result carries the lines that would have been
// sent. A live run connects, elevates when an enable password is set,
// checks the device answers "show version", pushes the configuration line
// by line and persists it. The session is released on every path.
func (d *Deployer) Deploy(cliText string) (*Result, error) {
	start := time.Now()
	res := &Result{
		Host:   d.Model.Device.IPAddress,
		DryRun: d.DryRun,
		Lines:  strings.Split(cliText, "\n"),
	}

	if d.DryRun {
		res.Duration = time.Since(start)
		return res, nil
	}

	dial := d.Dial
	if dial == nil {
		dial = Connect
	}
	sess, err := dial(ConnectParams{
		Host:         d.Model.Device.IPAddress,
		Port:         d.Port,
		DeviceType:   d.Model.Device.EffectiveDeviceType(),
		Username:     d.Creds.Username,
		Password:     d.Creds.Password,
		EnableSecret: d.Creds.EnablePassword,
		Timeout:      d.Timeout,
	})
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	log := util.WithDevice(d.Model.Device.Hostname)
	log.Infof("connected to %s", res.Host)

	if d.Creds.EnablePassword != "" {
		if err := sess.Enable(d.Creds.EnablePassword); err != nil {
			return nil, err
		}
	}

	// Liveness check before touching configuration.
	if _, err := sess.Run("show version"); err != nil {
		return nil, err
	}

	output, err := sess.SendConfig(res.Lines)
	if err != nil {
		return nil, err
	}
	res.Output = output

	saveOut, err := sess.SaveConfig()
	if err != nil {
		return nil, err
	}
	res.Output += saveOut
	res.Saved = true
	res.Duration = time.Since(start)

	log.Infof("deployed %d lines in %s", len(res.Lines), res.Duration.Round(time.Millisecond))
	return res, nil
}
