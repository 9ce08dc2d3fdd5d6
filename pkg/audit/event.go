// Package audit keeps a JSON-lines trail of deployment attempts.
package audit

import (
	"fmt"
	"time"
)

// Operations recorded in the audit trail.
const (
	OpDeploy   = "deploy"
	OpDryRun   = "dry-run"
	OpGenerate = "generate"
	OpValidate = "validate"
)

// Event records one run against a device: who pushed what, where it went
// and how it ended.
type Event struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	User       string        `json:"user"`
	Device     string        `json:"device"` // hostname from the model
	Host       string        `json:"host,omitempty"`
	DeviceType string        `json:"device_type,omitempty"`
	Operation  string        `json:"operation"`
	Lines      int           `json:"lines,omitempty"` // config lines sent
	Saved      bool          `json:"saved,omitempty"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	DryRun     bool          `json:"dry_run"`
	Duration   time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events.
type Filter struct {
	Device      string
	User        string
	Operation   string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates an audit event stamped with the current time.
func NewEvent(user, device, operation string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Operation: operation,
	}
}

// WithHost sets the address the device was reached at.
func (e *Event) WithHost(host string) *Event {
	e.Host = host
	return e
}

// WithDeviceType sets the platform the deployment targeted.
func (e *Event) WithDeviceType(deviceType string) *Event {
	e.DeviceType = deviceType
	return e
}

// WithLines sets the number of configuration lines involved.
func (e *Event) WithLines(n int) *Event {
	e.Lines = n
	return e
}

// WithSaved marks that the device persisted the configuration.
func (e *Event) WithSaved(saved bool) *Event {
	e.Saved = saved
	return e
}

// WithSuccess marks the event as successful.
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed.
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets how long the run took.
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// WithDryRun marks whether this was a rehearsal. Dry runs use OpDryRun as
// their operation, but the flag survives filtering by other fields.
func (e *Event) WithDryRun(dryRun bool) *Event {
	e.DryRun = dryRun
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
