package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newLogger creates a FileLogger backed by a per-test temp directory.
func newLogger(t *testing.T, rotation RotationConfig) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewFileLogger(path, rotation)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger, path
}

// ===================== Event Tests =====================

func TestNewEvent(t *testing.T) {
	event := NewEvent("alice", "core-sw1", OpDeploy)

	if event.User != "alice" {
		t.Errorf("User = %q, want %q", event.User, "alice")
	}
	if event.Device != "core-sw1" {
		t.Errorf("Device = %q, want %q", event.Device, "core-sw1")
	}
	if event.Operation != OpDeploy {
		t.Errorf("Operation = %q, want %q", event.Operation, OpDeploy)
	}
	if event.ID == "" {
		t.Error("ID should not be empty")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestEvent_Builders(t *testing.T) {
	event := NewEvent("alice", "core-sw1", OpDeploy).
		WithHost("192.168.1.1").
		WithDeviceType("cisco_ios").
		WithLines(42).
		WithSaved(true).
		WithSuccess().
		WithDuration(3 * time.Second)

	if event.Host != "192.168.1.1" {
		t.Errorf("Host = %q", event.Host)
	}
	if event.DeviceType != "cisco_ios" {
		t.Errorf("DeviceType = %q", event.DeviceType)
	}
	if event.Lines != 42 {
		t.Errorf("Lines = %d, want 42", event.Lines)
	}
	if !event.Saved {
		t.Error("Saved should be true")
	}
	if !event.Success {
		t.Error("Success should be true")
	}
	if event.Duration != 3*time.Second {
		t.Errorf("Duration = %v", event.Duration)
	}
	if event.DryRun {
		t.Error("DryRun should default to false")
	}
}

func TestEvent_WithDryRun(t *testing.T) {
	event := NewEvent("alice", "core-sw1", OpDryRun).WithDryRun(true)
	if !event.DryRun {
		t.Error("DryRun should be true")
	}
}

func TestEvent_WithError(t *testing.T) {
	event := NewEvent("alice", "core-sw1", OpDeploy).
		WithError(errors.New("connection refused"))

	if event.Success {
		t.Error("Success should be false after WithError")
	}
	if event.Error != "connection refused" {
		t.Errorf("Error = %q", event.Error)
	}

	// nil error records a failure with no message
	quiet := NewEvent("alice", "core-sw1", OpDeploy).WithError(nil)
	if quiet.Success {
		t.Error("Success should be false even with nil error")
	}
	if quiet.Error != "" {
		t.Errorf("Error should stay empty with nil error, got %q", quiet.Error)
	}
}

func TestOperationConstants(t *testing.T) {
	ops := []string{OpDeploy, OpDryRun, OpGenerate, OpValidate}
	seen := make(map[string]bool)
	for _, op := range ops {
		if op == "" {
			t.Error("operation constant should not be empty")
		}
		if seen[op] {
			t.Errorf("duplicate operation constant %q", op)
		}
		seen[op] = true
	}
}

// ===================== FileLogger Tests =====================

func TestFileLogger_RoundTrip(t *testing.T) {
	logger, _ := newLogger(t, RotationConfig{})

	event := NewEvent("alice", "core-sw1", OpDeploy).
		WithHost("192.168.1.1").
		WithLines(17).
		WithSaved(true).
		WithSuccess()
	if err := logger.Log(event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	got := events[0]
	if got.User != "alice" {
		t.Errorf("User = %q, want %q", got.User, "alice")
	}
	if got.Device != "core-sw1" {
		t.Errorf("Device = %q, want %q", got.Device, "core-sw1")
	}
	if got.Host != "192.168.1.1" {
		t.Errorf("Host = %q, want %q", got.Host, "192.168.1.1")
	}
	if got.Lines != 17 {
		t.Errorf("Lines = %d, want 17", got.Lines)
	}
	if !got.Saved {
		t.Error("Saved should survive the round trip")
	}
}

func TestFileLogger_QueryFilters(t *testing.T) {
	logger, _ := newLogger(t, RotationConfig{})

	events := []*Event{
		NewEvent("alice", "core-sw1", OpDeploy).WithSuccess(),
		NewEvent("bob", "core-sw1", OpValidate).WithSuccess(),
		NewEvent("alice", "edge-r1", OpDeploy).WithError(errors.New("timed out")),
		NewEvent("carol", "access-sw2", OpDryRun).WithDryRun(true).WithSuccess(),
	}
	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by user", Filter{User: "alice"}, 2},
		{"by device", Filter{Device: "core-sw1"}, 2},
		{"by operation", Filter{Operation: OpDeploy}, 2},
		{"success only", Filter{SuccessOnly: true}, 3},
		{"failures only", Filter{FailureOnly: true}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 3}, 1},
		{"offset past end", Filter{Offset: 10}, 0},
		{"offset and limit", Filter{Offset: 1, Limit: 2}, 2},
		{"no match", Filter{User: "mallory"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := logger.Query(tt.filter)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d events, want %d", len(results), tt.want)
			}
		})
	}
}

func TestFileLogger_TimeWindow(t *testing.T) {
	logger, _ := newLogger(t, RotationConfig{})
	logger.Log(NewEvent("alice", "core-sw1", OpDeploy).WithSuccess())

	results, err := logger.Query(Filter{
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 event inside the window, got %d", len(results))
	}

	results, _ = logger.Query(Filter{StartTime: time.Now().Add(time.Hour)})
	if len(results) != 0 {
		t.Errorf("expected 0 events after future start, got %d", len(results))
	}

	results, _ = logger.Query(Filter{EndTime: time.Now().Add(-time.Hour)})
	if len(results) != 0 {
		t.Errorf("expected 0 events before past end, got %d", len(results))
	}
}

func TestFileLogger_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "audit.log")
	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger should create parent directories: %v", err)
	}
	logger.Close()
}

func TestFileLogger_QueryMissingFile(t *testing.T) {
	logger, path := newLogger(t, RotationConfig{})
	logger.Close()
	os.Remove(path)

	results, err := logger.Query(Filter{})
	if err != nil {
		t.Errorf("Query on a missing file should not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 events, got %d", len(results))
	}
}

func TestFileLogger_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	content := `{"user":"alice","device":"core-sw1","operation":"deploy","success":true}
this line is not json
{"user":"bob","device":"edge-r1","operation":"validate","success":true}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("seeding log file: %v", err)
	}

	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	results, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 valid events around the bad line, got %d", len(results))
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	logger, path := newLogger(t, RotationConfig{MaxSize: 100, MaxBackups: 3})

	for i := 0; i < 5; i++ {
		event := NewEvent("alice", "core-sw1", OpDeploy).WithLines(20).WithSuccess()
		if err := logger.Log(event); err != nil {
			t.Fatalf("Log failed on iteration %d: %v", i, err)
		}
	}

	backups, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(backups) == 0 {
		t.Error("expected rotation to leave backup files behind")
	}
}

func TestFileLogger_RotationPrunesBackups(t *testing.T) {
	logger, path := newLogger(t, RotationConfig{MaxSize: 50, MaxBackups: 2})

	for i := 0; i < 10; i++ {
		if err := logger.Log(NewEvent("alice", "core-sw1", OpDeploy)); err != nil {
			t.Fatalf("Log failed on iteration %d: %v", i, err)
		}
	}

	backups, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(backups) > 2 {
		t.Errorf("expected at most 2 backups, got %d", len(backups))
	}
}

func TestFileLogger_OpenErrors(t *testing.T) {
	t.Run("unwritable parent", func(t *testing.T) {
		if _, err := NewFileLogger("/dev/null/impossible/audit.log", RotationConfig{}); err == nil {
			t.Error("NewFileLogger should fail when the parent cannot be created")
		}
	})

	t.Run("path is a directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		if err := os.Mkdir(path, 0755); err != nil {
			t.Fatalf("creating decoy directory: %v", err)
		}
		if _, err := NewFileLogger(path, RotationConfig{}); err == nil {
			t.Error("NewFileLogger should fail when the log path is a directory")
		}
	})
}

func TestFileLogger_QueryReadError(t *testing.T) {
	logger, _ := newLogger(t, RotationConfig{})

	decoy := filepath.Join(t.TempDir(), "audit.log")
	if err := os.Mkdir(decoy, 0755); err != nil {
		t.Fatalf("creating decoy directory: %v", err)
	}
	logger.path = decoy

	if _, err := logger.Query(Filter{}); err == nil {
		t.Error("Query should fail when the log path is unreadable")
	}
}

func TestFileLogger_CloseWithoutFile(t *testing.T) {
	logger := &FileLogger{path: "/tmp/never-opened.log"}
	if err := logger.Close(); err != nil {
		t.Errorf("Close without an open file should not error: %v", err)
	}
}

// ===================== Default Logger Tests =====================

func TestDefaultLogger(t *testing.T) {
	SetDefaultLogger(nil)

	if err := Log(NewEvent("alice", "core-sw1", OpDeploy)); err != nil {
		t.Errorf("Log without a default logger should be a no-op: %v", err)
	}
	results, err := Query(Filter{})
	if err != nil {
		t.Errorf("Query without a default logger should not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}

	logger, _ := newLogger(t, RotationConfig{})
	SetDefaultLogger(logger)
	defer SetDefaultLogger(nil)

	if err := Log(NewEvent("alice", "core-sw1", OpDeploy).WithSuccess()); err != nil {
		t.Errorf("Log via default logger failed: %v", err)
	}
	results, err = Query(Filter{})
	if err != nil {
		t.Errorf("Query via default logger failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}
