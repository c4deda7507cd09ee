package shortfin_test

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/raikonenfnu/shark-ai/pkg/config"
	"github.com/raikonenfnu/shark-ai/pkg/eventlog"
	"github.com/raikonenfnu/shark-ai/pkg/host"
	"github.com/raikonenfnu/shark-ai/pkg/local"
)

// TestE2E_BringUpDispatchTeardown exercises the full stack: the host
// builder assembles a system, scopes bind to its devices, workers run
// dispatched tasks, and teardown runs when the last reference drops.
func TestE2E_BringUpDispatchTeardown(t *testing.T) {
	cfg := config.Default()
	cfg.Nodes = 2
	cfg.DevicesPerNode = 2
	cfg.Workers = 2

	builder, err := host.NewBuilder(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	sys, err := builder.CreateSystem(context.Background())
	if err != nil {
		t.Fatalf("CreateSystem failed: %v", err)
	}

	if sys.State() != local.StateInitialized {
		t.Fatalf("State: got %v, want INITIALIZED", sys.State())
	}

	// Bind a scope and dispatch one task per snapshot device.
	scope, err := sys.CreateScope()
	if err != nil {
		t.Fatalf("CreateScope failed: %v", err)
	}
	devices := scope.Devices()
	if len(devices) != 4 {
		t.Fatalf("scope devices: got %d, want 4", len(devices))
	}

	workers := sys.Workers()
	var wg sync.WaitGroup
	touched := make([]bool, len(devices))
	for i := range devices {
		i := i
		wg.Add(1)
		err := workers[i%len(workers)].Submit(func() {
			touched[i] = true
			wg.Done()
		})
		if err != nil {
			t.Fatalf("Submit for device %d failed: %v", i, err)
		}
	}
	wg.Wait()
	for i, ok := range touched {
		if !ok {
			t.Errorf("task for device %d did not run", i)
		}
	}

	// The creator's release must not tear down while the scope lives.
	if err := sys.Release(); err != nil {
		t.Fatalf("creator Release failed: %v", err)
	}
	if sys.State() != local.StateInitialized {
		t.Fatalf("system torn down while scope alive; state %v", sys.State())
	}

	if err := scope.Close(); err != nil {
		t.Fatalf("scope Close failed: %v", err)
	}
	if sys.State() != local.StateReleased {
		t.Errorf("state after last release: got %v, want RELEASED", sys.State())
	}
}

// TestE2E_LifecycleEventCapture verifies the CBOR event log written
// during bring-up and teardown replays the acquisition order.
func TestE2E_LifecycleEventCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.slog")
	fileLogger, err := eventlog.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	cfg := config.Default()
	cfg.Nodes = 1
	cfg.DevicesPerNode = 2

	builder, err := host.NewBuilder(cfg, nil, fileLogger)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	sys, err := builder.CreateSystem(context.Background())
	if err != nil {
		t.Fatalf("CreateSystem failed: %v", err)
	}
	systemID := sys.ID()
	if err := sys.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	fileLogger.Close()

	// Replay device registrations: cpu0, cpu1 in system order.
	category := eventlog.CategoryDevice
	action := eventlog.ActionRegistered
	reader, err := eventlog.NewFilteredReader(path, eventlog.Filter{
		SystemID: systemID,
		Category: &category,
		Action:   &action,
	})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var registered []string
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		registered = append(registered, event.Subject)
	}

	want := []string{"cpu0", "cpu1"}
	if len(registered) != len(want) {
		t.Fatalf("registered devices: got %v, want %v", registered, want)
	}
	for i := range want {
		if registered[i] != want[i] {
			t.Fatalf("registered devices: got %v, want %v", registered, want)
		}
	}

	// Releases must be present and in reverse order.
	action = eventlog.ActionReleased
	reader2, err := eventlog.NewFilteredReader(path, eventlog.Filter{
		SystemID: systemID,
		Category: &category,
		Action:   &action,
	})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader2.Close()

	var released []string
	for {
		event, err := reader2.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		released = append(released, event.Subject)
	}
	if len(released) != 2 || released[0] != "cpu1" || released[1] != "cpu0" {
		t.Errorf("released devices: got %v, want [cpu1 cpu0]", released)
	}
}
