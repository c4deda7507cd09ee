package eventlog

import (
	"testing"
)

func TestCategoryString(t *testing.T) {
	cases := []struct {
		category Category
		want     string
	}{
		{CategorySystem, "SYSTEM"},
		{CategoryNode, "NODE"},
		{CategoryDriver, "DRIVER"},
		{CategoryDevice, "DEVICE"},
		{CategoryWorker, "WORKER"},
		{CategoryScope, "SCOPE"},
		{Category(99), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.category.String(); got != tc.want {
			t.Errorf("Category(%d).String() = %q, want %q", tc.category, got, tc.want)
		}
	}
}

func TestActionString(t *testing.T) {
	cases := []struct {
		action Action
		want   string
	}{
		{ActionRegistered, "REGISTERED"},
		{ActionReleased, "RELEASED"},
		{ActionStarted, "STARTED"},
		{ActionStopped, "STOPPED"},
		{ActionFailed, "FAILED"},
		{Action(99), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.action.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, want %q", tc.action, got, tc.want)
		}
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b countingLogger
	m := NewMultiLogger(&a, &b)

	m.Log(Event{SystemID: "sys-a"})
	m.Log(Event{SystemID: "sys-a"})

	if a.count != 2 || b.count != 2 {
		t.Errorf("counts: got %d/%d, want 2/2", a.count, b.count)
	}
}

// countingLogger counts Log calls.
type countingLogger struct {
	count int
}

func (l *countingLogger) Log(Event) { l.count++ }
