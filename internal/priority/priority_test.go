package priority

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

func TestProcessNiceZeroReportsCurrent(t *testing.T) {
	got, err := Process{}.Nice(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < MinNice || got > MaxNice {
		t.Fatalf("niceness %d out of range", got)
	}
}

func TestProcessNiceRaisesNiceness(t *testing.T) {
	before, err := Process{}.Nice(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before == MaxNice {
		t.Skip("already at the lowest priority")
	}
	// Raising niceness is always permitted; lowering it back needs privileges.
	t.Cleanup(func() {
		_ = setNice(before)
	})

	got, err := Process{}.Nice(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != before+1 {
		t.Fatalf("expected niceness %d, got %d", before+1, got)
	}
}

func TestProcessNiceNegativeWithoutPrivilege(t *testing.T) {
	if unix.Geteuid() == 0 {
		t.Skip("root may lower niceness")
	}
	before, err := Process{}.Nice(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before == MinNice {
		t.Skip("already at the highest priority")
	}

	_, err = Process{}.Nice(-5)
	if err == nil {
		t.Skip("RLIMIT_NICE permits lowering niceness")
	}
	if !errors.Is(err, ErrAdjust) {
		t.Fatalf("expected ErrAdjust, got %v", err)
	}
}

func TestClamp(t *testing.T) {
	testCases := map[int]int{-30: MinNice, -20: -20, 0: 0, 19: 19, 25: MaxNice}
	for in, want := range testCases {
		if got := clamp(in); got != want {
			t.Fatalf("clamp(%d): expected %d, got %d", in, want, got)
		}
	}
}
