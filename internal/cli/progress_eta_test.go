package cli

import (
	"strings"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNewProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(3)

	if p.ProgressState == nil {
		t.Fatal("ProgressState should not be nil")
	}
	if p.numSolvers != 3 {
		t.Errorf("numSolvers = %d, want 3", p.numSolvers)
	}
	if p.progressRate != 0 {
		t.Errorf("initial progressRate = %f, want 0", p.progressRate)
	}
	if p.startTime.IsZero() {
		t.Error("startTime should not be zero")
	}
}

func TestUpdateWithETA_Average(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %f, want 0.125", progress)
	}
	if eta != 0 {
		t.Errorf("ETA before warm-up = %v, want 0", eta)
	}

	progress, _ = p.UpdateWithETA(1, 0.5)
	if progress != 0.375 {
		t.Errorf("progress = %f, want 0.375", progress)
	}
}

func TestUpdateWithETA_Estimate(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProgressWithClock(1, clock.now)

	// 25% after one second: first estimate uses the overall rate.
	clock.advance(time.Second)
	_, eta := p.UpdateWithETA(0, 0.25)
	if eta != 3*time.Second {
		t.Errorf("ETA = %v, want 3s", eta)
	}

	// Same pace keeps the same smoothed rate.
	clock.advance(time.Second)
	_, eta = p.UpdateWithETA(0, 0.5)
	if eta != 2*time.Second {
		t.Errorf("ETA = %v, want 2s", eta)
	}

	// Complete work has no remaining time.
	clock.advance(time.Second)
	if _, eta = p.UpdateWithETA(0, 1.0); eta != 0 {
		t.Errorf("ETA at completion = %v, want 0", eta)
	}
}

func TestGetETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)

	if eta := p.GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	p.Update(0, 0.5)
	p.progressRate = 0.1
	if eta := p.GetETA(); eta != 5*time.Second {
		t.Errorf("ETA = %v, want 5s", eta)
	}

	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want cap %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
		{"Hours only (no minutes)", 2 * time.Hour, "2h"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 90*time.Second, 10)
	want := " 50.00% [█████░░░░░] ETA: 1m30s"
	if got != want {
		t.Errorf("FormatProgressBarWithETA = %q, want %q", got, want)
	}

	got = FormatProgressBarWithETA(0, 0, 4)
	if !strings.HasSuffix(got, "ETA: calculating...") {
		t.Errorf("unexpected zero progress rendering %q", got)
	}
}
