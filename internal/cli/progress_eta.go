package cli

import (
	"fmt"
	"time"
)

// maxETA caps displayed estimates.
const maxETA = 24 * time.Hour

// ProgressWithETA extends ProgressState with a smoothed progress rate from
// which the remaining time is estimated.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	// progressRate is the smoothed progress per second.
	progressRate float64
	now          func() time.Time
}

// NewProgressWithETA creates a progress tracker for numSolvers solvers.
func NewProgressWithETA(numSolvers int) *ProgressWithETA {
	return newProgressWithClock(numSolvers, time.Now)
}

func newProgressWithClock(numSolvers int, now func() time.Time) *ProgressWithETA {
	start := now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numSolvers),
		startTime:     start,
		lastUpdate:    start,
		now:           now,
	}
}

// UpdateWithETA records a progress value and returns the average progress
// together with the estimated time remaining. The rate is exponentially
// smoothed (70% previous, 30% new) so irregular updates do not make the
// estimate jump. The ETA is 0 until enough time and progress have elapsed.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	p.Update(index, value)
	progress = p.CalculateAverage()

	now := p.now()
	elapsed := now.Sub(p.startTime)
	if elapsed < 100*time.Millisecond || progress <= 0.001 {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if sinceUpdate := now.Sub(p.lastUpdate).Seconds(); sinceUpdate > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			if p.progressRate > 0 {
				p.progressRate = 0.7*p.progressRate + 0.3*(delta/sinceUpdate)
			} else {
				p.progressRate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}

	return progress, p.etaFor(progress)
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.etaFor(p.CalculateAverage())
}

func (p *ProgressWithETA) etaFor(progress float64) time.Duration {
	if p.progressRate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.progressRate * float64(time.Second))
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders an estimate as "< 1s", "42s", "2m30s" or "1h15m".
// A zero estimate reads "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		return joinUnits(int(eta.Minutes()), "m", int(eta.Seconds())%60, "s")
	default:
		return joinUnits(int(eta.Hours()), "h", int(eta.Minutes())%60, "m")
	}
}

// joinUnits formats "<major><unit>" and appends the minor part when non-zero.
func joinUnits(major int, majorUnit string, minor int, minorUnit string) string {
	if minor > 0 {
		return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
	}
	return fmt.Sprintf("%d%s", major, majorUnit)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
