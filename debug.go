package evergreen

import (
	"fmt"
	"os"
	"time"
)

// debugEvery is how many frames pass between stats lines.
const debugEvery = 60

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	projectTime time.Duration
	submitTime  time.Duration
	points      int
	solids      int
	drawCalls   int
}

// statsThrottle carries the last update time into Draw and counts frames
// between log lines.
type statsThrottle struct {
	update time.Duration
	frames int
}

// debugLog prints timing and draw stats to stderr once every debugEvery
// frames.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.stats.frames++
	if s.stats.frames < debugEvery {
		return
	}
	s.stats.frames = 0
	total := s.stats.update + stats.projectTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[evergreen] update: %v | project: %v | submit: %v | total: %v\n",
		s.stats.update, stats.projectTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[evergreen] state: %s | progress: %.3f | points: %d | solids: %d | draw calls: %d\n",
		s.tree.State(), s.tree.Foliage().Progress(), stats.points, stats.solids, stats.drawCalls)
}
