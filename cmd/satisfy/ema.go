package main

import (
	"time"

	"github.com/hartsolve/satisfy/internal/sat"
)

// ema is an exponential moving average, used to smooth the conflicts/sec
// figure printed by the solve command's progress line: the raw instantaneous
// rate is too jumpy to read once restarts start growing the conflict budget.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 {
	return e.value
}

// newProgressLine returns a sat.Options.OnProgress callback that logs a
// smoothed conflicts/sec figure each time Solve finishes a restart
// iteration.
func newProgressLine() func(sat.Stats) {
	rate := newEMA(0.7)
	last := time.Now()
	var lastConflicts int64

	return func(stats sat.Stats) {
		now := time.Now()
		elapsed := now.Sub(last).Seconds()
		if elapsed > 0 {
			rate.add(float64(stats.Conflicts-lastConflicts) / elapsed)
		}
		last, lastConflicts = now, stats.Conflicts

		log.WithFields(map[string]any{
			"conflicts":       stats.Conflicts,
			"decisions":       stats.Decisions,
			"learnts_deleted": stats.LearntsDeleted,
			"conflicts_sec":   int64(rate.val()),
		}).Info("search progress")
	}
}
