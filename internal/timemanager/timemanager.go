/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package timemanager allocates each move's time budget and carries the
// cooperative cancellation flag Search polls (spec.md §4.7, §5). Grounded on
// the teacher's internal/search/search.go setupTimeControl/startTimer pair,
// but extracted into its own explicitly injected struct rather than living
// as Search's private fields — spec.md §9 Design Notes calls out the
// teacher's "remaining time in a process-wide location" as mutable global
// state to replace with explicit injection.
package timemanager

import (
	"time"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/evaluator"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/util"
)

// Manager tracks the game clock across the whole game and hands out one
// target per move. Not safe for concurrent use by more than the one search
// worker and its own timer goroutine (spec.md §5).
type Manager struct {
	remaining     time.Duration
	expectedMoves int
	deadline      time.Time
	target        time.Duration
	floor         time.Duration
	ceil          time.Duration
	emergency     bool
	cancelled     util.Bool
	timerStopped  chan struct{}
}

// NewManager constructs a Manager for a game with totalMs total time and an
// initial estimate of how many moves remain.
func NewManager(totalMs int64, expectedMovesRemaining int) *Manager {
	if expectedMovesRemaining < 1 {
		expectedMovesRemaining = 1
	}
	return &Manager{
		remaining:     time.Duration(totalMs) * time.Millisecond,
		expectedMoves: expectedMovesRemaining,
	}
}

// clamp bounds applied to the raw per-move estimate, per spec.md §4.7.
const (
	minFloorMs    = 50
	emergencyMs   = 1000
	emergencyCapM = 200
)

// Allocate computes this move's target budget in milliseconds. complexity is
// a caller-supplied factor in [0.5, 1.5] derived from game phase and
// tactical is whether any capture is currently available; both feed the
// complexity multiplier spec.md §4.7 describes.
func (m *Manager) Allocate(complexity float64, tactical bool) (targetMs int64, emergency bool) {
	if m.remaining < emergencyMs*time.Millisecond {
		t := m.remaining / 4
		cap := emergencyCapM * time.Millisecond
		if t > cap {
			t = cap
		}
		m.emergency = true
		return t.Milliseconds(), true
	}

	base := m.remaining / time.Duration(m.expectedMoves)

	if complexity < 0.5 {
		complexity = 0.5
	}
	if complexity > 1.5 {
		complexity = 1.5
	}
	if tactical && complexity < 1.2 {
		complexity = 1.2
	}
	target := time.Duration(float64(base) * complexity)

	floor := m.remaining / 40
	if floor < minFloorMs*time.Millisecond {
		floor = minFloorMs * time.Millisecond
	}
	ceil := m.remaining / 4
	if target < floor {
		target = floor
	}
	if target > ceil {
		target = ceil
	}

	m.emergency = false
	m.target = target
	m.floor = floor
	m.ceil = ceil
	return target.Milliseconds(), false
}

// IsEmergency reports whether the most recent Allocate call flagged
// emergency mode — downgrades the evaluator's detail level and suppresses
// aspiration windows, per spec.md §4.7.
func (m *Manager) IsEmergency() bool {
	return m.emergency
}

// DetailLevel picks the evaluator tier appropriate to the current time
// pressure, the "TimeManager chooses the evaluator at move start" wiring
// spec.md §9 calls for. All four tiers are reachable: Emergency under the
// emergency-mode clamp, Fast when the allocated target was clamped down to
// the per-move floor (tight on time relative to moves remaining),
// Comprehensive when it was clamped up to the per-move ceiling (plenty of
// time to spend), Standard otherwise.
func (m *Manager) DetailLevel() evaluator.DetailLevel {
	switch {
	case m.emergency:
		return evaluator.Emergency
	case m.ceil > 0 && m.target >= m.ceil:
		return evaluator.Comprehensive
	case m.ceil > 0 && m.target <= m.floor:
		return evaluator.Fast
	default:
		return evaluator.Standard
	}
}

// StartMove captures a deadline = now + target and starts the background
// timer goroutine that flips CancellationFlag once the deadline passes.
func (m *Manager) StartMove(targetMs int64) {
	m.cancelled.Store(false)
	m.deadline = time.Now().Add(time.Duration(targetMs) * time.Millisecond)
	m.timerStopped = make(chan struct{})
	go m.runTimer(m.timerStopped)
}

func (m *Manager) runTimer(stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		if time.Now().After(m.deadline) {
			m.cancelled.Store(true)
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
}

// Cancelled is the cooperative cancellation flag Search polls at node entry
// and every 4096 leaf evaluations (spec.md §5).
func (m *Manager) Cancelled() bool {
	return m.cancelled.Load()
}

// StopTimer halts the timer goroutine early, e.g. when the search finishes
// ahead of its budget.
func (m *Manager) StopTimer() {
	if m.timerStopped != nil {
		close(m.timerStopped)
		m.timerStopped = nil
	}
}

// CommitMove decrements remaining by the move's actual elapsed time and
// decrements expectedMoves (floored at 1), per spec.md §4.7.
func (m *Manager) CommitMove(actualElapsed time.Duration) {
	m.remaining -= actualElapsed
	if m.remaining < 0 {
		m.remaining = 0
	}
	if m.expectedMoves > 1 {
		m.expectedMoves--
	}
}

// Remaining reports the clock remaining for the whole game.
func (m *Manager) Remaining() time.Duration {
	return m.remaining
}
