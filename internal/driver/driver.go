/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package driver is the thin glue between a FEN string and a finished
// search: parse, run FindBestMove, and translate the result (or any
// failure) into the CLI's output line and exit code (spec.md §6, §7).
// Grounded on the teacher's cmd/FrankyGo/main.go, which plays the same
// role for the UCI loop — config/log setup, then dispatch into
// internal/search — but trimmed to the single "search one FEN, print one
// line" operation this engine's CLI actually exposes.
package driver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/enginerr"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/logging"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/movegen"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/moveslice"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/search"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

var log = logging.GetLog("driver")

// Driver owns one Search instance, so repeated calls across a game reuse
// the transposition table and move-ordering history (spec.md §5). running
// guards against a second FindBestMove call overlapping the first: the
// core is single-threaded cooperative (spec.md §5) and Search's tables have
// exactly one owner, so a caller that fires two searches at once on the
// same Driver must block rather than corrupt shared state.
type Driver struct {
	search  *search.Search
	running *semaphore.Weighted
}

// NewDriver creates a Driver with a fresh Search session.
func NewDriver() *Driver {
	return &Driver{search: search.NewSearch(), running: semaphore.NewWeighted(1)}
}

// NewGame resets the underlying Search's tables for a new game.
func (d *Driver) NewGame() {
	d.search.NewGame()
}

// Outcome is what Search hands the CLI layer: the move to play, its score,
// how deep iterative deepening got, the nodes visited, and how long the
// call actually took.
type Outcome struct {
	Move    Move
	Score   Value
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// FindBestMove parses fen, searches it for up to timeBudgetMs milliseconds
// (maxDepth <= 0 means no depth cap), and returns the move to play.
//
// Per spec.md §7: an invalid FEN is returned as *enginerr.InvalidFenError
// (the caller maps this to exit 1); a position with zero legal moves that
// is not already terminal is an *enginerr.NoLegalMovesError (a defect, not
// expected to reach here); a search that never completed depth 1 before
// cancellation falls back to the first legal move from MoveGen rather than
// returning MoveNone (the "TimeoutWithoutMove" behavior).
func (d *Driver) FindBestMove(fen string, timeBudgetMs int64, maxDepth int) (Outcome, error) {
	_ = d.running.Acquire(context.Background(), 1)
	defer d.running.Release(1)

	pos, err := position.ParseFen(fen)
	if err != nil {
		return Outcome{}, err
	}

	if winner, over := pos.Winner(); over {
		log.Infof("position %q already terminal, winner=%v", fen, winner)
		return Outcome{Move: MoveNone, Score: -WIN}, nil
	}

	var legal moveslice.MoveSlice
	movegen.Generate(pos, &legal)
	if legal.Len() == 0 {
		return Outcome{}, &enginerr.NoLegalMovesError{}
	}

	start := time.Now()
	result := d.search.FindBestMove(pos, maxDepth, timeBudgetMs)
	elapsed := time.Since(start)

	move := result.Move
	if move == MoveNone {
		// TimeoutWithoutMove: iterative deepening was cancelled before
		// depth 1 completed. Fall back to MoveGen's first move rather
		// than surface an empty result.
		log.Warning("search returned no move before depth 1 completed, falling back to first legal move")
		move = legal.At(0)
	}

	return Outcome{
		Move:    move,
		Score:   result.Score,
		Depth:   result.Depth,
		Nodes:   result.Nodes,
		Elapsed: elapsed,
	}, nil
}

// FormatLine renders o in the wire format spec.md §6 names:
// "bestmove <move> score <cp> depth <d> nodes <n> time <ms>".
func FormatLine(o Outcome) string {
	return fmt.Sprintf("bestmove %s score %d depth %d nodes %d time %d",
		o.Move, int32(o.Score), o.Depth, o.Nodes, o.Elapsed.Milliseconds())
}
