/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package search implements iterative-deepening PVS over Guards & Towers
// positions: negamax with a transposition table, reverse-futility and
// null-move pruning, late-move reductions, futility pruning, search
// extensions, quiescence, and an aspiration-window root loop (spec.md §4.6).
//
// Grounded on the teacher's internal/search/search.go (the iterative
// deepening lifecycle, one Search instance owning TT/history/evaluator for
// the life of a game) and internal/search/alphabeta.go (the node function's
// shape: TT probe, RFP, null-move, the PVS move loop with LMR/futility,
// savePV-style best-move bookkeeping, valueToTT/valueFromTT mate-distance
// normalization). Unlike the teacher, TimeManager and its cancellation flag
// are an explicitly injected collaborator rather than Search's own
// stopFlag/timer fields (spec.md §9 Design Notes: replace "remaining time in
// a process-wide location" with explicit injection).
package search

import (
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/config"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/evaluator"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/logging"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/movegen"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/moveslice"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/ordering"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/timemanager"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/transpositiontable"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/util"
)

// out formats thousands-separated node counts and NPS for the search log,
// matching the teacher's German-locale sendIterationEndInfoToUci output.
var out = message.NewPrinter(language.German)

var searchLog = logging.GetSearchLog()

// MaxPly bounds every per-ply buffer the search touches (root ply 0 through
// the deepest quiescence ply); matches internal/position's own history
// bound so a pathological line of extensions plus quiescence never
// overruns either array.
const MaxPly = position.MaxPly

// aspWindow0 is the initial half-width of the aspiration window around the
// previous iteration's score; aspWindowGrow is the multiplier applied after
// each failed (fail-low or fail-high) attempt, and aspMaxFails is how many
// failures in a row before the window is abandoned for (-inf, +inf)
// (spec.md §4.6 "Iterative deepening loop" step 1).
const (
	aspWindow0    = Value(25)
	aspWindowGrow = 4
	aspMaxFails   = 3
)

// pruneMargin is the fail-high/futility margin table indexed by remaining
// depth 0..3, shared by reverse futility pruning and the move-loop futility
// check (spec.md §4.6 steps 5 and 7 both cite "Margins: {0,120,240,360}").
var pruneMargin = [4]Value{0, 120, 240, 360}

// lmpMoveCount bounds late-move pruning: at shallow remaining depth, a
// quiet move searched at or past this index in the ordered move list is
// skipped outright rather than merely reduced, on the assumption that
// ordering has already surfaced anything worth searching. Not named in
// spec.md's step list, but config.Settings.Search.UseLmp is one of the
// teacher's toggles carried into SPEC_FULL.md's ambient search-config
// surface, so it gets a real (if modest) implementation rather than sitting
// unwired.
var lmpMoveCount = [4]int{99, 8, 12, 16}

// Statistics are counters that describe how one FindBestMove call spent its
// effort; not essential to correctness, useful for the driver's reporting
// and for tuning. Grounded on the teacher's search/statistics.go, trimmed to
// the prunings and cuts this engine actually implements.
type Statistics struct {
	Nodes       uint64
	QNodes      uint64
	TTHits      uint64
	TTMisses    uint64
	BetaCuts    uint64
	NullCuts    uint64
	RfpPrunings uint64
	FpPrunings  uint64
	LmrReduced  uint64
	CheckExt    uint64
	AspResearch uint64
}

// Result is what FindBestMove hands back to its caller (spec.md §4.6).
type Result struct {
	Move  Move
	Score Value
	Depth int
	Nodes uint64
}

// rootMove pairs a root move with the score its subtree produced in the
// most recently completed iteration, so the next iteration can search the
// strongest-looking move first (spec.md §4.6: "TT may cause a later depth
// to find a different move... this is accepted").
type rootMove struct {
	move  Move
	score Value
}

// Search is the single-owner search session: TT and killer/history tables
// survive across FindBestMove calls within one game (node counters and
// Statistics are reset at the start of each call), matching
// spec.md §5 ("TT... is a single-owner structure and survives across moves
// within a game"). Not safe for concurrent use — only one worker goroutine
// and its TimeManager's timer touch it (spec.md §5).
type Search struct {
	tt      *transpositiontable.Table
	killers *ordering.Killers
	history *ordering.History

	tm     *timemanager.Manager
	detail evaluator.DetailLevel

	stats     Statistics
	nodes     uint64
	leafEvals uint64
	moveBuf   [MaxPly]moveslice.MoveSlice
	qBuf      [MaxPly]moveslice.MoveSlice
}

// NewSearch creates a Search with a freshly allocated transposition table of
// config.Settings.Search.TTSize megabytes (falling back to 64 if unset).
func NewSearch() *Search {
	sizeMB := config.Settings.Search.TTSize
	if sizeMB <= 0 {
		sizeMB = 64
	}
	return &Search{
		tt:      transpositiontable.NewTable(sizeMB),
		killers: &ordering.Killers{},
		history: &ordering.History{},
	}
}

// NewGame resets tables so a new game doesn't inherit the previous one's
// transposition entries or move-ordering history.
func (s *Search) NewGame() {
	s.tt.Clear()
	s.killers = &ordering.Killers{}
	s.history = &ordering.History{}
}

// Statistics reports the counters accumulated by the most recent
// FindBestMove call.
func (s *Search) Statistics() Statistics {
	return s.stats
}

// FindBestMove runs iterative deepening up to maxDepth or until the
// TimeManager's target for this move elapses, whichever comes first, and
// returns the best move found along with its score, the depth actually
// completed, and nodes visited (spec.md §4.6). The target comes from a
// TimeManager built with timeBudgetMs as its whole clock and one expected
// move, so it is at most a quarter of timeBudgetMs (and at most 200 ms when
// timeBudgetMs is under 1000).
func (s *Search) FindBestMove(pos *position.Position, maxDepth int, timeBudgetMs int64) Result {
	s.stats = Statistics{}
	s.nodes = 0
	s.leafEvals = 0
	s.tt.NewSearch()
	startTime := time.Now()

	var roots moveslice.MoveSlice
	movegen.Generate(pos, &roots)
	if roots.Len() == 0 {
		// Terminal at the root: no legal move to return. Scored from the
		// side to move's perspective via the evaluator's terminal branch.
		score := evaluator.Evaluate(pos, 0, evaluator.Standard)
		if pos.SideToMoveColor() == Blue {
			score = -score
		}
		return Result{Move: MoveNone, Score: score}
	}

	moves := make([]rootMove, roots.Len())
	for i := 0; i < roots.Len(); i++ {
		moves[i] = rootMove{move: roots.At(i)}
	}

	tactical := false
	for i := 0; i < roots.Len(); i++ {
		if movegen.IsCapture(pos, pos.SideToMoveColor(), roots.At(i)) {
			tactical = true
			break
		}
	}
	complexity := 1.0
	target, emergency := s.tm0Allocate(timeBudgetMs, complexity, tactical)
	s.tm.StartMove(target)
	defer s.tm.StopTimer()

	s.detail = s.tm.DetailLevel()
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	var (
		bestMove      = MoveNone
		bestScore     Value
		completed     int
		prevScore     Value
		useAspiration = !emergency
	)

	for depth := 1; depth <= maxDepth; depth++ {
		alpha, beta := -ValueInf, ValueInf
		window := aspWindow0
		if useAspiration && depth > 3 {
			alpha, beta = prevScore-window, prevScore+window
		}

		var (
			score   Value
			move    Move
			aborted bool
		)
		for fails := 0; ; {
			score, move, aborted = s.rootSearch(pos, depth, alpha, beta, moves)
			if aborted {
				break
			}
			if score <= alpha && alpha > -ValueInf {
				fails++
				s.stats.AspResearch++
				if fails >= aspMaxFails {
					alpha, beta = -ValueInf, ValueInf
					continue
				}
				window *= aspWindowGrow
				alpha = prevScore - window
				continue
			}
			if score >= beta && beta < ValueInf {
				fails++
				s.stats.AspResearch++
				if fails >= aspMaxFails {
					alpha, beta = -ValueInf, ValueInf
					continue
				}
				window *= aspWindowGrow
				beta = prevScore + window
				continue
			}
			break
		}

		if aborted {
			break
		}

		bestMove, bestScore, completed, prevScore = move, score, depth, score
		sort.SliceStable(moves, func(i, j int) bool { return moves[i].score > moves[j].score })
		s.logIterationEnd(depth, bestScore, bestMove, startTime)
	}

	s.stats.Nodes = s.nodes

	return Result{Move: bestMove, Score: bestScore, Depth: completed, Nodes: s.nodes}
}

// nps reports nodes per second since start, matching the teacher's
// getNps sanity clamp for implausibly short elapsed times.
func (s *Search) nps(start time.Time) uint64 {
	n := util.Nps(s.nodes, time.Since(start))
	if n > 15_000_000 {
		n = 0
	}
	return n
}

// logIterationEnd emits one search-trace line per completed iterative-
// deepening depth, the same class of progress report the teacher's
// sendIterationEndInfoToUci sends to its UCI handler.
func (s *Search) logIterationEnd(depth int, score Value, bestMove Move, start time.Time) {
	searchLog.Infof(out.Sprintf("depth %d value %d nodes %d nps %d time %d move %s",
		depth, score, s.nodes, s.nps(start), time.Since(start).Milliseconds(), bestMove.String()))
}

// tm0Allocate lazily builds this call's TimeManager (one per FindBestMove —
// spec.md §4.6's operation signature takes the budget directly rather than
// a whole-game clock) and asks it for a target, returning its emergency
// flag too so the caller can suppress aspiration windows per spec.md §4.7.
func (s *Search) tm0Allocate(timeBudgetMs int64, complexity float64, tactical bool) (int64, bool) {
	s.tm = timemanager.NewManager(timeBudgetMs, 1)
	return s.tm.Allocate(complexity, tactical)
}

// rootSearch searches every root move once at depth with window
// [alpha,beta] using PVS, never pruning or reducing (spec.md §4.6 "Never
// prune or reduce at the root"). Returns the best score found, its move,
// and whether the cancellation flag fired mid-loop (in which case the
// caller must discard this iteration's partial result).
func (s *Search) rootSearch(pos *position.Position, depth int, alpha, beta Value, moves []rootMove) (Value, Move, bool) {
	best := -ValueInf
	bestMove := MoveNone

	for i := range moves {
		m := moves[i].move
		u, err := pos.Apply(m)
		if err != nil {
			continue
		}
		s.nodes++

		var value Value
		if !config.Settings.Search.UsePVS || i == 0 {
			value = -s.search(pos, depth-1, 1, -beta, -alpha, true, true, 0)
		} else {
			value = -s.search(pos, depth-1, 1, -alpha-1, -alpha, false, true, 0)
			if value > alpha && value < beta {
				value = -s.search(pos, depth-1, 1, -beta, -alpha, true, true, 0)
			}
		}

		pos.Undo(u)

		if s.tm.Cancelled() {
			return 0, MoveNone, true
		}

		moves[i].score = value
		if value > best {
			best = value
			bestMove = m
		}
		if value > alpha {
			alpha = value
		}
	}

	return best, bestMove, false
}
