/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package search

import (
	"github.com/ElBuenoo/GaT-KI-sub001/internal/config"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/evaluator"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/movegen"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/ordering"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/util"
)

// sideEval returns evaluator.Evaluate's always-from-red score flipped into
// the negamax convention: positive favors the side to move.
func (s *Search) sideEval(pos *position.Position, ply int) Value {
	s.leafEvals++
	v := evaluator.Evaluate(pos, ply, s.detail)
	if pos.SideToMoveColor() == Blue {
		return -v
	}
	return v
}

// pollCancelled checks the cancellation flag, but only every 4096 leaf
// evaluations on top of the per-node check already done at node entry
// (spec.md §5: "every 4096 leaf evaluations").
func (s *Search) pollCancelled() bool {
	if s.leafEvals%4096 == 0 && s.tm.Cancelled() {
		return true
	}
	return false
}

// search is the interior-node (ply > 0) negamax/PVS function (spec.md §4.6).
// extTotal tracks cumulative search-extension plies already spent along this
// line, so extensions never exceed config.Settings.Search.MaxExt.
func (s *Search) search(pos *position.Position, depth, ply int, alpha, beta Value, isPV, allowNull bool, extTotal int) Value {
	// 1. Cancellation.
	if ply > 0 && s.tm.Cancelled() {
		return ValueAborted
	}

	// 2. Terminal check.
	if winner, over := pos.Winner(); over {
		if winner == pos.SideToMoveColor() {
			return WIN - Value(ply)
		}
		return -WIN + Value(ply)
	}

	// 3. Depth 0: hand off to quiescence, or a plain static eval if
	// quiescence is disabled.
	if depth <= 0 {
		if !config.Settings.Search.UseQuiescence {
			return s.sideEval(pos, ply)
		}
		return s.quiesce(pos, alpha, beta, ply, 0)
	}

	// Mate-distance pruning: no line through this node can ever beat a mate
	// already found shallower than ply, so tighten the window to what's
	// still reachable before doing any real work.
	if config.Settings.Search.UseMDP {
		if matingValue := WIN - Value(ply); matingValue < beta {
			beta = matingValue
			if alpha >= beta {
				return beta
			}
		}
		if matedValue := -WIN + Value(ply); matedValue > alpha {
			alpha = matedValue
			if alpha >= beta {
				return alpha
			}
		}
	}

	mover := pos.SideToMoveColor()
	origAlpha := alpha

	// 4. TT probe.
	ttMove := MoveNone
	if config.Settings.Search.UseTT {
		probe := s.tt.Probe(pos.Hash(), depth, alpha, beta, ply)
		if probe.HasMove {
			s.stats.TTHits++
			if config.Settings.Search.UseTTMove {
				ttMove = probe.Move
			}
			if config.Settings.Search.UseTTValue && probe.Hit && (!isPV || probe.Bound == BoundExact) {
				return probe.Score
			}
		} else {
			s.stats.TTMisses++
		}
	}

	inDanger := evaluator.GuardInDanger(pos, mover)

	// 5. Static-eval-driven pruning: never in PV, never while our own guard
	// is in danger (spec.md §4.6 step 5). nodeEval is this node's own static
	// eval (computed once, before any move is applied) and is reused by the
	// move loop's futility check below rather than recomputed per move.
	var nodeEval Value
	evalKnown := false
	if !isPV && !inDanger {
		nodeEval = s.sideEval(pos, ply)
		evalKnown = true

		if config.Settings.Search.UseRFP && depth <= 3 {
			margin := pruneMargin[depth]
			if nodeEval-margin >= beta {
				s.stats.RfpPrunings++
				return nodeEval
			}
		}

		if config.Settings.Search.UseNullMove && allowNull && depth >= config.Settings.Search.NmpDepth &&
			hasMovableMaterial(pos, mover) {
			r := config.Settings.Search.NmpReduction
			newDepth := util.Max(depth-1-r, 0)
			pos.DoNullMove()
			nullScore := -s.search(pos, newDepth, ply+1, -beta, -beta+1, false, false, extTotal)
			pos.UndoNullMove()
			if s.tm.Cancelled() {
				return ValueAborted
			}
			if nullScore >= beta {
				s.stats.NullCuts++
				return beta
			}
		}
	}

	// 6. Move generation & ordering.
	moves := &s.moveBuf[ply]
	movegen.Generate(pos, moves)
	if moves.Len() == 0 {
		return -(WIN - Value(ply))
	}
	tagMoves(pos, mover, moves, ttMove, ply, s.killers, s.history)
	moves.Sort()

	bestScore := -ValueInf
	bestMove := MoveNone
	bound := BoundUpper
	movesSearched := 0

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		isCap := movegen.IsCapture(pos, mover, m)
		quiet := !isCap

		u, err := pos.Apply(m)
		if err != nil {
			continue
		}
		s.nodes++

		selfDanger := evaluator.GuardInDanger(pos, mover)
		enemyDanger := evaluator.GuardInDanger(pos, mover.Other())

		ext := 0
		if config.Settings.Search.UseExt && config.Settings.Search.UseCheckExt &&
			extTotal < config.Settings.Search.MaxExt && selfDanger {
			ext = 1
			s.stats.CheckExt++
		}

		if config.Settings.Search.UseLmp && !isPV && quiet && ext == 0 && depth <= 3 && !enemyDanger &&
			movesSearched >= lmpMoveCount[depth] {
			pos.Undo(u)
			s.history.Bad(mover, m.From(), m.To())
			continue
		}

		if config.Settings.Search.UseFP && evalKnown && !isPV && quiet && ext == 0 && depth <= 3 && !enemyDanger {
			margin := pruneMargin[depth]
			if nodeEval+margin <= origAlpha {
				s.stats.FpPrunings++
				pos.Undo(u)
				if quiet {
					s.history.Bad(mover, m.From(), m.To())
				}
				continue
			}
		}

		newDepth := depth - 1 + ext
		reduction := 0
		if config.Settings.Search.UseLmr && ext == 0 && quiet && !isPV &&
			depth >= config.Settings.Search.LmrDepth && i >= config.Settings.Search.LmrMovesSearched {
			reduction = 1
			if i >= 2*config.Settings.Search.LmrMovesSearched {
				reduction = 2
			}
			s.stats.LmrReduced++
		}

		var value Value
		switch {
		case !config.Settings.Search.UsePVS || movesSearched == 0:
			value = -s.search(pos, newDepth, ply+1, -beta, -alpha, isPV, true, extTotal+ext)
		default:
			value = -s.search(pos, newDepth-reduction, ply+1, -alpha-1, -alpha, false, true, extTotal+ext)
			if value > alpha && (reduction > 0 || isPV) {
				value = -s.search(pos, newDepth, ply+1, -beta, -alpha, true, true, extTotal+ext)
			}
		}

		pos.Undo(u)
		movesSearched++

		if s.tm.Cancelled() {
			return ValueAborted
		}

		if value > bestScore {
			bestScore = value
			bestMove = m
		}
		if value > alpha {
			alpha = value
			bound = BoundExact
			if value >= beta {
				bound = BoundLower
				s.stats.BetaCuts++
				if quiet {
					if config.Settings.Search.UseKiller {
						s.killers.Add(ply, m)
					}
					s.history.Good(mover, m.From(), m.To(), depth)
				}
				break
			}
		} else if quiet {
			s.history.Bad(mover, m.From(), m.To())
		}
	}

	if config.Settings.Search.UseTT {
		s.tt.Store(pos.Hash(), depth, bound, bestScore, bestMove, ply)
	}

	return bestScore
}

// hasMovableMaterial reports whether c has any tower piece (ignoring its
// guard), the null-move precondition that avoids passing in a position
// where only the guard could ever have moved anyway (spec.md §4.6 step 5:
// "there is material to move").
func hasMovableMaterial(pos *position.Position, c Color) bool {
	return pos.TowersBb(c) != 0
}

// tagMoves scores every move in moves via internal/ordering's tiered
// scheme, ready for moves.Sort().
func tagMoves(pos *position.Position, mover Color, moves interface {
	Len() int
	At(int) Move
	Set(int, Move)
}, ttMove Move, ply int, killers *ordering.Killers, history *ordering.History) {
	useKiller := config.Settings.Search.UseKiller
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		isCap := movegen.IsCapture(pos, mover, m)
		tagged := ordering.Tag(pos, mover, m, ttMove, ply, killers, history, isCap, useKiller)
		moves.Set(i, tagged)
	}
}

// quiesce is the capture/guard-advance-only continuation past the normal
// search horizon (spec.md §4.6 "Quiescence"). qDepth counts plies spent in
// quiescence itself, capped at config.Settings.Search.MaxQDepth; ply keeps
// indexing into the shared per-ply buffers.
func (s *Search) quiesce(pos *position.Position, alpha, beta Value, ply, qDepth int) Value {
	if ply > 0 && s.tm.Cancelled() {
		return ValueAborted
	}
	if s.pollCancelled() {
		return ValueAborted
	}

	if winner, over := pos.Winner(); over {
		if winner == pos.SideToMoveColor() {
			return WIN - Value(ply)
		}
		return -WIN + Value(ply)
	}

	origAlpha := alpha
	ttMove := MoveNone
	if config.Settings.Search.UseQSTT {
		probe := s.tt.Probe(pos.Hash(), 0, alpha, beta, ply)
		if probe.HasMove {
			ttMove = probe.Move
		}
		if probe.Hit {
			return probe.Score
		}
	}

	standPat := s.sideEval(pos, ply)
	if config.Settings.Search.UseQSStandpat {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}
	if qDepth >= config.Settings.Search.MaxQDepth {
		return standPat
	}

	mover := pos.SideToMoveColor()
	moves := &s.qBuf[ply]
	movegen.GenerateTactical(pos, moves)
	if moves.Len() == 0 {
		return standPat
	}
	tagMoves(pos, mover, moves, ttMove, ply, s.killers, s.history)
	moves.Sort()

	best := standPat
	bestMove := MoveNone
	qDelta := Value(config.Settings.Search.QDelta)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		var victim Value
		if movegen.IsCapture(pos, mover, m) {
			victim = Value(ordering.PieceValue(pos, mover.Other(), m.To()))
		}
		if standPat+victim+qDelta <= alpha {
			continue
		}

		u, err := pos.Apply(m)
		if err != nil {
			continue
		}
		s.nodes++
		s.stats.QNodes++

		value := -s.quiesce(pos, -beta, -alpha, ply+1, qDepth+1)

		pos.Undo(u)

		if s.tm.Cancelled() {
			return ValueAborted
		}

		if value > best {
			best = value
			bestMove = m
			if value > alpha {
				alpha = value
				if value >= beta {
					break
				}
			}
		}
	}

	if config.Settings.Search.UseQSTT {
		bound := BoundUpper
		switch {
		case best >= beta:
			bound = BoundLower
		case best > origAlpha:
			bound = BoundExact
		}
		s.tt.Store(pos.Hash(), 0, bound, best, bestMove, ply)
	}

	return best
}
