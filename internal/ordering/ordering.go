/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package ordering ranks moves at each search node: TT move, MVV/LVA
// captures, killer moves, then history-scored quiet moves (spec.md §4.5).
// Grounded on the teacher's internal/history/history.go (resized from 64 to
// 49 squares) for the history table shape, and on the MVV/LVA and killer
// conventions scattered through the teacher's internal/search/alphabeta.go.
// Split into its own package — the teacher folds this into movegen/search —
// because spec.md §2 gives Ordering its own row and share of the budget.
package ordering

import (
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

// Position is the read surface ordering needs to score a move.
type Position interface {
	GuardAt(c Color, sq Square) bool
	TowerAt(c Color, sq Square) bool
	HeightAt(c Color, sq Square) int
}

// Sort-value tiers; higher sorts first. Move.Value() is a 16-bit field
// (0..65535), so every tier and its internal spread must fit under the one
// above it.
const (
	valueTTMove   = 65000
	valueCaptureB = 50000
	valueKiller1  = 40000
	valueKiller2  = 39000
	valueQuietCap = 30000
)

// PieceValue mirrors spec.md §4.5: guard 2000, tower 100*height. Exported so
// internal/search's quiescence delta-pruning can reuse the same victim-value
// table as MVV/LVA ordering instead of keeping a second copy.
func PieceValue(pos Position, c Color, sq Square) int32 {
	return pieceValue(pos, c, sq)
}

// pieceValue mirrors spec.md §4.5: guard 2000, tower 100*height.
func pieceValue(pos Position, c Color, sq Square) int32 {
	if pos.GuardAt(c, sq) {
		return 2000
	}
	if pos.TowerAt(c, sq) {
		return int32(100 * pos.HeightAt(c, sq))
	}
	return 0
}

// MvvLva scores a capturing move: victim value minus 1/10th of the mover's
// value, per spec.md §4.5 tier 2.
func MvvLva(pos Position, mover Color, m Move) int32 {
	enemy := mover.Other()
	victim := pieceValue(pos, enemy, m.To())
	attacker := pieceValue(pos, mover, m.From())
	return victim - attacker/10
}

// MaxPly bounds the killer table; matches internal/search's max ply.
const MaxPly = MaxDepth + 64

// Killers holds two killer-move slots per ply.
type Killers struct {
	moves [MaxPly][2]Move
}

// Add records m as the newest killer at ply, shifting the previous newest
// into the second slot (spec.md §4.5 tier 3). A move already in slot 0 is
// not re-added.
func (k *Killers) Add(ply int, m Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// IsKiller reports whether m is one of ply's two killer moves, and which
// slot (0 = most recent).
func (k *Killers) IsKiller(ply int, m Move) (slot int, ok bool) {
	if ply < 0 || ply >= MaxPly {
		return 0, false
	}
	if k.moves[ply][0] == m {
		return 0, true
	}
	if k.moves[ply][1] == m {
		return 1, true
	}
	return 0, false
}

// historyMax triggers aging (right-shift of every entry) once any entry
// would exceed it.
const historyMax = 1 << 20

// History is a per-(color,from,to) counter boosted on a quiet beta cutoff,
// used to order remaining quiet moves. Incremented by depth^2 per
// spec.md §4.5 (the teacher instead increments by 1<<depth — a deliberate
// departure, not a grounding gap).
type History struct {
	table [2][BoardSize][BoardSize]int32
}

// Good records a quiet move that caused a beta cutoff at the given depth.
func (h *History) Good(c Color, from, to Square, depth int) {
	h.table[c][from][to] += int32(depth * depth)
	if h.table[c][from][to] > historyMax {
		h.age()
	}
}

// Bad records a quiet move that was searched but did not cause a cutoff,
// nudging it down so repeatedly-tried-but-useless moves sort later.
func (h *History) Bad(c Color, from, to Square) {
	if h.table[c][from][to] > 0 {
		h.table[c][from][to]--
	}
}

func (h *History) age() {
	for c := 0; c < 2; c++ {
		for f := 0; f < BoardSize; f++ {
			for t := 0; t < BoardSize; t++ {
				h.table[c][f][t] >>= 1
			}
		}
	}
}

// Score returns the raw history count for (c, from, to).
func (h *History) Score(c Color, from, to Square) int32 {
	return h.table[c][from][to]
}

// Tag assigns m's sort-value bits according to its tier: TT move highest,
// then MVV/LVA-scored captures, then killers, then history-scored quiets.
// Returns the tagged move; callers collect tagged moves into a MoveSlice
// and call its Sort method.
func Tag(pos Position, mover Color, m Move, ttMove Move, ply int, killers *Killers, history *History, isCapture bool, useKiller bool) Move {
	if ttMove != MoveNone && m == ttMove {
		return m.SetValue(valueTTMove)
	}
	if isCapture {
		v := valueCaptureB + MvvLva(pos, mover, m)
		if v < 0 {
			v = 0
		}
		if v > 65535 {
			v = 65535
		}
		return m.SetValue(v)
	}
	if useKiller {
		if slot, ok := killers.IsKiller(ply, m); ok {
			if slot == 0 {
				return m.SetValue(valueKiller1)
			}
			return m.SetValue(valueKiller2)
		}
	}
	hv := history.Score(mover, m.From(), m.To())
	if hv > valueQuietCap {
		hv = valueQuietCap
	}
	if hv < 0 {
		hv = 0
	}
	return m.SetValue(hv)
}
