/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package position implements the bitboard board representation for
// Guards & Towers: guard/tower bitboards, per-square stack heights,
// incrementally maintained Zobrist hash, move application/undo, and FEN I/O.
//
// Grounded on the teacher's internal/position/position.go: the history-array
// undo pattern (a fixed-size array indexed by a counter, not a growing
// slice), the incremental Zobrist XOR discipline, and the regex-validated
// FEN parser shape. The movement and capture rules themselves are this
// domain's own (orthogonal guard steps, tower stacking and splitting),
// since chess has no stacking-piece analog.
package position

import (
	"fmt"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/enginerr"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

// MaxPly bounds the undo-history array: iterative deepening's max depth
// plus quiescence's own depth bound, with headroom for extensions.
const MaxPly = MaxDepth + 64

// state is a full snapshot of Position's mutable fields, pushed onto the
// history array before every Apply and popped by Undo. Cheap to copy: a
// handful of uint64s and two 49-byte arrays.
type state struct {
	redGuard, blueGuard   Bitboard
	redTowers, blueTowers Bitboard
	redHeight, blueHeight [BoardSize]int8
	sideToMove            Color
	zobrist               uint64
}

// Position is the mutable board representation. Copy-on-branch in search is
// supported by value-copying a Position wholesale; apply/undo is the
// cheaper, allocation-free alternative used by the search's hot path.
type Position struct {
	RedGuard, BlueGuard   Bitboard
	RedTowers, BlueTowers Bitboard
	RedHeight, BlueHeight [BoardSize]int8
	SideToMove            Color
	Zobrist               uint64

	history      [MaxPly]state
	historyCount int
}

// UndoInfo is the token returned by Apply and consumed by Undo. It carries
// no data of its own — Position keeps its own history stack — but its
// presence in the signature documents the apply/undo contract of spec.md
// §4.1.
type UndoInfo struct{}

// NewStartPosition returns the standard starting position: guards on each
// side's castle file, back rank, facing each other across an empty board.
func NewStartPosition() *Position {
	p, err := ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	if err != nil {
		panic(fmt.Sprintf("built-in start position failed to parse: %v", err))
	}
	return p
}

func (p *Position) guardBb(c Color) Bitboard {
	if c == Red {
		return p.RedGuard
	}
	return p.BlueGuard
}

func (p *Position) setGuardBb(c Color, b Bitboard) {
	if c == Red {
		p.RedGuard = b
	} else {
		p.BlueGuard = b
	}
}

func (p *Position) towersBb(c Color) Bitboard {
	if c == Red {
		return p.RedTowers
	}
	return p.BlueTowers
}

func (p *Position) setTowersBb(c Color, b Bitboard) {
	if c == Red {
		p.RedTowers = b
	} else {
		p.BlueTowers = b
	}
}

func (p *Position) heightArr(c Color) *[BoardSize]int8 {
	if c == Red {
		return &p.RedHeight
	}
	return &p.BlueHeight
}

// HeightAt returns the stack height of color c at sq (0 if none).
func (p *Position) HeightAt(c Color, sq Square) int {
	return int(p.heightArr(c)[sq])
}

// GuardAt reports whether color c's guard stands on sq.
func (p *Position) GuardAt(c Color, sq Square) bool {
	return p.guardBb(c).Has(sq)
}

// TowerAt reports whether color c has a tower on sq.
func (p *Position) TowerAt(c Color, sq Square) bool {
	return p.towersBb(c).Has(sq)
}

// SideToMoveColor returns the color to move, satisfying internal/movegen's
// Position interface.
func (p *Position) SideToMoveColor() Color {
	return p.SideToMove
}

// GuardSquare returns color c's guard square, or (SquareNone, false) if
// captured.
func (p *Position) GuardSquare(c Color) (Square, bool) {
	b := p.guardBb(c)
	if b == 0 {
		return SquareNone, false
	}
	return b.Lsb(), true
}

// TowersBb returns the bitboard of color c's towers.
func (p *Position) TowersBb(c Color) Bitboard {
	return p.towersBb(c)
}

// Occupied returns the union of every piece on the board.
func (p *Position) Occupied() Bitboard {
	return p.RedGuard | p.BlueGuard | p.RedTowers | p.BlueTowers
}

// Hash returns the incrementally maintained Zobrist key.
func (p *Position) Hash() uint64 {
	return p.Zobrist
}

// RecomputeHash recomputes the Zobrist key from scratch, used by the
// Zobrist-consistency fuzz check (spec.md §8 property 3).
func (p *Position) RecomputeHash() uint64 {
	var h uint64
	if p.RedGuard != 0 {
		h ^= guardKey(Red, p.RedGuard.Lsb())
	}
	if p.BlueGuard != 0 {
		h ^= guardKey(Blue, p.BlueGuard.Lsb())
	}
	for sq := Square(0); int(sq) < BoardSize; sq++ {
		if p.RedHeight[sq] > 0 {
			h ^= towerKey(Red, sq, int(p.RedHeight[sq]))
		}
		if p.BlueHeight[sq] > 0 {
			h ^= towerKey(Blue, sq, int(p.BlueHeight[sq]))
		}
	}
	if p.SideToMove == Blue {
		h ^= zSide
	}
	return h
}

// Winner reports the winning color, if the position is terminal.
func (p *Position) Winner() (Color, bool) {
	if p.RedGuard == 0 {
		return Blue, true
	}
	if p.BlueGuard == 0 {
		return Red, true
	}
	if p.RedGuard == RedCastle.Bb() {
		return Red, true
	}
	if p.BlueGuard == BlueCastle.Bb() {
		return Blue, true
	}
	return 0, false
}

// IsTerminal reports whether the game has already ended.
func (p *Position) IsTerminal() bool {
	_, over := p.Winner()
	return over
}

func (p *Position) pushHistory() {
	p.history[p.historyCount] = state{
		redGuard:   p.RedGuard,
		blueGuard:  p.BlueGuard,
		redTowers:  p.RedTowers,
		blueTowers: p.BlueTowers,
		redHeight:  p.RedHeight,
		blueHeight: p.BlueHeight,
		sideToMove: p.SideToMove,
		zobrist:    p.Zobrist,
	}
	p.historyCount++
}

// Apply updates bitboards, heights, side-to-move and Zobrist hash for move
// m, which must be a legal move produced by internal/movegen (Apply does
// not re-validate legality, only internal invariants). Returns an error
// only if an invariant break is detected — a bug indicator, not an
// illegal-move signal.
func (p *Position) Apply(m Move) (UndoInfo, error) {
	if p.historyCount >= MaxPly {
		return UndoInfo{}, &enginerr.IllegalMoveError{Detail: "history stack exhausted"}
	}

	from, to, amount := m.From(), m.To(), m.Amount()
	mover := p.SideToMove
	enemy := mover.Other()

	if p.guardBb(mover).Has(to) {
		return UndoInfo{}, &enginerr.IllegalMoveError{Detail: "destination occupied by own guard"}
	}

	p.pushHistory()

	isGuardMove := p.guardBb(mover).Has(from)

	// Resolve a capture at the destination first; afterward the
	// destination is either empty or holds a friendly tower, and the
	// mover's placement logic below is identical whether or not a capture
	// just happened.
	if p.guardBb(enemy).Has(to) {
		p.Zobrist ^= guardKey(enemy, to)
		p.setGuardBb(enemy, 0)
	} else if p.towersBb(enemy).Has(to) {
		destHeight := int(p.heightArr(enemy)[to])
		p.Zobrist ^= towerKey(enemy, to, destHeight)
		p.heightArr(enemy)[to] = 0
		p.setTowersBb(enemy, p.towersBb(enemy).Clear(to))
	}

	if isGuardMove {
		p.Zobrist ^= guardKey(mover, from)
		p.setGuardBb(mover, to.Bb())
		p.Zobrist ^= guardKey(mover, to)
	} else {
		h := int(p.heightArr(mover)[from])
		if amount < 1 || amount > h {
			return UndoInfo{}, &enginerr.IllegalMoveError{
				Detail: fmt.Sprintf("amount %d exceeds source height %d at %s", amount, h, from),
			}
		}
		remain := h - amount
		p.Zobrist ^= towerKey(mover, from, h)
		if remain > 0 {
			p.heightArr(mover)[from] = int8(remain)
			p.Zobrist ^= towerKey(mover, from, remain)
		} else {
			p.heightArr(mover)[from] = 0
			p.setTowersBb(mover, p.towersBb(mover).Clear(from))
		}

		destHeight := int(p.heightArr(mover)[to])
		if destHeight > 0 {
			p.Zobrist ^= towerKey(mover, to, destHeight)
		}
		newHeight := destHeight + amount
		p.heightArr(mover)[to] = int8(newHeight)
		p.setTowersBb(mover, p.towersBb(mover).Set(to))
		p.Zobrist ^= towerKey(mover, to, newHeight)
	}

	p.SideToMove = enemy
	p.Zobrist ^= zSide

	return UndoInfo{}, nil
}

// Undo reverses the most recent Apply. u is accepted for symmetry with
// Apply's signature but unused: Position's own history stack is the source
// of truth, so undoing out of order is a programmer error regardless of
// what token is passed.
func (p *Position) Undo(_ UndoInfo) {
	if p.historyCount == 0 {
		panic("position: Undo called with empty history")
	}
	p.historyCount--
	s := p.history[p.historyCount]
	p.RedGuard, p.BlueGuard = s.redGuard, s.blueGuard
	p.RedTowers, p.BlueTowers = s.redTowers, s.blueTowers
	p.RedHeight, p.BlueHeight = s.redHeight, s.blueHeight
	p.SideToMove = s.sideToMove
	p.Zobrist = s.zobrist
}

// DoNullMove toggles the side to move without touching any bitboard, for
// null-move pruning (spec.md §4.6 step 5). Must be paired with UndoNullMove.
func (p *Position) DoNullMove() {
	p.pushHistory()
	p.SideToMove = p.SideToMove.Other()
	p.Zobrist ^= zSide
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	p.Undo(UndoInfo{})
}

// Clone returns a deep, history-free copy of the position, useful for
// fuzz tests that want to mutate a branch without disturbing the original.
func (p *Position) Clone() *Position {
	c := *p
	c.historyCount = 0
	return &c
}

// Equals compares the externally visible board state (not history) of two
// positions, used by the apply/undo roundtrip fuzz check.
func (p *Position) Equals(o *Position) bool {
	return p.RedGuard == o.RedGuard && p.BlueGuard == o.BlueGuard &&
		p.RedTowers == o.RedTowers && p.BlueTowers == o.BlueTowers &&
		p.RedHeight == o.RedHeight && p.BlueHeight == o.BlueHeight &&
		p.SideToMove == o.SideToMove && p.Zobrist == o.Zobrist
}
