/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package movegen enumerates pseudo-legal moves for Guards & Towers: guard
// single steps and tower slides of 1..height squares along a clear
// orthogonal line. Grounded on the teacher's internal/movegen/movegen.go
// reusable-MoveSlice-buffer idiom; the sliding-attack computation itself is
// a plain ray walk rather than the teacher's magic-bitboard machinery,
// since this board has no diagonal movement and is far too small (49
// squares) to justify magic bitboards.
package movegen

import (
	"github.com/ElBuenoo/GaT-KI-sub001/internal/moveslice"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/util"
)

// Position is the subset of internal/position.Position's read surface that
// move generation needs. Declared locally to avoid a dependency cycle
// (position doesn't need to know about movegen).
type Position interface {
	GuardAt(c Color, sq Square) bool
	TowerAt(c Color, sq Square) bool
	HeightAt(c Color, sq Square) int
	Occupied() Bitboard
	SideToMoveColor() Color
}

var directions = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func step(sq Square, dr, df int) Square {
	return NewSquare(sq.Rank()+dr, sq.File()+df)
}

func ownOccupied(pos Position, c Color) func(Square) bool {
	return func(sq Square) bool {
		return pos.GuardAt(c, sq) || pos.TowerAt(c, sq)
	}
}

func anyOccupied(pos Position, sq Square) bool {
	return pos.Occupied().Has(sq)
}

// Generate appends every legal move for the side to move into dest. dest is
// cleared first; the caller owns dest's backing array so no allocation
// happens on the hot path when dest is reused across nodes.
func Generate(pos Position, dest *moveslice.MoveSlice) {
	dest.Clear()
	c := pos.SideToMoveColor()

	for sq := Square(0); int(sq) < BoardSize; sq++ {
		switch {
		case pos.GuardAt(c, sq):
			generateGuardMoves(pos, c, sq, dest)
		case pos.TowerAt(c, sq):
			generateTowerMoves(pos, c, sq, dest)
		}
	}
}

func generateGuardMoves(pos Position, c Color, from Square, dest *moveslice.MoveSlice) {
	own := ownOccupied(pos, c)
	for _, d := range directions {
		to := step(from, d[0], d[1])
		if !to.IsValid() {
			continue
		}
		if own(to) {
			continue
		}
		dest.PushBack(NewMove(from, to, 1))
	}
}

func generateTowerMoves(pos Position, c Color, from Square, dest *moveslice.MoveSlice) {
	h := pos.HeightAt(c, from)
	for _, d := range directions {
		for k := 1; k <= h; k++ {
			to := step(from, d[0]*k, d[1]*k)
			if !to.IsValid() {
				break
			}
			occupied := anyOccupied(pos, to)
			// Landing on an own tower stacks onto it; only the own guard's
			// square is closed to a tower.
			if !pos.GuardAt(c, to) {
				dest.PushBack(NewMove(from, to, k))
			}
			if occupied {
				// Blocked: whether or not this square produced a legal
				// move, nothing can travel further past an occupied square.
				break
			}
		}
	}
}

// GenerateTactical appends only tactical moves for quiescence: captures,
// and guard moves that step strictly nearer the opposing castle along
// their current file or rank (spec.md §4.2).
func GenerateTactical(pos Position, dest *moveslice.MoveSlice) {
	dest.Clear()
	c := pos.SideToMoveColor()
	enemy := c.Other()

	for sq := Square(0); int(sq) < BoardSize; sq++ {
		switch {
		case pos.GuardAt(c, sq):
			own := ownOccupied(pos, c)
			castle := BlueCastle
			if c == Red {
				castle = RedCastle
			}
			before := distance(sq, castle)
			for _, d := range directions {
				to := step(sq, d[0], d[1])
				if !to.IsValid() || own(to) {
					continue
				}
				if pos.GuardAt(enemy, to) || pos.TowerAt(enemy, to) {
					dest.PushBack(NewMove(sq, to, 1))
					continue
				}
				if distance(to, castle) < before {
					dest.PushBack(NewMove(sq, to, 1))
				}
			}
		case pos.TowerAt(c, sq):
			own := ownOccupied(pos, c)
			h := pos.HeightAt(c, sq)
			for _, d := range directions {
				for k := 1; k <= h; k++ {
					to := step(sq, d[0]*k, d[1]*k)
					if !to.IsValid() {
						break
					}
					occupied := anyOccupied(pos, to)
					if occupied && !own(to) {
						dest.PushBack(NewMove(sq, to, k))
					}
					if occupied {
						break
					}
				}
			}
		}
	}
}

func distance(a, b Square) int {
	return util.Abs(a.Rank()-b.Rank()) + util.Abs(a.File()-b.File())
}

// IsCapture reports whether m captures an enemy piece in pos.
func IsCapture(pos Position, c Color, m Move) bool {
	enemy := c.Other()
	return pos.GuardAt(enemy, m.To()) || pos.TowerAt(enemy, m.To())
}
