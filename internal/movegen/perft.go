/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package movegen

import (
	"github.com/ElBuenoo/GaT-KI-sub001/internal/moveslice"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
)

// Perft recursively counts leaf nodes reached by exhaustively applying every
// legal move to depth d, the classic move-generator correctness check
// (adapted from the teacher's internal/movegen/perft.go, which does the
// same for chess). No test in the repository calls it.
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var moves moveslice.MoveSlice
	Generate(pos, &moves)
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		u, err := pos.Apply(m)
		if err != nil {
			continue
		}
		nodes += Perft(pos, depth-1)
		pos.Undo(u)
	}
	return nodes
}
