/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/enginerr"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/movegen"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/moveslice"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

func TestParseFenRoundtrip(t *testing.T) {
	fens := []string{
		"3BG3/7/7/7/7/7/3RG3 r",
		"3BG3/7/7/7/7/7/3RG3 b",
		"3b13/7/7/7/7/7/3RG3 b",
		"7/7/1r14r1/7/7/7/3RG3 r",
	}
	for _, fen := range fens {
		p, err := position.ParseFen(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, p.ToFen())
	}
}

func TestParseFenRejectsMalformed(t *testing.T) {
	cases := []string{
		"3BG3/7/7/7/7/7/3RG3",   // missing side field
		"3BG3/7/7/7/7/3RG3 r",  // only 6 ranks
		"4BG3/7/7/7/7/7/3RG3 r", // rank overflows 7 squares
		"3BG3/7/7/7/7/7/3RG3 x", // invalid side letter
		"3XY3/7/7/7/7/7/3RG3 r", // unknown token
	}
	for _, fen := range cases {
		_, err := position.ParseFen(fen)
		require.Error(t, err, fen)
		assert.IsType(t, &enginerr.InvalidFenError{}, err, fen)
	}
}

func TestZobristConsistencyAcrossApplyUndo(t *testing.T) {
	p := position.NewStartPosition()
	walkApplyUndo(t, p, 3)
}

// walkApplyUndo recursively applies every legal move up to depth plies,
// checking at each node that the incrementally maintained Zobrist hash
// matches a from-scratch recomputation (spec.md §8 property 3), and that
// undoing restores the externally visible state exactly (property 1).
func walkApplyUndo(t *testing.T, p *position.Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	before := p.Clone()

	var moves moveslice.MoveSlice
	movegen.Generate(p, &moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		u, err := p.Apply(m)
		require.NoError(t, err)

		assert.Equal(t, p.RecomputeHash(), p.Hash(), "zobrist drifted after %s", m)

		walkApplyUndo(t, p, depth-1)

		p.Undo(u)
		assert.True(t, p.Equals(before), "undo did not restore state after %s", m)
	}
}

func TestWinnerDetectsGuardCapture(t *testing.T) {
	p, err := position.ParseFen("7/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)
	_, over := p.Winner()
	assert.True(t, over, "blue has no guard left, red should have already won")
}

func TestWinnerFalseAtStart(t *testing.T) {
	p, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)
	assert.False(t, p.IsTerminal())
}

func TestWinnerRedReachesCastle(t *testing.T) {
	p, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)
	p.RedGuard = RedCastle.Bb()
	winner, over := p.Winner()
	require.True(t, over)
	assert.Equal(t, Red, winner)
}

func TestWinnerBlueReachesCastle(t *testing.T) {
	p, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)
	p.BlueGuard = BlueCastle.Bb()
	winner, over := p.Winner()
	require.True(t, over)
	assert.Equal(t, Blue, winner)
}
