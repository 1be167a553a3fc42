/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/movegen"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/moveslice"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
)

// TestGenerateProducesOnlyLegalMoves checks spec.md §8 property 4: every
// move Generate returns is accepted by Apply without an IllegalMoveApplied
// error, walked three plies deep from the start position.
func TestGenerateProducesOnlyLegalMoves(t *testing.T) {
	p := position.NewStartPosition()
	walkLegality(t, p, 3)
}

func walkLegality(t *testing.T, p *position.Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	var moves moveslice.MoveSlice
	movegen.Generate(p, &moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		u, err := p.Apply(m)
		require.NoError(t, err, "move %s from generate rejected by apply", m)
		walkLegality(t, p, depth-1)
		p.Undo(u)
	}
}

func TestGenerateTacticalIsSubsetOfGenerate(t *testing.T) {
	fens := []string{
		"3BG3/7/7/7/7/7/3RG3 r",
		"7/7/7/3BG3/7/7/3r33 r",
		"3BG3/7/7/1r12b12/7/7/3RG3 r",
	}
	for _, fen := range fens {
		p, err := position.ParseFen(fen)
		require.NoError(t, err, fen)

		var all, tactical moveslice.MoveSlice
		movegen.Generate(p, &all)
		movegen.GenerateTactical(p, &tactical)

		allSet := make(map[string]bool, all.Len())
		for i := 0; i < all.Len(); i++ {
			allSet[all.At(i).String()] = true
		}
		for i := 0; i < tactical.Len(); i++ {
			m := tactical.At(i)
			assert.True(t, allSet[m.String()], "%s: tactical move %s missing from full generate", fen, m)
		}
	}
}

func TestGenerateTacticalFindsAvailableCapture(t *testing.T) {
	// Red tower of height 3 on D1 can capture blue's guard on D4 in one
	// straight slide (spec.md §8 scenario D).
	p, err := position.ParseFen("7/7/7/3BG3/7/7/3r33 r")
	require.NoError(t, err)

	var tactical moveslice.MoveSlice
	movegen.GenerateTactical(p, &tactical)

	found := false
	for i := 0; i < tactical.Len(); i++ {
		m := tactical.At(i)
		if movegen.IsCapture(p, p.SideToMoveColor(), m) {
			found = true
		}
	}
	assert.True(t, found, "expected a capturing move in tactical list, got %s", tactical.String())
}

func TestGenerateTacticalQuietPositionHasNoCaptures(t *testing.T) {
	// Towers separated by two empty squares can't reach each other
	// (spec.md §8 scenario E): tactical moves here, if any, are all
	// guard-advance moves, never captures.
	p, err := position.ParseFen("3BG3/7/7/1r12b12/7/7/3RG3 r")
	require.NoError(t, err)

	var tactical moveslice.MoveSlice
	movegen.GenerateTactical(p, &tactical)

	for i := 0; i < tactical.Len(); i++ {
		m := tactical.At(i)
		assert.False(t, movegen.IsCapture(p, p.SideToMoveColor(), m), "unexpected capture %s in a position with no reachable enemy piece", m)
	}
}

func TestIsCaptureFalseForQuietMove(t *testing.T) {
	p := position.NewStartPosition()
	var moves moveslice.MoveSlice
	movegen.Generate(p, &moves)
	require.Greater(t, moves.Len(), 0)
	for i := 0; i < moves.Len(); i++ {
		assert.False(t, movegen.IsCapture(p, p.SideToMoveColor(), moves.At(i)), "start position has no captures available")
	}
}
