/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/search"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

// TestFindBestMoveQuietStartIsBoundedAndLegal is spec.md §8 scenario B: a
// quiet start position searched to a shallow depth should return a legal
// move with a score nowhere near a mate threshold.
func TestFindBestMoveQuietStartIsBoundedAndLegal(t *testing.T) {
	p := position.NewStartPosition()
	s := search.NewSearch()

	result := s.FindBestMove(p, 4, 2000)
	require.NotEqual(t, MoveNone, result.Move)
	assert.Less(t, int(result.Score), int(MateThreshold))
	assert.Greater(t, int(result.Score), -int(MateThreshold))

	_, err := p.Apply(result.Move)
	assert.NoError(t, err, "search must only ever return a legal move")
}

// TestFindBestMoveDetectsGuardCaptureMate is spec.md §8 scenario C/D: when a
// single move wins outright (captures the enemy guard, since a guard-less
// side has already lost per Winner), the search must find a mate score.
func TestFindBestMoveDetectsGuardCaptureMate(t *testing.T) {
	p, err := position.ParseFen("7/7/7/3BG3/7/7/RG2r33 r")
	require.NoError(t, err)

	s := search.NewSearch()
	result := s.FindBestMove(p, 6, 2000)

	require.NotEqual(t, MoveNone, result.Move)
	assert.GreaterOrEqual(t, int(result.Score), int(WIN)-2,
		"a forced guard capture should score at or near +WIN")
	assert.Equal(t, Square(3), result.Move.From(), "the height-3 tower on D1 is the only piece that can capture")
}

// TestFindBestMoveShortBudgetReturnsLegalMove covers a shallow depth limit
// with a short time budget: the search must still return a legal move.
func TestFindBestMoveShortBudgetReturnsLegalMove(t *testing.T) {
	p, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)

	s := search.NewSearch()
	result := s.FindBestMove(p, 2, 500)
	require.NotEqual(t, MoveNone, result.Move)

	_, err = p.Apply(result.Move)
	assert.NoError(t, err)
}

// TestFindBestMoveIsDeterministic runs the same position/depth/budget twice
// on fresh Search instances and expects bitwise-identical picks, per
// spec.md §8's determinism property — no concurrency, no time-of-day
// dependent tie-breaking.
func TestFindBestMoveIsDeterministic(t *testing.T) {
	fen := "3BG3/7/7/1r12b12/7/7/3RG3 r"

	run := func() search.Result {
		p, err := position.ParseFen(fen)
		require.NoError(t, err)
		s := search.NewSearch()
		return s.FindBestMove(p, 4, 3000)
	}

	first := run()
	second := run()

	assert.Equal(t, first.Move, second.Move)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Depth, second.Depth)
}

// TestFindBestMoveTerminalPositionReturnsNoMove covers the root-terminal
// path: a side with no legal moves (its guard already gone) gets MoveNone
// rather than a panic or a phantom move.
func TestFindBestMoveTerminalPositionReturnsNoMove(t *testing.T) {
	// Blue to move with no pieces at all on the board: no legal move
	// exists to generate at the root.
	p, err := position.ParseFen("7/7/7/7/7/7/7 b")
	require.NoError(t, err)

	s := search.NewSearch()
	result := s.FindBestMove(p, 4, 500)
	assert.Equal(t, MoveNone, result.Move)
}

func TestSearchAfterNewGameStillSearches(t *testing.T) {
	p := position.NewStartPosition()
	s := search.NewSearch()
	s.FindBestMove(p, 3, 1000)
	require.Greater(t, s.Statistics().Nodes, uint64(0))

	s.NewGame()
	s.FindBestMove(p, 1, 500)
	assert.Greater(t, s.Statistics().Nodes, uint64(0), "a fresh game must still search normally after reset")
}
