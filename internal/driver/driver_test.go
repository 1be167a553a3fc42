/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/driver"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/enginerr"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

func TestFindBestMoveRejectsInvalidFen(t *testing.T) {
	d := driver.NewDriver()
	_, err := d.FindBestMove("not a fen", 500, 0)
	require.Error(t, err)
	assert.IsType(t, &enginerr.InvalidFenError{}, err)
}

// TestFindBestMoveOnTerminalPositionSkipsSearch covers the "blue has
// already lost its guard" case: the position is terminal before any move
// is made, so the driver must report it without invoking the search.
func TestFindBestMoveOnTerminalPositionSkipsSearch(t *testing.T) {
	d := driver.NewDriver()
	outcome, err := d.FindBestMove("7/7/7/7/7/7/3RG3 r", 500, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, outcome.Move)
}

func TestFindBestMoveReturnsLegalMoveForQuietStart(t *testing.T) {
	d := driver.NewDriver()
	outcome, err := d.FindBestMove("3BG3/7/7/7/7/7/3RG3 r", 1000, 3)
	require.NoError(t, err)
	assert.NotEqual(t, MoveNone, outcome.Move)
	assert.GreaterOrEqual(t, outcome.Depth, 1)
}

func TestFormatLineContainsAllFields(t *testing.T) {
	outcome := driver.Outcome{
		Move:  NewMove(Square(0), Square(1), 1),
		Score: 42,
		Depth: 3,
		Nodes: 1234,
	}
	line := driver.FormatLine(outcome)
	assert.Contains(t, line, "bestmove")
	assert.Contains(t, line, outcome.Move.String())
	assert.Contains(t, line, "score 42")
	assert.Contains(t, line, "depth 3")
	assert.Contains(t, line, "nodes 1234")
}

func TestNewGameIsSafeToCallBeforeAnySearch(t *testing.T) {
	d := driver.NewDriver()
	assert.NotPanics(t, func() { d.NewGame() })
}
