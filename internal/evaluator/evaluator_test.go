/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/evaluator"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/position"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

func TestEvaluateStartPositionIsWithinQuietBound(t *testing.T) {
	// Spec.md §8 scenario B: a quiet start position's root score should
	// stay within [-200, 200].
	p := position.NewStartPosition()
	score := evaluator.Evaluate(p, 0, evaluator.Standard)
	assert.LessOrEqual(t, int(score), 200)
	assert.GreaterOrEqual(t, int(score), -200)
}

func TestEvaluateTerminalScoresFavorTheWinner(t *testing.T) {
	p, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)
	p.RedGuard = RedCastle.Bb()

	score := evaluator.Evaluate(p, 0, evaluator.Standard)
	assert.Equal(t, WIN, score)

	deeper := evaluator.Evaluate(p, 4, evaluator.Standard)
	assert.Less(t, deeper, score, "a mate found deeper should score strictly lower than the same mate found shallower")
}

// TestGuardAdvancementFavorsTheCorrectDirection guards against the
// inverted-castle regression: red's guard advancing toward RedCastle (its
// own winning square) must raise red's score, not lower it.
func TestGuardAdvancementFavorsTheCorrectDirection(t *testing.T) {
	far, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)

	near, err := position.ParseFen("3BG3/7/7/7/3RG3/7/7 r")
	require.NoError(t, err)

	farScore := evaluator.Evaluate(far, 0, evaluator.Standard)
	nearScore := evaluator.Evaluate(near, 0, evaluator.Standard)

	assert.Greater(t, nearScore, farScore, "red's guard two ranks closer to RedCastle should score higher for red")
}

func TestGuardAdvancementSymmetricForBlue(t *testing.T) {
	far, err := position.ParseFen("3BG3/7/7/7/7/7/3RG3 r")
	require.NoError(t, err)

	near, err := position.ParseFen("7/3BG3/7/7/7/7/3RG3 r")
	require.NoError(t, err)

	farScore := evaluator.Evaluate(far, 0, evaluator.Standard)
	nearScore := evaluator.Evaluate(near, 0, evaluator.Standard)

	assert.Less(t, nearScore, farScore, "blue's guard closer to BlueCastle should score lower for red (better for blue)")
}

func TestGuardInDangerDetectsOrthogonalTowerReach(t *testing.T) {
	p, err := position.ParseFen("7/7/7/3BG3/7/7/RG2r33 r")
	require.NoError(t, err)
	assert.True(t, evaluator.GuardInDanger(p, Blue), "blue's guard on D4 is reachable by red's height-3 tower on D1")
	assert.False(t, evaluator.GuardInDanger(p, Red), "blue has no tower that could threaten red's guard on A1")
}

func TestEvaluateClampsWithinMateThreshold(t *testing.T) {
	p := position.NewStartPosition()
	score := evaluator.Evaluate(p, 0, evaluator.Comprehensive)
	assert.Less(t, int(score), int(MateThreshold))
	assert.Greater(t, int(score), -int(MateThreshold))
}
