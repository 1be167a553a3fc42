/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

func TestValueToFromTTRoundtripsNonMateScores(t *testing.T) {
	for _, v := range []Value{0, 1, -1, 120, -360, MateThreshold} {
		stored := valueToTT(v, 5)
		assert.Equal(t, v, stored, "non-mate score must not be ply-adjusted")
		assert.Equal(t, v, valueFromTT(stored, 5))
	}
}

// TestValueToFromTTRoundtripsMateScores guards spec.md §4.4's mate-distance
// normalization: a mate score is stored relative to the storing node and
// re-expressed relative to the probing ply when read back.
func TestValueToFromTTRoundtripsMateScores(t *testing.T) {
	mateAtPly3 := WIN - 3
	stored := valueToTT(mateAtPly3, 3)
	assert.Equal(t, WIN, stored, "storing re-expresses the score relative to the storing node")

	// Read back at ply 3, the same ply it was found at: must recover the
	// original ply-relative score.
	assert.Equal(t, mateAtPly3, valueFromTT(stored, 3))

	// Read back at ply 5 (deeper): the same mate is now 5 plies from the
	// root, so it reads back as WIN-5, lower than the original WIN-3.
	fromDeeper := valueFromTT(stored, 5)
	assert.Less(t, fromDeeper, mateAtPly3)

	lossAtPly4 := -WIN + 4
	storedLoss := valueToTT(lossAtPly4, 4)
	assert.Equal(t, lossAtPly4-4, storedLoss)
	assert.Equal(t, lossAtPly4, valueFromTT(storedLoss, 4))
}

func TestStoreThenProbeExactHit(t *testing.T) {
	tb := NewTable(1)
	key := uint64(0xABCD1234)
	mv := NewMove(Square(0), Square(1), 1)

	tb.Store(key, 4, BoundExact, 150, mv, 2)

	result := tb.Probe(key, 4, -ValueInf, ValueInf, 2)
	assert.True(t, result.Hit)
	assert.Equal(t, Value(150), result.Score)
	assert.True(t, result.HasMove)
	assert.Equal(t, mv.From(), result.Move.From())
	assert.Equal(t, mv.To(), result.Move.To())
	assert.Equal(t, BoundExact, result.Bound)
}

// TestProbeMissesOnShallowerStoredDepth checks spec.md §4.4 property 5: an
// entry stored at a shallower depth than requested must not be trusted for
// its score, even though its move is still usable as an ordering hint.
func TestProbeMissesOnShallowerStoredDepth(t *testing.T) {
	tb := NewTable(1)
	key := uint64(0x1111)
	mv := NewMove(Square(2), Square(3), 1)
	tb.Store(key, 2, BoundExact, 50, mv, 0)

	result := tb.Probe(key, 6, -ValueInf, ValueInf, 0)
	assert.False(t, result.Hit)
	assert.True(t, result.HasMove, "a shallower entry's move is still a usable ordering hint")
}

func TestProbeMissesOnKeyMismatch(t *testing.T) {
	tb := NewTable(1)
	tb.Store(uint64(0x1111), 4, BoundExact, 50, NewMove(Square(0), Square(1), 1), 0)

	result := tb.Probe(uint64(0x2222), 4, -ValueInf, ValueInf, 0)
	assert.False(t, result.Hit)
	assert.False(t, result.HasMove)
}

// TestProbeRespectsBoundWindow exercises the lower/upper bound branches: a
// fail-high (lower bound) entry only counts as a hit when its score still
// beats the probing window's beta, and symmetrically for fail-low/upper.
func TestProbeRespectsBoundWindow(t *testing.T) {
	tb := NewTable(1)
	lowerKey := uint64(0x10)
	tb.Store(lowerKey, 4, BoundLower, 100, MoveNone, 0)

	hit := tb.Probe(lowerKey, 4, -ValueInf, 50, 0)
	assert.True(t, hit.Hit, "stored lower bound 100 beats beta 50")

	miss := tb.Probe(lowerKey, 4, -ValueInf, 500, 0)
	assert.False(t, miss.Hit, "stored lower bound 100 does not beat beta 500")

	upperKey := uint64(0x20)
	tb.Store(upperKey, 4, BoundUpper, -100, MoveNone, 0)

	hit = tb.Probe(upperKey, 4, -50, ValueInf, 0)
	assert.True(t, hit.Hit, "stored upper bound -100 is below alpha -50")

	miss = tb.Probe(upperKey, 4, -500, ValueInf, 0)
	assert.False(t, miss.Hit, "stored upper bound -100 is not below alpha -500")
}

// TestStorePrefersDepthInSlotZero checks the depth-preferred slot: a
// shallower entry for a different key must not evict a deeper one out of
// slot 0, but still lands in the always-replace slot 1.
func TestStorePrefersDepthInSlotZero(t *testing.T) {
	tb := NewTable(1)
	// Force both entries into the same bucket by using the same low bits.
	deepKey := uint64(1)
	shallowKey := deepKey | (uint64(1) << 40)

	tb.Store(deepKey, 10, BoundExact, 10, NewMove(Square(0), Square(1), 1), 0)
	tb.Store(shallowKey, 2, BoundExact, 20, NewMove(Square(1), Square(2), 1), 0)

	b := &tb.buckets[tb.index(deepKey)]
	assert.Equal(t, deepKey, b.slots[0].key, "deeper entry must survive in the depth-preferred slot")
	assert.Equal(t, shallowKey, b.slots[1].key, "shallower entry falls to the always-replace slot")
}

func TestStoreUpdatesMatchingKeyInPlace(t *testing.T) {
	tb := NewTable(1)
	key := uint64(42)
	tb.Store(key, 4, BoundExact, 10, NewMove(Square(0), Square(1), 1), 0)
	tb.Store(key, 6, BoundExact, 20, NewMove(Square(2), Square(3), 1), 0)

	result := tb.Probe(key, 6, -ValueInf, ValueInf, 0)
	assert.True(t, result.Hit)
	assert.Equal(t, Value(20), result.Score)
}

func TestClearEmptiesTableAndResetsCounters(t *testing.T) {
	tb := NewTable(1)
	tb.Store(uint64(7), 4, BoundExact, 10, MoveNone, 0)
	tb.Probe(uint64(7), 4, -ValueInf, ValueInf, 0)

	tb.Clear()

	result := tb.Probe(uint64(7), 4, -ValueInf, ValueInf, 0)
	assert.False(t, result.Hit)
	assert.False(t, result.HasMove)
	assert.Equal(t, 0, tb.Hashfull())
}

func TestHashfullReflectsFilledBuckets(t *testing.T) {
	tb := NewTable(1)
	assert.Equal(t, 0, tb.Hashfull())

	for i := uint64(0); i < 10; i++ {
		tb.Store(i, 4, BoundExact, Value(i), MoveNone, 0)
	}
	assert.Greater(t, tb.Hashfull(), 0)
}
