/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package transpositiontable

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

// bucket holds the two slots spec.md §4.4 calls for: slot 0 is
// depth-preferred (replaced by an entry at least as deep, or by any new
// entry for the same key), slot 1 always overwrites.
type bucket struct {
	slots [2]ttEntry
}

// Table is the single-owner transposition table: not shared across
// goroutines in this design (spec.md §5), survives across moves within one
// game, resized only explicitly.
type Table struct {
	buckets []bucket
	mask    uint64
	age     uint8

	hits, misses, stores uint64
}

// NewTable creates a table sized to the nearest power of two number of
// buckets that fits within sizeMB megabytes.
func NewTable(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table, discarding all entries.
func (t *Table) Resize(sizeMB int) {
	bucketSize := 32 // two 16-byte entries
	numBuckets := (sizeMB * 1024 * 1024) / bucketSize
	numBuckets = nextPowerOfTwo(numBuckets)
	if numBuckets < 1 {
		numBuckets = 1
	}
	t.buckets = make([]bucket, numBuckets)
	t.mask = uint64(numBuckets - 1)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Clear empties every entry without changing the allocated size.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = bucket{}
	}
	t.hits, t.misses, t.stores = 0, 0, 0
}

// NewSearch bumps the age counter so Store can eventually distinguish
// entries written in earlier searches, without needing to clear the table.
func (t *Table) NewSearch() {
	t.age++
}

func (t *Table) index(key uint64) uint64 {
	return key & t.mask
}

// ProbeResult is what Probe hands back to Search.
type ProbeResult struct {
	// Hit is true only when the stored entry satisfies the depth and bound
	// conditions of spec.md §4.4 — Search may use Score directly.
	Hit   bool
	Score Value

	// HasMove is true whenever any entry for this key was found, Hit or
	// not; Move is then usable as an ordering hint even on a partial hit.
	HasMove bool
	Move    Move

	// Bound is the stored entry's bound type whenever HasMove is true,
	// letting a caller apply its own stricter policy on top of Hit (e.g.
	// a PV node only trusting an Exact entry) without probing twice.
	Bound Bound
}

// Probe looks up key at the given depth/window. Mate-distance-normalized
// scores are converted back to the caller's ply before being returned.
func (t *Table) Probe(key uint64, depth int, alpha, beta Value, ply int) ProbeResult {
	b := &t.buckets[t.index(key)]
	for i := range b.slots {
		e := &b.slots[i]
		if e.isEmpty() || e.key != key {
			continue
		}
		result := ProbeResult{HasMove: true, Move: e.move, Bound: e.bound()}
		if e.depth() < depth {
			t.misses++
			return result
		}
		score := valueFromTT(Value(e.score), ply)
		switch e.bound() {
		case BoundExact:
			result.Hit = true
			result.Score = score
		case BoundLower:
			if score >= beta {
				result.Hit = true
				result.Score = score
			}
		case BoundUpper:
			if score <= alpha {
				result.Hit = true
				result.Score = score
			}
		}
		if result.Hit {
			t.hits++
		} else {
			t.misses++
		}
		return result
	}
	t.misses++
	return ProbeResult{}
}

// Store writes an entry, choosing the depth-preferred slot when its depth
// is not being improved upon, else falling back to the always-replace slot
// (spec.md §4.4). A matching key in slot 0 is updated in place; an entry
// promoted to slot 0 leaves any older copy of its key in slot 1, which
// Probe never reaches because it checks slot 0 first.
func (t *Table) Store(key uint64, depth int, bound Bound, score Value, move Move, ply int) {
	t.stores++
	b := &t.buckets[t.index(key)]
	stored := valueToTT(score, ply)
	entry := ttEntry{
		key:   key,
		move:  move.SetValue(0),
		score: int16(stored),
		vmeta: packVmeta(depth, bound, t.age),
	}

	if b.slots[0].isEmpty() || b.slots[0].key == key || depth >= b.slots[0].depth() {
		b.slots[0] = entry
		return
	}
	if b.slots[1].key == key || b.slots[1].isEmpty() || depth >= b.slots[1].depth() {
		b.slots[1] = entry
		return
	}
	b.slots[1] = entry
}

// valueToTT normalizes a mate score relative to the root before storing, so
// a mate found at one ply compares correctly when read back at another
// (spec.md §4.4).
func valueToTT(v Value, ply int) Value {
	switch {
	case v > MateThreshold:
		return v + Value(ply)
	case v < -MateThreshold:
		return v - Value(ply)
	default:
		return v
	}
}

// valueFromTT reverses valueToTT's normalization using the probing call's
// own ply.
func valueFromTT(v Value, ply int) Value {
	switch {
	case v > MateThreshold:
		return v - Value(ply)
	case v < -MateThreshold:
		return v + Value(ply)
	default:
		return v
	}
}

// Hashfull reports an approximate permille fill level by sampling the first
// 1000 buckets, the conventional UCI-style "hashfull" statistic.
func (t *Table) Hashfull() int {
	sample := 1000
	if sample > len(t.buckets) {
		sample = len(t.buckets)
	}
	if sample == 0 {
		return 0
	}
	filled := 0
	for i := 0; i < sample; i++ {
		if !t.buckets[i].slots[0].isEmpty() {
			filled++
		}
	}
	return (filled * 1000) / sample
}

// String reports table size and hit/miss statistics with the teacher's
// German-locale thousands-separated number formatting.
func (t *Table) String() string {
	p := message.NewPrinter(language.German)
	return p.Sprintf("TT: %d buckets, hits=%d misses=%d stores=%d hashfull=%d",
		len(t.buckets), t.hits, t.misses, t.stores, t.Hashfull())
}
