/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

// Package transpositiontable implements the fixed-capacity Zobrist-keyed
// cache Search reads and writes at every node (spec.md §4.4): a two-slot
// bucket (depth-preferred + always-replace) holding a packed 16-byte entry.
// Grounded on the teacher's internal/transpositiontable/ttentry.go for the
// bit-packed "vmeta" word (depth/bound/age) and on tt.go/alphabeta.go's
// valueToTT/valueFromTT mate-distance normalization — but the bucket
// replacement policy itself is a genuine redesign: the teacher uses a
// single slot per hash with an age/depth overwrite heuristic, where
// spec.md §4.4 is explicit about a true two-slot scheme.
package transpositiontable

import (
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

const (
	vmetaDepthShift = 0
	vmetaBoundShift = 8
	vmetaAgeShift   = 10

	vmetaDepthMask = 0xFF
	vmetaBoundMask = 0x3
	vmetaAgeMask   = 0x3F
)

// ttEntry is exactly 16 bytes: an 8-byte key, a 4-byte move (sort-value bits
// always cleared — identity only, ordering doesn't read TT entries'
// values), a 2-byte score, and a 2-byte packed depth/bound/age word.
type ttEntry struct {
	key   uint64
	move  Move
	score int16
	vmeta uint16
}

func packVmeta(depth int, bound Bound, age uint8) uint16 {
	return uint16(depth&vmetaDepthMask)<<vmetaDepthShift |
		uint16(bound&vmetaBoundMask)<<vmetaBoundShift |
		uint16(age&vmetaAgeMask)<<vmetaAgeShift
}

func (e *ttEntry) depth() int {
	return int((e.vmeta >> vmetaDepthShift) & vmetaDepthMask)
}

func (e *ttEntry) bound() Bound {
	return Bound((e.vmeta >> vmetaBoundShift) & vmetaBoundMask)
}

func (e *ttEntry) age() uint8 {
	return uint8((e.vmeta >> vmetaAgeShift) & vmetaAgeMask)
}

func (e *ttEntry) isEmpty() bool {
	return e.key == 0 && e.vmeta == 0
}
