/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package position

import (
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
)

// zobristSeed is fixed so the key table — and therefore the TT — is
// meaningful across process restarts within the constraints of spec.md
// §4.1: "same seed across process restarts so TT remains meaningful within
// a session."
const zobristSeed uint64 = 1070372

// maxHeightBucket bounds the height dimension of the tower key table; a
// stack can never exceed the total number of pieces of one color, which is
// well under BoardSize.
const maxHeightBucket = BoardSize + 1

var (
	zTower [2][BoardSize][maxHeightBucket]uint64
	zGuard [2][BoardSize]uint64
	zSide  uint64
)

func init() {
	r := newRandom(zobristSeed)
	for c := 0; c < 2; c++ {
		for sq := 0; sq < BoardSize; sq++ {
			zGuard[c][sq] = r.rand64()
			for h := 0; h < maxHeightBucket; h++ {
				zTower[c][sq][h] = r.rand64()
			}
		}
	}
	zSide = r.rand64()
}

func towerKey(c Color, sq Square, height int) uint64 {
	if height <= 0 {
		return 0
	}
	if height >= maxHeightBucket {
		height = maxHeightBucket - 1
	}
	return zTower[c][sq][height]
}

func guardKey(c Color, sq Square) uint64 {
	if !sq.IsValid() {
		return 0
	}
	return zGuard[c][sq]
}
