/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ElBuenoo/GaT-KI-sub001/internal/enginerr"
	. "github.com/ElBuenoo/GaT-KI-sub001/internal/types"
	"github.com/ElBuenoo/GaT-KI-sub001/internal/util"
)

// ParseFen builds a Position from the domain's FEN dialect (spec.md §6):
// seven '/'-separated rank fields, rank 7 (blue's back) first down to rank
// 1 (red's back), each rank a run of digit-empties and r<n>/b<n>/RG/BG
// tokens summing to 7, followed by a space and the side-to-move letter.
func ParseFen(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 2 {
		return nil, &enginerr.InvalidFenError{Fen: fen, Reason: "expected \"<board> <side>\""}
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != Ranks {
		return nil, &enginerr.InvalidFenError{Fen: fen, Reason: fmt.Sprintf("expected %d ranks, got %d", Ranks, len(ranks))}
	}

	p := &Position{}

	for i, rankStr := range ranks {
		rank := Ranks - 1 - i // first field is rank 7 (index 6), last is rank 1 (index 0)
		file := 0
		runes := []byte(rankStr)
		for j := 0; j < len(runes); j++ {
			ch := runes[j]
			switch {
			case util.IsDigit(ch) && ch != '0':
				// empty-square run; digit runs longer than 1 char never
				// occur here since a rank holds at most 7 squares.
				n := int(ch - '0')
				file += n
			case ch == 'R' && j+1 < len(runes) && runes[j+1] == 'G':
				if err := placeGuard(p, Red, rank, file, fen); err != nil {
					return nil, err
				}
				file++
				j++
			case ch == 'B' && j+1 < len(runes) && runes[j+1] == 'G':
				if err := placeGuard(p, Blue, rank, file, fen); err != nil {
					return nil, err
				}
				file++
				j++
			case ch == 'r' || ch == 'b':
				color := Red
				if ch == 'b' {
					color = Blue
				}
				// The height is exactly one digit; any digits after it are
				// the next empty-square run.
				if j+1 >= len(runes) || !util.IsDigit(runes[j+1]) {
					return nil, &enginerr.InvalidFenError{Fen: fen, Reason: "tower token missing height digit"}
				}
				height := int(runes[j+1] - '0')
				if height < 1 {
					return nil, &enginerr.InvalidFenError{Fen: fen, Reason: "tower height must be >= 1"}
				}
				if err := placeTower(p, color, rank, file, height, fen); err != nil {
					return nil, err
				}
				file++
				j++
			default:
				return nil, &enginerr.InvalidFenError{Fen: fen, Reason: fmt.Sprintf("unexpected character %q", ch)}
			}
		}
		if file != Files {
			return nil, &enginerr.InvalidFenError{Fen: fen, Reason: fmt.Sprintf("rank %d sums to %d squares, want %d", rank+1, file, Files)}
		}
	}

	switch fields[1] {
	case "r":
		p.SideToMove = Red
	case "b":
		p.SideToMove = Blue
	default:
		return nil, &enginerr.InvalidFenError{Fen: fen, Reason: "side-to-move must be \"r\" or \"b\""}
	}

	p.Zobrist = p.RecomputeHash()
	return p, nil
}

func placeGuard(p *Position, c Color, rank, file int, fen string) error {
	sq := NewSquare(rank, file)
	if !sq.IsValid() {
		return &enginerr.InvalidFenError{Fen: fen, Reason: "rank overflow while placing guard"}
	}
	if c == Red {
		p.RedGuard |= sq.Bb()
	} else {
		p.BlueGuard |= sq.Bb()
	}
	return nil
}

func placeTower(p *Position, c Color, rank, file, height int, fen string) error {
	sq := NewSquare(rank, file)
	if !sq.IsValid() {
		return &enginerr.InvalidFenError{Fen: fen, Reason: "rank overflow while placing tower"}
	}
	if c == Red {
		p.RedTowers |= sq.Bb()
		p.RedHeight[sq] = int8(height)
	} else {
		p.BlueTowers |= sq.Bb()
		p.BlueHeight[sq] = int8(height)
	}
	return nil
}

// ToFen serializes the position back into the domain's FEN dialect. Round
// trips with ParseFen for any legal position (spec.md §8 property 2).
func (p *Position) ToFen() string {
	var s strings.Builder
	for rank := Ranks - 1; rank >= 0; rank-- {
		empties := 0
		for file := 0; file < Files; file++ {
			sq := NewSquare(rank, file)
			token := ""
			switch {
			case p.RedGuard.Has(sq):
				token = "RG"
			case p.BlueGuard.Has(sq):
				token = "BG"
			case p.RedTowers.Has(sq):
				token = fmt.Sprintf("r%d", p.RedHeight[sq])
			case p.BlueTowers.Has(sq):
				token = fmt.Sprintf("b%d", p.BlueHeight[sq])
			}
			if token == "" {
				empties++
				continue
			}
			if empties > 0 {
				s.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			s.WriteString(token)
		}
		if empties > 0 {
			s.WriteString(strconv.Itoa(empties))
		}
		if rank > 0 {
			s.WriteByte('/')
		}
	}
	s.WriteByte(' ')
	s.WriteString(p.SideToMove.String())
	return s.String()
}

// String renders the position as its FEN.
func (p *Position) String() string {
	return p.ToFen()
}
