package engine

// Local neighborhoods around the last move are widened to all stone
// neighborhoods when they yield fewer candidates than this.
const minLocalCandidates = 8

// CandidateMoves generates the empty cells worth searching: every empty cell
// within the Chebyshev radius of a stone, in row-major order. An empty board
// yields exactly the center. When last points at a stone, generation first
// restricts to that stone's neighborhood and widens only if the local set is
// too small.
func CandidateMoves(b *Board, last *Move, radius int) []Move {
	size := b.Size()
	if b.CountStones() == 0 {
		return []Move{{X: size / 2, Y: size / 2}}
	}
	if radius < 1 {
		radius = 1
	}

	if last != nil && last.IsValid(size) && b.At(last.X, last.Y) != CellEmpty {
		local := neighborhoodMoves(b, []Move{*last}, radius)
		if len(local) >= minLocalCandidates {
			return local
		}
	}

	var stones []Move
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) != CellEmpty {
				stones = append(stones, Move{X: x, Y: y})
			}
		}
	}
	moves := neighborhoodMoves(b, stones, radius)
	if len(moves) > 0 {
		return moves
	}

	// Degenerate: stones exist but their neighborhoods are all occupied.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) == CellEmpty {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// neighborhoodMoves collects the empty cells within radius of any anchor,
// row-major.
func neighborhoodMoves(b *Board, anchors []Move, radius int) []Move {
	size := b.Size()
	mask := make([]bool, size*size)
	for _, a := range anchors {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := a.X+dx, a.Y+dy
				if b.IsEmpty(x, y) {
					mask[y*size+x] = true
				}
			}
		}
	}
	var moves []Move
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if mask[y*size+x] {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}
