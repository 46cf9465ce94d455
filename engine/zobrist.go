package engine

import "sync"

// ZobristTable holds the random keys for one board size. Tables are built
// lazily and cached per size so every search on the same geometry shares
// identical keys.
type ZobristTable struct {
	size  int
	cells []uint64 // two keys per cell: black, white
	side  uint64
}

var (
	zobristMu     sync.Mutex
	zobristTables = map[int]*ZobristTable{}
)

// GetZobrist returns the shared table for the given board size.
func GetZobrist(size int) *ZobristTable {
	zobristMu.Lock()
	defer zobristMu.Unlock()
	if t, ok := zobristTables[size]; ok {
		return t
	}
	rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ uint64(size)}
	t := &ZobristTable{
		size:  size,
		cells: make([]uint64, size*size*2),
	}
	for i := range t.cells {
		t.cells[i] = rng.next()
	}
	t.side = rng.next()
	zobristTables[size] = t
	return t
}

// stone returns the key for a stone of player at (x, y).
func (t *ZobristTable) stone(x, y int, player PlayerColor) uint64 {
	idx := (y*t.size + x) * 2
	if player == PlayerWhite {
		idx++
	}
	return t.cells[idx]
}

// HashBoard computes the full hash of a position with toMove to play.
func (t *ZobristTable) HashBoard(b *Board, toMove PlayerColor) uint64 {
	var h uint64
	for y := 0; y < t.size; y++ {
		for x := 0; x < t.size; x++ {
			if p, ok := PlayerFromCell(b.At(x, y)); ok {
				h ^= t.stone(x, y, p)
			}
		}
	}
	if toMove == PlayerWhite {
		h ^= t.side
	}
	return h
}

// UpdateHash applies a stone placement (or removal, XOR is self-inverse) and
// flips the side to move.
func (t *ZobristTable) UpdateHash(h uint64, m Move, player PlayerColor) uint64 {
	return h ^ t.stone(m.X, m.Y, player) ^ t.side
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
