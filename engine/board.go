package engine

import "errors"

// Cell is the content of a single intersection.
type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// PlayerColor identifies a side.
type PlayerColor int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

func (p PlayerColor) String() string {
	if p == PlayerWhite {
		return "white"
	}
	return "black"
}

func otherPlayer(p PlayerColor) PlayerColor {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// CellFromPlayer maps a side to the stone it places.
func CellFromPlayer(p PlayerColor) Cell {
	if p == PlayerWhite {
		return CellWhite
	}
	return CellBlack
}

// PlayerFromCell is the inverse of CellFromPlayer; ok is false for empty cells.
func PlayerFromCell(c Cell) (PlayerColor, bool) {
	switch c {
	case CellBlack:
		return PlayerBlack, true
	case CellWhite:
		return PlayerWhite, true
	default:
		return PlayerBlack, false
	}
}

var (
	ErrOutOfBounds  = errors.New("move out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrInvalidBoard = errors.New("invalid board")
)

// Board is a square Gomoku board. Cells are stored row-major: index y*size+x,
// where X is the column and Y the row.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) Board {
	return Board{size: size, cells: make([]Cell, size*size)}
}

// FromGrid validates and converts a row-major grid. The grid must be square,
// at least 5x5, and contain only known cell values.
func FromGrid(grid [][]Cell) (Board, error) {
	size := len(grid)
	if size < 5 {
		return Board{}, ErrInvalidBoard
	}
	b := NewBoard(size)
	for y, row := range grid {
		if len(row) != size {
			return Board{}, ErrInvalidBoard
		}
		for x, c := range row {
			if c != CellEmpty && c != CellBlack && c != CellWhite {
				return Board{}, ErrInvalidBoard
			}
			b.cells[y*size+x] = c
		}
	}
	return b, nil
}

func (b *Board) Size() int { return b.size }

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return CellEmpty
	}
	return b.cells[y*b.size+x]
}

func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.cells[y*b.size+x] == CellEmpty
}

// Place puts a stone for p at (x, y).
func (b *Board) Place(x, y int, p PlayerColor) error {
	if !b.InBounds(x, y) {
		return ErrOutOfBounds
	}
	if b.cells[y*b.size+x] != CellEmpty {
		return ErrCellOccupied
	}
	b.cells[y*b.size+x] = CellFromPlayer(p)
	return nil
}

// Remove clears (x, y) unconditionally; out-of-bounds is a no-op.
func (b *Board) Remove(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.size+x] = CellEmpty
}

func (b *Board) CountEmpty() int {
	count := 0
	for _, c := range b.cells {
		if c == CellEmpty {
			count++
		}
	}
	return count
}

func (b *Board) CountStones() int {
	return b.size*b.size - b.CountEmpty()
}

func (b *Board) IsFull() bool { return b.CountEmpty() == 0 }

func (b *Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// Grid exports the board as a row-major grid.
func (b *Board) Grid() [][]Cell {
	grid := make([][]Cell, b.size)
	for y := 0; y < b.size; y++ {
		row := make([]Cell, b.size)
		copy(row, b.cells[y*b.size:(y+1)*b.size])
		grid[y] = row
	}
	return grid
}

var winDirections = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// countDirection counts contiguous same-colored stones from (x, y) exclusive,
// stepping by (dx, dy).
func (b *Board) countDirection(x, y, dx, dy int, cell Cell) int {
	count := 0
	cx, cy := x+dx, y+dy
	for b.InBounds(cx, cy) && b.cells[cy*b.size+cx] == cell {
		count++
		cx += dx
		cy += dy
	}
	return count
}

// WinnerAt reports whether the stone at last completes a five-or-more line.
func (b *Board) WinnerAt(last Move) (PlayerColor, bool) {
	cell := b.At(last.X, last.Y)
	player, ok := PlayerFromCell(cell)
	if !ok {
		return PlayerBlack, false
	}
	for _, d := range winDirections {
		run := 1 +
			b.countDirection(last.X, last.Y, d[0], d[1], cell) +
			b.countDirection(last.X, last.Y, -d[0], -d[1], cell)
		if run >= 5 {
			return player, true
		}
	}
	return PlayerBlack, false
}

// Winner scans the whole board for a completed five. Slower than WinnerAt;
// used when no last move is known.
func (b *Board) Winner() (PlayerColor, bool) {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			cell := b.cells[y*b.size+x]
			if cell == CellEmpty {
				continue
			}
			for _, d := range winDirections {
				// Count only from the first stone of each run.
				px, py := x-d[0], y-d[1]
				if b.InBounds(px, py) && b.cells[py*b.size+px] == cell {
					continue
				}
				if 1+b.countDirection(x, y, d[0], d[1], cell) >= 5 {
					player, _ := PlayerFromCell(cell)
					return player, true
				}
			}
		}
	}
	return PlayerBlack, false
}

// IsDraw reports a full board with no winner.
func (b *Board) IsDraw() bool {
	if !b.IsFull() {
		return false
	}
	_, won := b.Winner()
	return !won
}
