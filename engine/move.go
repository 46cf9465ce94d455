package engine

// Move is a board coordinate: X is the column, Y the row.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) IsValid(size int) bool {
	return m.X >= 0 && m.X < size && m.Y >= 0 && m.Y < size
}

func (m Move) Equals(o Move) bool {
	return m.X == o.X && m.Y == o.Y
}

func chebDist(a, b Move) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func manhattanDist(a, b Move) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
