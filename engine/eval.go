package engine

import "math"

type runClass int

const (
	runNone runClass = iota
	runHalfOpenTwo
	runOpenTwo
	runHalfOpenThree
	runOpenThree
	runHalfOpenFour
	runOpenFour
	runFive
)

func (w PatternWeights) runWeight(c runClass) int {
	switch c {
	case runFive:
		return w.Win
	case runOpenFour:
		return w.OpenFour
	case runHalfOpenFour:
		return w.HalfOpenFour
	case runOpenThree:
		return w.OpenThree
	case runHalfOpenThree:
		return w.HalfOpenThree
	case runOpenTwo:
		return w.OpenTwo
	case runHalfOpenTwo:
		return w.HalfOpenTwo
	default:
		return 0
	}
}

// classifyRun classifies the run of cell stones starting at (x, y) in
// direction (dx, dy). Runs are anchored: if the predecessor cell holds the
// same stone the run was already counted and runNone is returned.
func classifyRun(b *Board, x, y, dx, dy int, cell Cell) runClass {
	px, py := x-dx, y-dy
	if b.InBounds(px, py) && b.At(px, py) == cell {
		return runNone
	}

	length := 1 + b.countDirection(x, y, dx, dy, cell)
	if length >= 5 {
		return runFive
	}

	openEnds := 0
	if b.InBounds(px, py) && b.At(px, py) == CellEmpty {
		openEnds++
	}
	ex, ey := x+length*dx, y+length*dy
	if b.InBounds(ex, ey) && b.At(ex, ey) == CellEmpty {
		openEnds++
	}
	if openEnds == 0 {
		return runNone
	}

	switch length {
	case 4:
		if openEnds == 2 {
			return runOpenFour
		}
		return runHalfOpenFour
	case 3:
		if openEnds == 2 {
			return runOpenThree
		}
		return runHalfOpenThree
	case 2:
		if openEnds == 2 {
			return runOpenTwo
		}
		return runHalfOpenTwo
	default:
		return runNone
	}
}

// patternTotal sums the run weights for one side.
func patternTotal(b *Board, cell Cell, w PatternWeights) int {
	total := 0
	size := b.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) != cell {
				continue
			}
			for _, d := range winDirections {
				total += w.runWeight(classifyRun(b, x, y, d[0], d[1], cell))
			}
		}
	}
	return total
}

// centerTotal sums the per-stone centrality bonus for one side.
func centerTotal(b *Board, cell Cell, bonusMax int) int {
	total := 0
	size := b.Size()
	center := Move{X: size / 2, Y: size / 2}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) != cell {
				continue
			}
			if bonus := bonusMax - manhattanDist(Move{X: x, Y: y}, center); bonus > 0 {
				total += bonus
			}
		}
	}
	return total
}

// Evaluate scores the position from me's perspective. A completed five
// short-circuits to the full win weight; otherwise the score is the pattern
// (plus early-game centrality) difference, with the opponent total scaled by
// the defense multiplier.
func Evaluate(b *Board, me PlayerColor, cfg Config) int {
	if winner, ok := b.Winner(); ok {
		if winner == me {
			return cfg.Weights.Win
		}
		return -cfg.Weights.Win
	}

	myCell := CellFromPlayer(me)
	oppCell := CellFromPlayer(otherPlayer(me))

	own := patternTotal(b, myCell, cfg.Weights)
	opp := patternTotal(b, oppCell, cfg.Weights)

	if b.CountStones() < cfg.CenterBonusStones {
		own += centerTotal(b, myCell, cfg.CenterBonusMax)
		opp += centerTotal(b, oppCell, cfg.CenterBonusMax)
	}

	return own - int(math.Round(cfg.DefenseMultiplier*float64(opp)))
}
