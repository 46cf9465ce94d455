package engine

import "sort"

type rankedMove struct {
	move  Move
	score int
}

// winningMove reports whether placing a stone for p at m completes a five.
// The stone is removed again before returning.
func (s *searchSession) winningMove(m Move, p PlayerColor) bool {
	if s.board.Place(m.X, m.Y, p) != nil {
		return false
	}
	_, won := s.board.WinnerAt(m)
	s.board.Remove(m.X, m.Y)
	return won
}

// orderedMoves generates candidates and ranks them: immediate wins first,
// then blocks of the opponent's win, killers, history weight, adjacency to
// the last move, and centrality as the base. The sort is stable so equal
// scores keep their row-major generation order. A pv move, when given, is
// hoisted to the front after ranking.
func (s *searchSession) orderedMoves(player PlayerColor, ply int, last *Move, limit int, pv *Move) []Move {
	candidates := CandidateMoves(&s.board, last, s.profile.Radius)
	if len(candidates) == 0 {
		return nil
	}

	opp := otherPlayer(player)
	size := s.board.Size()
	center := Move{X: size / 2, Y: size / 2}

	ranked := make([]rankedMove, 0, len(candidates))
	for _, m := range candidates {
		score := -manhattanDist(m, center)
		if s.winningMove(m, player) {
			score += orderWinBonus
		} else if s.winningMove(m, opp) {
			score += orderBlockBonus
		}
		if s.killers.isKiller(ply, m) {
			score += s.cfg.KillerBoost
		}
		score += s.history.get(player, m) * s.cfg.HistoryBoost
		if last != nil && chebDist(m, *last) <= 1 {
			score += s.cfg.LastMoveBonus
		}
		ranked = append(ranked, rankedMove{move: m, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	moves := make([]Move, len(ranked))
	for i, r := range ranked {
		moves[i] = r.move
	}
	if pv != nil {
		for i, m := range moves {
			if m.Equals(*pv) {
				copy(moves[1:i+1], moves[:i])
				moves[0] = *pv
				break
			}
		}
	}
	return moves
}
