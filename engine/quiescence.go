package engine

// quiet reports whether the position has no immediate winning move for
// either side in the neighborhood of the last move. Quiet leaves are scored
// statically; loud ones get a quiescence extension.
func (s *searchSession) quiet(last Move) bool {
	local := last
	candidates := CandidateMoves(&s.board, &local, s.cfg.QuiescenceRadius)
	for _, m := range candidates {
		if s.winningMove(m, PlayerBlack) || s.winningMove(m, PlayerWhite) {
			return false
		}
	}
	return true
}

// makesFour reports whether placing a stone for p at m produces a line of
// four or more through m.
func (s *searchSession) makesFour(m Move, p PlayerColor) bool {
	cell := CellFromPlayer(p)
	if s.board.Place(m.X, m.Y, p) != nil {
		return false
	}
	four := false
	for _, d := range winDirections {
		run := 1 +
			s.board.countDirection(m.X, m.Y, d[0], d[1], cell) +
			s.board.countDirection(m.X, m.Y, -d[0], -d[1], cell)
		if run >= 4 {
			four = true
			break
		}
	}
	s.board.Remove(m.X, m.Y)
	return four
}

// loudMoves keeps only the threat-relevant replies near the last move:
// immediate wins, blocks of the opponent's win, and four-makers.
func (s *searchSession) loudMoves(toMove PlayerColor, last Move) []Move {
	local := last
	candidates := CandidateMoves(&s.board, &local, s.cfg.QuiescenceRadius)
	opp := otherPlayer(toMove)

	var loud []Move
	for _, m := range candidates {
		if s.winningMove(m, toMove) || s.winningMove(m, opp) || s.makesFour(m, toMove) {
			loud = append(loud, m)
		}
	}
	return loud
}

// quiesce extends the search through forcing sequences only. The stand-pat
// score raises alpha for the maximizer (lowers beta for the minimizer), so a
// side is never forced below what refusing the tactical line is worth.
func (s *searchSession) quiesce(qdepth, ply, alpha, beta int, toMove PlayerColor, last Move) int {
	s.stats.QNodes++

	standPat := s.evaluate()
	maximizing := toMove == s.me
	if maximizing {
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat < beta {
			beta = standPat
		}
	}
	if alpha >= beta || qdepth <= 0 || s.timedOut() {
		return standPat
	}

	moves := s.loudMoves(toMove, last)
	if len(moves) == 0 {
		return standPat
	}

	best := standPat
	for _, m := range moves {
		undo := s.place(m, toMove)
		var value int
		if winner, ok := s.board.WinnerAt(m); ok {
			value = s.winScore(winner, ply+1)
		} else {
			value = s.quiesce(qdepth-1, ply+1, alpha, beta, otherPlayer(toMove), m)
		}
		undo()

		if maximizing {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
