package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// IterationUpdate describes one completed deepening iteration. Hooks receive
// it synchronously from inside the search.
type IterationUpdate struct {
	Depth   int           `json:"depth"`
	Score   int           `json:"score"`
	Move    Move          `json:"move"`
	Nodes   int64         `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
}

// searchSession owns every piece of mutable state for one top-level search:
// the board clone, the tables, the RNG-free deterministic core, and the
// deadline. Sessions are single-goroutine; concurrent searches need separate
// sessions (and separate transposition tables).
type searchSession struct {
	board   Board
	me      PlayerColor
	profile Profile
	cfg     Config

	zob     *ZobristTable
	tt      *TranspositionTable
	killers *killerTable
	history *historyTable
	stats   *SearchStats

	ctx         context.Context
	start       time.Time
	deadline    time.Time
	hasDeadline bool

	logger      zerolog.Logger
	onIteration func(IterationUpdate)
}

func newSearchSession(ctx context.Context, board Board, me PlayerColor, profile Profile, cfg Config, tt *TranspositionTable, logger zerolog.Logger) *searchSession {
	s := &searchSession{
		board:   board.Clone(),
		me:      me,
		profile: profile,
		cfg:     cfg,
		zob:     GetZobrist(board.Size()),
		tt:      tt,
		killers: newKillerTable(profile.MaxDepth + cfg.QuiescenceDepth + 2),
		history: newHistoryTable(board.Size()),
		stats:   &SearchStats{},
		ctx:     ctx,
		start:   time.Now(),
		logger:  logger,
	}
	if profile.TimeBudget > 0 {
		s.deadline = s.start.Add(profile.TimeBudget)
		s.hasDeadline = true
	}
	if ctxDeadline, ok := ctx.Deadline(); ok {
		if !s.hasDeadline || ctxDeadline.Before(s.deadline) {
			s.deadline = ctxDeadline
			s.hasDeadline = true
		}
	}
	return s
}

// timedOut is the soft budget check performed at node entry.
func (s *searchSession) timedOut() bool {
	if s.ctx.Err() != nil {
		return true
	}
	return s.hasDeadline && !time.Now().Before(s.deadline)
}

// place puts a stone and returns its undo. Callers only pass generated
// moves, which target empty in-bounds cells.
func (s *searchSession) place(m Move, p PlayerColor) func() {
	s.board.cells[m.Y*s.board.size+m.X] = CellFromPlayer(p)
	return func() {
		s.board.cells[m.Y*s.board.size+m.X] = CellEmpty
	}
}

func (s *searchSession) evaluate() int {
	return Evaluate(&s.board, s.me, s.cfg)
}

// winScore is ply-relative to the current root. Cached entries reused under a
// later root carry the old root's mate distance, so persisted scores can be
// off by the shift between the two roots; bounds and move choice are
// unaffected.
func (s *searchSession) winScore(winner PlayerColor, ply int) int {
	if winner == s.me {
		return s.cfg.Weights.Win - ply
	}
	return -(s.cfg.Weights.Win - ply)
}

// alphabeta is a fixed-depth minimax with the engine's mover always the
// maximizer. last is the move that produced this position.
func (s *searchSession) alphabeta(depth, ply, alpha, beta int, toMove PlayerColor, key uint64, last Move) int {
	if s.timedOut() {
		return s.evaluate()
	}
	s.stats.Nodes++

	if winner, ok := s.board.WinnerAt(last); ok {
		return s.winScore(winner, ply)
	}
	if s.board.IsFull() {
		return 0
	}

	alphaOrig, betaOrig := alpha, beta
	var pv *Move

	s.stats.TTProbes++
	if entry, ok := s.tt.Probe(key); ok {
		s.stats.TTHits++
		if entry.HasMove {
			pv = &entry.BestMove
		}
		if entry.Depth >= depth {
			switch entry.Flag {
			case TTExact:
				return entry.Score
			case TTLower:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case TTUpper:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	if depth <= 0 {
		if s.cfg.QuiescenceDepth > 0 && !s.quiet(last) {
			return s.quiesce(s.cfg.QuiescenceDepth, ply, alpha, beta, toMove, last)
		}
		return s.evaluate()
	}

	moves := s.orderedMoves(toMove, ply, &last, s.profile.MaxCandidates, pv)
	if len(moves) == 0 {
		return s.evaluate()
	}

	maximizing := toMove == s.me
	best := -scoreInf
	if !maximizing {
		best = scoreInf
	}
	var bestMove Move
	hasBest := false

	for _, m := range moves {
		if s.timedOut() {
			break
		}
		undo := s.place(m, toMove)
		childKey := s.zob.UpdateHash(key, m, toMove)
		value := s.alphabeta(depth-1, ply+1, alpha, beta, otherPlayer(toMove), childKey, m)
		undo()

		if maximizing {
			if value > best {
				best, bestMove, hasBest = value, m, true
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best, bestMove, hasBest = value, m, true
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			s.killers.record(ply, m)
			s.history.add(toMove, m, depth*depth)
			break
		}
	}

	if !hasBest {
		return s.evaluate()
	}

	if depth >= s.cfg.TTMinStoreDepth {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= betaOrig {
			flag = TTLower
		}
		s.tt.Store(key, depth, best, flag, bestMove, true)
		s.stats.TTStores++
	}
	return best
}

// searchRoot runs one fixed-depth search from the root and returns the best
// move with its score.
func (s *searchSession) searchRoot(depth, alpha, beta int, last *Move) (int, Move, bool) {
	key := s.zob.HashBoard(&s.board, s.me)
	var pv *Move
	if entry, ok := s.tt.Probe(key); ok && entry.HasMove {
		pv = &entry.BestMove
	}

	moves := s.orderedMoves(s.me, 0, last, s.profile.MaxCandidates, pv)
	if len(moves) == 0 {
		return 0, Move{}, false
	}

	best := -scoreInf
	var bestMove Move
	hasBest := false
	for _, m := range moves {
		if s.timedOut() {
			break
		}
		undo := s.place(m, s.me)
		childKey := s.zob.UpdateHash(key, m, s.me)
		value := s.alphabeta(depth-1, 1, alpha, beta, otherPlayer(s.me), childKey, m)
		undo()

		if value > best || !hasBest {
			best, bestMove, hasBest = value, m, true
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	if hasBest && depth >= s.cfg.TTMinStoreDepth {
		s.tt.Store(key, depth, best, TTExact, bestMove, true)
	}
	return best, bestMove, hasBest
}

// aspirate searches depth with a window around the previous score and
// re-searches with a full window on fail-low or fail-high.
func (s *searchSession) aspirate(depth, prevScore int, last *Move) (int, Move, bool) {
	margin := s.cfg.AspirationWindow
	if depth < s.cfg.AspirationShallowDepth {
		margin = s.cfg.AspirationWindowShallow
	}
	alpha, beta := prevScore-margin, prevScore+margin

	score, move, ok := s.searchRoot(depth, alpha, beta, last)
	if !ok {
		return score, move, false
	}
	if score <= alpha {
		return s.searchRoot(depth, -scoreInf, score+1, last)
	}
	if score >= beta {
		return s.searchRoot(depth, score-1, scoreInf, last)
	}
	return score, move, true
}

// run drives the iterative deepening loop. Iterations that hit the deadline
// are discarded; the last completed iteration's result stands.
func (s *searchSession) run(last *Move) (Move, int, int, bool) {
	var (
		bestMove  Move
		bestScore int
		completed int
		haveBest  bool
	)

	for depth := 1; depth <= s.profile.MaxDepth; depth++ {
		if s.timedOut() {
			break
		}
		s.killers.reset()
		iterStart := time.Now()

		var (
			score int
			move  Move
			ok    bool
		)
		if haveBest && depth >= 2 {
			score, move, ok = s.aspirate(depth, bestScore, last)
		} else {
			score, move, ok = s.searchRoot(depth, -scoreInf, scoreInf, last)
		}
		if !ok || s.timedOut() {
			break
		}

		bestMove, bestScore, completed, haveBest = move, score, depth, true
		s.stats.CompletedDepth = depth
		s.stats.DepthDurations = append(s.stats.DepthDurations, time.Since(iterStart))

		if s.onIteration != nil {
			s.onIteration(IterationUpdate{
				Depth:   depth,
				Score:   score,
				Move:    move,
				Nodes:   s.stats.Nodes,
				Elapsed: time.Since(s.start),
			})
		}
		s.logger.Debug().
			Int("depth", depth).
			Int("score", score).
			Int("x", move.X).
			Int("y", move.Y).
			Dur("iter", time.Since(iterStart)).
			Msg("iteration complete")

		// A forced outcome is already decided; deeper search cannot
		// improve on it.
		if bestScore >= s.cfg.Weights.Win-maxWinPly || bestScore <= -(s.cfg.Weights.Win-maxWinPly) {
			break
		}
	}

	s.stats.Elapsed = time.Since(s.start)
	return bestMove, bestScore, completed, haveBest
}

// maxWinPly bounds the ply adjustment on win scores; any score within this
// margin of the win weight is a forced win or loss.
const maxWinPly = 1024
