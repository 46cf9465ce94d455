package source

import (
	"context"
	"math/rand"
	"sync"

	"github.com/TheKrainBow/gomoku-engine/engine"
)

const (
	defaultPlayouts   = 40
	rolloutMaxPlies   = 60
	rolloutRadius     = 1
	rolloutScoreScale = 1000
)

// RolloutSource scores candidate moves by random playouts: each candidate is
// played, then both sides move randomly in stone neighborhoods until someone
// wins or the playout budget runs out. The candidate with the best win ratio
// is proposed.
type RolloutSource struct {
	name     string
	playouts int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRolloutSource(name string, playouts int, seed int64) *RolloutSource {
	if playouts <= 0 {
		playouts = defaultPlayouts
	}
	return &RolloutSource{
		name:     name,
		playouts: playouts,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (s *RolloutSource) Name() string { return s.name }

func (s *RolloutSource) Propose(ctx context.Context, req engine.Request) (engine.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := engine.FromGrid(req.Board)
	if err != nil {
		return engine.Result{}, err
	}
	if board.IsFull() {
		return engine.Result{}, nil
	}

	// Forced tactics stay exact; playouts only rank the quiet moves.
	if m, ok := engine.FindImmediateWin(&board, req.Mover); ok {
		return engine.Result{Row: m.Y, Col: m.X, Score: rolloutScoreScale, HasMove: true}, nil
	}
	opp := opponent(req.Mover)
	if m, ok := engine.FindImmediateWin(&board, opp); ok {
		return engine.Result{Row: m.Y, Col: m.X, Score: rolloutScoreScale - 1, HasMove: true}, nil
	}

	candidates := engine.CandidateMoves(&board, req.LastMove, rolloutRadius)
	if len(candidates) == 0 {
		return engine.Result{}, nil
	}

	best := candidates[0]
	bestWins := -1
	for _, m := range candidates {
		if ctx.Err() != nil {
			return engine.Result{}, ctx.Err()
		}
		wins := 0
		for i := 0; i < s.playouts; i++ {
			trial := board.Clone()
			if trial.Place(m.X, m.Y, req.Mover) != nil {
				continue
			}
			if winner, done := trial.WinnerAt(m); done {
				if winner == req.Mover {
					wins++
				}
				continue
			}
			if winner, done := s.playRandomGame(trial, opp, m); done && winner == req.Mover {
				wins++
			}
		}
		if wins > bestWins {
			best, bestWins = m, wins
		}
	}

	score := 0
	if s.playouts > 0 {
		score = bestWins * rolloutScoreScale / s.playouts
	}
	return engine.Result{Row: best.Y, Col: best.X, Score: score, HasMove: true}, nil
}

// playRandomGame alternates random neighborhood moves until a win, a full
// board, or the ply cap.
func (s *RolloutSource) playRandomGame(b engine.Board, toMove engine.PlayerColor, last engine.Move) (engine.PlayerColor, bool) {
	for ply := 0; ply < rolloutMaxPlies && !b.IsFull(); ply++ {
		moves := engine.CandidateMoves(&b, &last, rolloutRadius)
		if len(moves) == 0 {
			break
		}
		m := moves[s.rng.Intn(len(moves))]
		if b.Place(m.X, m.Y, toMove) != nil {
			break
		}
		if winner, done := b.WinnerAt(m); done {
			return winner, true
		}
		last = m
		toMove = opponent(toMove)
	}
	return engine.PlayerBlack, false
}

func opponent(p engine.PlayerColor) engine.PlayerColor {
	if p == engine.PlayerBlack {
		return engine.PlayerWhite
	}
	return engine.PlayerBlack
}
