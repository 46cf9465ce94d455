package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Engine is the move-selection facade. It owns the transposition table,
// which survives across calls and can be snapshot for persistence. Searches
// are serialized; run separate Engines for concurrent games.
type Engine struct {
	mu          sync.Mutex
	cfg         Config
	logger      zerolog.Logger
	tt          *TranspositionTable
	rng         *rand.Rand
	onIteration func(IterationUpdate)
}

type Option func(*Engine)

func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSeed makes the difficulty noise reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithIterationHook registers a callback invoked after every completed
// deepening iteration, from the searching goroutine.
func WithIterationHook(fn func(IterationUpdate)) Option {
	return func(e *Engine) { e.onIteration = fn }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.tt = NewTranspositionTable(e.cfg.TTMaxEntries)
	return e
}

// Request describes one move query. Board is row-major; LastMove is an
// optional hint that focuses candidate generation.
type Request struct {
	Board      [][]Cell    `json:"board"`
	Difficulty string      `json:"difficulty"`
	Mover      PlayerColor `json:"mover"`
	LastMove   *Move       `json:"last_move,omitempty"`
}

// Result reports the chosen move. HasMove is false when the board is full.
type Result struct {
	Row     int         `json:"row"`
	Col     int         `json:"col"`
	Score   int         `json:"score"`
	Depth   int         `json:"depth"`
	HasMove bool        `json:"has_move"`
	Stats   SearchStats `json:"-"`
}

// FindImmediateWin returns the first (row-major) empty cell that completes a
// five for p.
func FindImmediateWin(b *Board, p PlayerColor) (Move, bool) {
	size := b.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !b.IsEmpty(x, y) {
				continue
			}
			m := Move{X: x, Y: y}
			if b.Place(x, y, p) != nil {
				continue
			}
			_, won := b.WinnerAt(m)
			b.Remove(x, y)
			if won {
				return m, true
			}
		}
	}
	return Move{}, false
}

// SuggestMove picks a move for req.Mover. A malformed board degrades to the
// first empty cell of the raw grid rather than an error; a full board
// returns HasMove false with a nil error.
func (e *Engine) SuggestMove(ctx context.Context, req Request) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	profile := ProfileFor(req.Difficulty)

	board, err := FromGrid(req.Board)
	if err != nil {
		if m, ok := firstEmptyInGrid(req.Board); ok {
			e.logger.Warn().
				Int("rows", len(req.Board)).
				Msg("malformed board, falling back to first empty cell")
			return Result{Row: m.Y, Col: m.X, HasMove: true}, nil
		}
		return Result{}, ErrInvalidBoard
	}

	if board.IsFull() {
		return Result{}, nil
	}

	if m, ok := FindImmediateWin(&board, req.Mover); ok {
		return e.withNoise(Result{
			Row: m.Y, Col: m.X,
			Score:   e.cfg.Weights.Win,
			HasMove: true,
		}, profile), nil
	}
	if m, ok := FindImmediateWin(&board, otherPlayer(req.Mover)); ok {
		return e.withNoise(Result{
			Row: m.Y, Col: m.X,
			Score:   e.cfg.Weights.Win - 1,
			HasMove: true,
		}, profile), nil
	}

	res := e.runSearch(ctx, board, req.Mover, profile, req.LastMove)
	e.logger.Info().
		Str("difficulty", profile.Name).
		Int("row", res.Row).
		Int("col", res.Col).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Stats.Nodes).
		Float64("tt_hit_rate", res.Stats.ttHitRate()).
		Dur("elapsed", res.Stats.Elapsed).
		Msg("move selected")
	return e.withNoise(res, profile), nil
}

// runSearch recovers from search panics by degrading to the best raw
// candidate; the caller's board stays clean because the session works on a
// clone.
func (e *Engine) runSearch(ctx context.Context, board Board, mover PlayerColor, profile Profile, last *Move) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("search panicked, using fallback move")
			res = fallbackResult(&board, profile, last)
		}
	}()

	session := newSearchSession(ctx, board, mover, profile, e.cfg, e.tt, e.logger)
	session.onIteration = e.onIteration

	move, score, depth, ok := session.run(last)
	if !ok {
		return fallbackResult(&board, profile, last)
	}
	return Result{
		Row: move.Y, Col: move.X,
		Score:   score,
		Depth:   depth,
		HasMove: true,
		Stats:   *session.stats,
	}
}

// fallbackResult picks the most central raw candidate without searching.
func fallbackResult(b *Board, profile Profile, last *Move) Result {
	candidates := CandidateMoves(b, last, profile.Radius)
	if len(candidates) == 0 {
		return Result{}
	}
	size := b.Size()
	center := Move{X: size / 2, Y: size / 2}
	best := candidates[0]
	for _, m := range candidates[1:] {
		if manhattanDist(m, center) < manhattanDist(best, center) {
			best = m
		}
	}
	return Result{Row: best.Y, Col: best.X, HasMove: true}
}

// withNoise perturbs the reported score, never the move.
func (e *Engine) withNoise(res Result, profile Profile) Result {
	if profile.Noise > 0 && res.HasMove {
		res.Score += e.rng.Intn(2*profile.Noise+1) - profile.Noise
	}
	return res
}

// firstEmptyInGrid scans a possibly ragged grid for its first empty cell.
func firstEmptyInGrid(grid [][]Cell) (Move, bool) {
	for y, row := range grid {
		for x, c := range row {
			if c == CellEmpty {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{}, false
}

// SnapshotTT exports the transposition table for persistence.
func (e *Engine) SnapshotTT() []TTSnapshotEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tt.Snapshot()
}

// RestoreTT merges a persisted snapshot into the table.
func (e *Engine) RestoreTT(entries []TTSnapshotEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Load(entries)
}

// ClearTT drops every cached position.
func (e *Engine) ClearTT() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Clear()
}

// TTSize reports the current table occupancy.
func (e *Engine) TTSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tt.Len()
}
