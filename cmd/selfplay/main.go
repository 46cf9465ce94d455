// selfplay runs engine-vs-engine matches between two difficulty profiles and
// reports the aggregate outcome. Useful for sanity-checking tuning changes:
// challenge should beat easy convincingly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/TheKrainBow/gomoku-engine/engine"
)

type gameResult struct {
	Game    int
	Outcome string // "black", "white", or "draw"
	Moves   int
}

type matchRunner struct {
	boardSize int
	blackDiff string
	whiteDiff string
	maxMoves  int
}

func main() {
	var (
		games     = flag.Int("games", 10, "number of games to play")
		workers   = flag.Int("workers", 4, "parallel games")
		boardSize = flag.Int("board-size", 15, "board size")
		blackDiff = flag.String("black", "challenge", "black difficulty")
		whiteDiff = flag.String("white", "easy", "white difficulty")
		seed      = flag.Int64("seed", 1, "base RNG seed")
		logLevel  = flag.String("log-level", "info", "zerolog level")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	runner := &matchRunner{
		boardSize: *boardSize,
		blackDiff: *blackDiff,
		whiteDiff: *whiteDiff,
		maxMoves:  *boardSize * *boardSize,
	}

	start := time.Now()
	results := make([]gameResult, *games)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	var mu sync.Mutex
	for i := 0; i < *games; i++ {
		i := i
		g.Go(func() error {
			res, err := runner.playGame(ctx, i, *seed+int64(i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			logger.Info().
				Int("game", i).
				Str("outcome", res.Outcome).
				Int("moves", res.Moves).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("selfplay aborted")
	}

	outcomes := lo.CountValuesBy(results, func(r gameResult) string { return r.Outcome })
	totalMoves := lo.SumBy(results, func(r gameResult) int { return r.Moves })

	logger.Info().
		Str("black", runner.blackDiff).
		Str("white", runner.whiteDiff).
		Int("games", *games).
		Int("black_wins", outcomes["black"]).
		Int("white_wins", outcomes["white"]).
		Int("draws", outcomes["draw"]).
		Float64("avg_moves", float64(totalMoves)/float64(len(results))).
		Dur("elapsed", time.Since(start)).
		Msg("selfplay complete")
}

// playGame runs one full game with per-game engines so the transposition
// tables never cross goroutines.
func (r *matchRunner) playGame(ctx context.Context, game int, seed int64) (gameResult, error) {
	black := engine.New(engine.WithSeed(seed))
	white := engine.New(engine.WithSeed(seed + 1))

	board := engine.NewBoard(r.boardSize)
	toMove := engine.PlayerBlack
	var last *engine.Move

	for moves := 0; moves < r.maxMoves; moves++ {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}

		eng, difficulty := black, r.blackDiff
		if toMove == engine.PlayerWhite {
			eng, difficulty = white, r.whiteDiff
		}

		res, err := eng.SuggestMove(ctx, engine.Request{
			Board:      board.Grid(),
			Difficulty: difficulty,
			Mover:      toMove,
			LastMove:   last,
		})
		if err != nil {
			return gameResult{}, err
		}
		if !res.HasMove {
			return gameResult{Game: game, Outcome: "draw", Moves: moves}, nil
		}

		move := engine.Move{X: res.Col, Y: res.Row}
		if err := board.Place(move.X, move.Y, toMove); err != nil {
			return gameResult{}, fmt.Errorf("%s proposed illegal move (%d,%d): %w", toMove, move.X, move.Y, err)
		}
		if winner, ok := board.WinnerAt(move); ok {
			return gameResult{Game: game, Outcome: winner.String(), Moves: moves + 1}, nil
		}
		if board.IsFull() {
			return gameResult{Game: game, Outcome: "draw", Moves: moves + 1}, nil
		}

		last = &move
		if toMove == engine.PlayerBlack {
			toMove = engine.PlayerWhite
		} else {
			toMove = engine.PlayerBlack
		}
	}
	return gameResult{Game: game, Outcome: "draw", Moves: r.maxMoves}, nil
}
