package engine

import (
	"context"
	"errors"
	"testing"
)

func emptyGrid(size int) [][]Cell {
	grid := make([][]Cell, size)
	for i := range grid {
		grid[i] = make([]Cell, size)
	}
	return grid
}

func TestSuggestMoveEmptyBoardPlaysCenter(t *testing.T) {
	e := New(WithSeed(1))
	res, err := e.SuggestMove(context.Background(), Request{
		Board:      emptyGrid(15),
		Difficulty: "easy",
		Mover:      PlayerBlack,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasMove || res.Row != 7 || res.Col != 7 {
		t.Fatalf("expected center (7,7), got %+v", res)
	}
}

func TestSuggestMoveTakesWinInOneAtEveryDifficulty(t *testing.T) {
	for _, difficulty := range ProfileNames() {
		grid := emptyGrid(15)
		// Black four on row 7, blocked at col 2; winning at col 7.
		grid[7][2] = CellWhite
		for col := 3; col <= 6; col++ {
			grid[7][col] = CellBlack
		}

		e := New(WithSeed(7))
		res, err := e.SuggestMove(context.Background(), Request{
			Board:      grid,
			Difficulty: difficulty,
			Mover:      PlayerBlack,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", difficulty, err)
		}
		if !res.HasMove || res.Row != 7 || res.Col != 7 {
			t.Fatalf("%s: expected winning move (7,7), got %+v", difficulty, res)
		}
		if res.Depth != 0 {
			t.Fatalf("%s: expected tactical shortcut at depth 0, got %d", difficulty, res.Depth)
		}
		noise := ProfileFor(difficulty).Noise
		win := DefaultConfig().Weights.Win
		if res.Score < win-noise || res.Score > win+noise {
			t.Fatalf("%s: expected win score within noise, got %d", difficulty, res.Score)
		}
	}
}

func TestSuggestMoveBlocksWinInOneAtEveryDifficulty(t *testing.T) {
	for _, difficulty := range ProfileNames() {
		grid := emptyGrid(15)
		grid[7][2] = CellBlack
		for col := 3; col <= 6; col++ {
			grid[7][col] = CellWhite
		}

		e := New(WithSeed(7))
		res, err := e.SuggestMove(context.Background(), Request{
			Board:      grid,
			Difficulty: difficulty,
			Mover:      PlayerBlack,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", difficulty, err)
		}
		if !res.HasMove || res.Row != 7 || res.Col != 7 {
			t.Fatalf("%s: expected blocking move (7,7), got %+v", difficulty, res)
		}
	}
}

func TestSuggestMoveCompletesOpenFour(t *testing.T) {
	grid := emptyGrid(15)
	for col := 4; col <= 7; col++ {
		grid[7][col] = CellBlack
	}

	e := New()
	res, err := e.SuggestMove(context.Background(), Request{
		Board:      grid,
		Difficulty: "standard",
		Mover:      PlayerBlack,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasMove || res.Row != 7 || (res.Col != 3 && res.Col != 8) {
		t.Fatalf("expected completion at (7,3) or (7,8), got %+v", res)
	}
	if res.Score != DefaultConfig().Weights.Win {
		t.Fatalf("expected exact win score, got %d", res.Score)
	}
}

func TestSuggestMoveFullBoardNoMove(t *testing.T) {
	grid := emptyGrid(5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if (x/2+y)%2 == 0 {
				grid[y][x] = CellWhite
			} else {
				grid[y][x] = CellBlack
			}
		}
	}

	e := New()
	res, err := e.SuggestMove(context.Background(), Request{
		Board:      grid,
		Difficulty: "standard",
		Mover:      PlayerBlack,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HasMove {
		t.Fatalf("expected no move on a full board, got %+v", res)
	}
}

func TestSuggestMoveMalformedBoardFallsBack(t *testing.T) {
	grid := emptyGrid(6)
	grid[0][0] = CellBlack
	grid[3] = grid[3][:4] // ragged row

	e := New()
	res, err := e.SuggestMove(context.Background(), Request{
		Board:      grid,
		Difficulty: "standard",
		Mover:      PlayerWhite,
	})
	if err != nil {
		t.Fatalf("malformed board must degrade, not error: %v", err)
	}
	if !res.HasMove || res.Row != 0 || res.Col != 1 {
		t.Fatalf("expected first empty cell (0,1), got %+v", res)
	}
	if res.Depth != 0 {
		t.Fatalf("expected depth 0 for fallback, got %d", res.Depth)
	}
}

func TestSuggestMoveUnusableBoardErrors(t *testing.T) {
	e := New()
	_, err := e.SuggestMove(context.Background(), Request{
		Board: [][]Cell{{CellBlack}},
		Mover: PlayerBlack,
	})
	if !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
}

func TestSuggestMoveSeedDeterminism(t *testing.T) {
	grid := emptyGrid(15)
	grid[7][7] = CellBlack
	grid[8][8] = CellWhite

	run := func(seed int64) Result {
		e := New(WithSeed(seed))
		res, err := e.SuggestMove(context.Background(), Request{
			Board:      grid,
			Difficulty: "easy",
			Mover:      PlayerBlack,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res
	}

	a, b := run(42), run(42)
	if a.Row != b.Row || a.Col != b.Col || a.Score != b.Score {
		t.Fatalf("same seed must reproduce the result: %+v vs %+v", a, b)
	}
}

func TestNoisePerturbsScoreNotMove(t *testing.T) {
	grid := emptyGrid(15)
	grid[7][7] = CellBlack
	grid[8][8] = CellWhite

	var rows, cols []int
	for seed := int64(0); seed < 5; seed++ {
		e := New(WithSeed(seed))
		res, err := e.SuggestMove(context.Background(), Request{
			Board:      grid,
			Difficulty: "easy",
			Mover:      PlayerBlack,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows = append(rows, res.Row)
		cols = append(cols, res.Col)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i] != rows[0] || cols[i] != cols[0] {
			t.Fatalf("noise must never change the move: %v %v", rows, cols)
		}
	}
}

func TestEngineTTPersistsAcrossCalls(t *testing.T) {
	grid := emptyGrid(15)
	grid[7][7] = CellBlack
	grid[8][8] = CellWhite

	e := New(WithSeed(1))
	if _, err := e.SuggestMove(context.Background(), Request{
		Board:      grid,
		Difficulty: "standard",
		Mover:      PlayerBlack,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.TTSize() == 0 {
		t.Fatalf("expected transposition table to persist on the engine")
	}

	snapshot := e.SnapshotTT()
	if len(snapshot) != e.TTSize() {
		t.Fatalf("snapshot size mismatch: %d vs %d", len(snapshot), e.TTSize())
	}

	fresh := New()
	fresh.RestoreTT(snapshot)
	if fresh.TTSize() != len(snapshot) {
		t.Fatalf("expected restored table size %d, got %d", len(snapshot), fresh.TTSize())
	}
}
