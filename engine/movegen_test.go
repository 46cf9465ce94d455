package engine

import "testing"

func TestCandidateMovesEmptyBoardYieldsCenter(t *testing.T) {
	b := NewBoard(15)
	moves := CandidateMoves(&b, nil, 2)
	if len(moves) != 1 {
		t.Fatalf("expected exactly one candidate on empty board, got %d", len(moves))
	}
	if moves[0].X != 7 || moves[0].Y != 7 {
		t.Fatalf("expected center (7,7), got (%d,%d)", moves[0].X, moves[0].Y)
	}
}

func TestCandidateMovesStayNearStones(t *testing.T) {
	b := NewBoard(15)
	mustPlace(t, &b, 7, 7, PlayerBlack)
	mustPlace(t, &b, 8, 8, PlayerWhite)

	moves := CandidateMoves(&b, nil, 2)
	if len(moves) == 0 {
		t.Fatalf("expected candidates near stones")
	}
	for _, m := range moves {
		if !b.IsEmpty(m.X, m.Y) {
			t.Fatalf("candidate (%d,%d) is occupied", m.X, m.Y)
		}
		near := chebDist(m, Move{X: 7, Y: 7}) <= 2 || chebDist(m, Move{X: 8, Y: 8}) <= 2
		if !near {
			t.Fatalf("candidate (%d,%d) outside radius of any stone", m.X, m.Y)
		}
	}
}

func TestCandidateMovesLastMoveFocus(t *testing.T) {
	b := NewBoard(15)
	mustPlace(t, &b, 2, 2, PlayerBlack)
	mustPlace(t, &b, 12, 12, PlayerWhite)

	last := Move{X: 12, Y: 12}
	moves := CandidateMoves(&b, &last, 2)
	for _, m := range moves {
		if chebDist(m, last) > 2 {
			t.Fatalf("expected focus on last-move neighborhood, got (%d,%d)", m.X, m.Y)
		}
	}
}

func TestCandidateMovesWidenWhenLocalTooSmall(t *testing.T) {
	// Last move in a corner with radius 1 leaves only 3 local cells, below
	// the widening threshold, so generation falls back to all stones.
	b := NewBoard(15)
	mustPlace(t, &b, 0, 0, PlayerBlack)
	mustPlace(t, &b, 7, 7, PlayerWhite)

	last := Move{X: 0, Y: 0}
	moves := CandidateMoves(&b, &last, 1)
	foundCentral := false
	for _, m := range moves {
		if chebDist(m, Move{X: 7, Y: 7}) <= 1 {
			foundCentral = true
		}
	}
	if !foundCentral {
		t.Fatalf("expected widened candidates to include the central stone's neighborhood")
	}
}

func TestCandidateMovesRowMajorOrder(t *testing.T) {
	b := NewBoard(9)
	mustPlace(t, &b, 4, 4, PlayerBlack)
	moves := CandidateMoves(&b, nil, 1)
	for i := 1; i < len(moves); i++ {
		prev, cur := moves[i-1], moves[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Fatalf("expected strict row-major order, got %v before %v", prev, cur)
		}
	}
	if len(moves) != 8 {
		t.Fatalf("expected the 8 neighbors of a lone stone, got %d", len(moves))
	}
}
