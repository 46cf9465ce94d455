package engine

import "testing"

func TestHashIncludesSideToMove(t *testing.T) {
	b := NewBoard(9)
	if err := b.Place(0, 0, PlayerBlack); err != nil {
		t.Fatalf("place: %v", err)
	}
	zob := GetZobrist(9)
	if zob.HashBoard(&b, PlayerBlack) == zob.HashBoard(&b, PlayerWhite) {
		t.Fatalf("expected hash to differ for different side to move")
	}
}

func TestIncrementalHashMatchesFullHash(t *testing.T) {
	b := NewBoard(9)
	zob := GetZobrist(9)
	h := zob.HashBoard(&b, PlayerBlack)

	moves := []struct {
		m Move
		p PlayerColor
	}{
		{Move{X: 4, Y: 4}, PlayerBlack},
		{Move{X: 3, Y: 4}, PlayerWhite},
		{Move{X: 5, Y: 5}, PlayerBlack},
	}
	toMove := PlayerBlack
	for _, mv := range moves {
		if err := b.Place(mv.m.X, mv.m.Y, mv.p); err != nil {
			t.Fatalf("place: %v", err)
		}
		h = zob.UpdateHash(h, mv.m, mv.p)
		toMove = otherPlayer(toMove)
		if want := zob.HashBoard(&b, toMove); h != want {
			t.Fatalf("incremental hash diverged after %v: got %d want %d", mv.m, h, want)
		}
	}
}

func TestUpdateHashIsSelfInverse(t *testing.T) {
	b := NewBoard(9)
	zob := GetZobrist(9)
	h := zob.HashBoard(&b, PlayerBlack)
	m := Move{X: 2, Y: 7}

	h2 := zob.UpdateHash(h, m, PlayerWhite)
	if h2 == h {
		t.Fatalf("placing a stone must change the hash")
	}
	if zob.UpdateHash(h2, m, PlayerWhite) != h {
		t.Fatalf("undoing a move must restore the hash")
	}
}

func TestZobristTablesAreStablePerSize(t *testing.T) {
	a := GetZobrist(15)
	b := GetZobrist(15)
	if a != b {
		t.Fatalf("expected shared table instance per size")
	}
	c := GetZobrist(9)
	if c.stone(0, 0, PlayerBlack) == a.stone(0, 0, PlayerBlack) && c.side == a.side {
		t.Fatalf("expected different keys for different sizes")
	}
}
