package engine

import "testing"

func TestTTStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(16)
	best := Move{X: 3, Y: 4}
	tt.Store(42, 3, -120, TTLower, best, true)

	entry, ok := tt.Probe(42)
	if !ok {
		t.Fatalf("expected stored entry")
	}
	if entry.Depth != 3 || entry.Score != -120 || entry.Flag != TTLower {
		t.Fatalf("entry mismatch: %+v", entry)
	}
	if !entry.HasMove || !entry.BestMove.Equals(best) {
		t.Fatalf("best move mismatch: %+v", entry)
	}
	if _, ok := tt.Probe(43); ok {
		t.Fatalf("unexpected hit for unknown key")
	}
}

func TestTTOverwritesSameKey(t *testing.T) {
	tt := NewTranspositionTable(16)
	tt.Store(7, 2, 10, TTExact, Move{X: 1, Y: 1}, true)
	tt.Store(7, 5, 99, TTUpper, Move{X: 2, Y: 2}, true)

	entry, ok := tt.Probe(7)
	if !ok || entry.Depth != 5 || entry.Score != 99 || entry.Flag != TTUpper {
		t.Fatalf("expected later store to win, got %+v ok=%v", entry, ok)
	}
	if tt.Len() != 1 {
		t.Fatalf("expected single entry, got %d", tt.Len())
	}
}

func TestTTClearsAtCapacity(t *testing.T) {
	tt := NewTranspositionTable(4)
	for key := uint64(0); key < 4; key++ {
		tt.Store(key, 2, int(key), TTExact, Move{}, false)
	}
	if tt.Len() != 4 {
		t.Fatalf("expected table at capacity, got %d", tt.Len())
	}
	tt.Store(100, 2, 1, TTExact, Move{}, false)
	if tt.Len() != 1 {
		t.Fatalf("expected table reset before storing past capacity, got %d", tt.Len())
	}
	if _, ok := tt.Probe(100); !ok {
		t.Fatalf("expected newest entry to survive the reset")
	}
}

func TestTTSnapshotLoadRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(16)
	tt.Store(1, 2, 30, TTExact, Move{X: 5, Y: 6}, true)
	tt.Store(2, 4, -70, TTUpper, Move{X: 0, Y: 0}, true)

	snapshot := tt.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 snapshot entries, got %d", len(snapshot))
	}

	restored := NewTranspositionTable(16)
	restored.Load(snapshot)
	for _, want := range snapshot {
		got, ok := restored.Probe(want.Key)
		if !ok || got != want.Entry {
			t.Fatalf("restored entry mismatch for key %d: got %+v ok=%v", want.Key, got, ok)
		}
	}
}

func TestTTLoadRespectsCapacity(t *testing.T) {
	snapshot := make([]TTSnapshotEntry, 8)
	for i := range snapshot {
		snapshot[i] = TTSnapshotEntry{Key: uint64(i), Entry: TTEntry{Depth: 2}}
	}
	tt := NewTranspositionTable(4)
	tt.Load(snapshot)
	if tt.Len() != 4 {
		t.Fatalf("expected load to stop at capacity, got %d", tt.Len())
	}
}
