package engine

// TTFlag classifies a stored score against the window it was searched with.
type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Depth    int
	Score    int
	Flag     TTFlag
	BestMove Move
	HasMove  bool
}

// TTSnapshotEntry pairs a position key with its entry for persistence.
type TTSnapshotEntry struct {
	Key   uint64  `json:"key"`
	Entry TTEntry `json:"entry"`
}

// TranspositionTable is an always-overwrite position cache. It is not
// goroutine safe; each search session (or the engine facade's mutex) owns it.
type TranspositionTable struct {
	entries    map[uint64]TTEntry
	maxEntries int
}

func NewTranspositionTable(maxEntries int) *TranspositionTable {
	if maxEntries <= 0 {
		maxEntries = DefaultConfig().TTMaxEntries
	}
	return &TranspositionTable{
		entries:    make(map[uint64]TTEntry),
		maxEntries: maxEntries,
	}
}

func (t *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}

// Store records an entry, overwriting any previous one. The whole table is
// dropped when it reaches its size cap; a fresh map is cheaper and simpler
// than tracking per-entry age at this scale.
func (t *TranspositionTable) Store(key uint64, depth, score int, flag TTFlag, best Move, hasMove bool) {
	if len(t.entries) >= t.maxEntries {
		t.entries = make(map[uint64]TTEntry)
	}
	t.entries[key] = TTEntry{
		Depth:    depth,
		Score:    score,
		Flag:     flag,
		BestMove: best,
		HasMove:  hasMove,
	}
}

func (t *TranspositionTable) Len() int { return len(t.entries) }

func (t *TranspositionTable) Clear() {
	t.entries = make(map[uint64]TTEntry)
}

// Snapshot copies the table contents for persistence.
func (t *TranspositionTable) Snapshot() []TTSnapshotEntry {
	out := make([]TTSnapshotEntry, 0, len(t.entries))
	for key, entry := range t.entries {
		out = append(out, TTSnapshotEntry{Key: key, Entry: entry})
	}
	return out
}

// Load merges snapshot entries, respecting the size cap.
func (t *TranspositionTable) Load(entries []TTSnapshotEntry) {
	for _, e := range entries {
		if len(t.entries) >= t.maxEntries {
			return
		}
		t.entries[e.Key] = e.Entry
	}
}
