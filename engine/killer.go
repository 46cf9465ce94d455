package engine

const killerSlots = 2

// killerTable keeps up to two quiet cutoff moves per ply. Slots are reset at
// the start of every deepening iteration.
type killerTable struct {
	slots [][]Move
}

func newKillerTable(maxPly int) *killerTable {
	return &killerTable{slots: make([][]Move, maxPly)}
}

func (k *killerTable) reset() {
	for i := range k.slots {
		k.slots[i] = k.slots[i][:0]
	}
}

func (k *killerTable) isKiller(ply int, m Move) bool {
	if ply < 0 || ply >= len(k.slots) {
		return false
	}
	for _, killer := range k.slots[ply] {
		if killer.Equals(m) {
			return true
		}
	}
	return false
}

// record inserts m at the front of the ply's slots, evicting the oldest.
func (k *killerTable) record(ply int, m Move) {
	if ply < 0 || ply >= len(k.slots) {
		return
	}
	if k.isKiller(ply, m) {
		return
	}
	slot := k.slots[ply]
	slot = append([]Move{m}, slot...)
	if len(slot) > killerSlots {
		slot = slot[:killerSlots]
	}
	k.slots[ply] = slot
}

// historyTable accumulates cutoff weight per player per cell.
type historyTable struct {
	size    int
	weights []int // black plane then white plane
}

func newHistoryTable(size int) *historyTable {
	return &historyTable{size: size, weights: make([]int, 2*size*size)}
}

func (h *historyTable) index(player PlayerColor, m Move) int {
	idx := m.Y*h.size + m.X
	if player == PlayerWhite {
		idx += h.size * h.size
	}
	return idx
}

func (h *historyTable) add(player PlayerColor, m Move, bonus int) {
	if !m.IsValid(h.size) {
		return
	}
	h.weights[h.index(player, m)] += bonus
}

func (h *historyTable) get(player PlayerColor, m Move) int {
	if !m.IsValid(h.size) {
		return 0
	}
	return h.weights[h.index(player, m)]
}
