package engine

// PatternWeights scores directional runs by class. Open means both ends of
// the run are empty; half-open means exactly one end is.
type PatternWeights struct {
	Win           int
	OpenFour      int
	HalfOpenFour  int
	OpenThree     int
	HalfOpenThree int
	OpenTwo       int
	HalfOpenTwo   int
}

// Config carries the evaluation and search tuning knobs. DefaultConfig
// returns the tuned values; callers adjust fields before handing the
// config to New.
type Config struct {
	Weights PatternWeights

	// DefenseMultiplier scales the opponent's pattern total. 1.0 keeps the
	// evaluation antisymmetric; >1.0 plays more defensively.
	DefenseMultiplier float64

	// Centrality bonus per stone: max(0, CenterBonusMax - manhattan distance
	// to center), applied only while the board holds fewer than
	// CenterBonusStones stones.
	CenterBonusMax    int
	CenterBonusStones int

	TTMaxEntries    int // table is cleared when it reaches this size
	TTMinStoreDepth int // nodes shallower than this are not stored

	KillerBoost   int
	HistoryBoost  int
	LastMoveBonus int // ordering bonus for replies adjacent to the last move

	// Aspiration window half-widths around the previous iteration's score.
	// The shallow window applies below AspirationShallowDepth.
	AspirationWindow        int
	AspirationWindowShallow int
	AspirationShallowDepth  int

	QuiescenceDepth  int
	QuiescenceRadius int
}

func DefaultConfig() Config {
	return Config{
		Weights: PatternWeights{
			Win:           1_000_000,
			OpenFour:      100_000,
			HalfOpenFour:  10_000,
			OpenThree:     5_000,
			HalfOpenThree: 500,
			OpenTwo:       50,
			HalfOpenTwo:   5,
		},
		DefenseMultiplier: 1.0,
		CenterBonusMax:    10,
		CenterBonusStones: 10,

		TTMaxEntries:    500_000,
		TTMinStoreDepth: 2,

		KillerBoost:   8_000,
		HistoryBoost:  1,
		LastMoveBonus: 50,

		AspirationWindow:        500,
		AspirationWindowShallow: 1_000,
		AspirationShallowDepth:  4,

		QuiescenceDepth:  4,
		QuiescenceRadius: 1,
	}
}

// Ordering bonuses large enough to dominate every positional term.
const (
	orderWinBonus   = 100_000_000
	orderBlockBonus = 10_000_000
)

// scoreInf bounds the alpha-beta window; it exceeds any reachable score.
const scoreInf = 1 << 30
