package main

import (
	"encoding/json"
	"net/http"

	"github.com/TheKrainBow/gomoku-engine/engine"
)

type moveRequest struct {
	Board      [][]int      `json:"board"`
	Difficulty string       `json:"difficulty"`
	Player     int          `json:"player"`
	Source     string       `json:"source,omitempty"`
	LastMove   *engine.Move `json:"last_move,omitempty"`
}

type moveResponse struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	Score   int  `json:"score"`
	Depth   int  `json:"depth"`
	HasMove bool `json:"has_move"`
}

func intToCell(value int) engine.Cell {
	switch value {
	case 1:
		return engine.CellBlack
	case 2:
		return engine.CellWhite
	default:
		return engine.CellEmpty
	}
}

func intToPlayer(value int) engine.PlayerColor {
	if value == 2 {
		return engine.PlayerWhite
	}
	return engine.PlayerBlack
}

// gridFromInts converts the wire board (0 empty, 1 black, 2 white). Unknown
// values map to an out-of-range cell so the engine's validation fallback
// handles them.
func gridFromInts(rows [][]int) [][]engine.Cell {
	grid := make([][]engine.Cell, len(rows))
	for y, row := range rows {
		grid[y] = make([]engine.Cell, len(row))
		for x, v := range row {
			if v < 0 || v > 2 {
				grid[y][x] = engine.Cell(v)
				continue
			}
			grid[y][x] = intToCell(v)
		}
	}
	return grid
}

func engineRequest(payload moveRequest) engine.Request {
	return engine.Request{
		Board:      gridFromInts(payload.Board),
		Difficulty: payload.Difficulty,
		Mover:      intToPlayer(payload.Player),
		LastMove:   payload.LastMove,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
