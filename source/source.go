// Package source routes move requests to pluggable move generators. The
// minimax engine is the default source; alternatives register under their
// own ids and the router degrades to a fallback source when a lookup or a
// proposal fails.
package source

import (
	"context"

	"github.com/TheKrainBow/gomoku-engine/engine"
)

// Source proposes a move for a request. Implementations must be safe for
// concurrent use.
type Source interface {
	Name() string
	Propose(ctx context.Context, req engine.Request) (engine.Result, error)
}

// MinimaxSource adapts an engine.Engine to the Source interface.
type MinimaxSource struct {
	name string
	eng  *engine.Engine
}

func NewMinimaxSource(name string, eng *engine.Engine) *MinimaxSource {
	return &MinimaxSource{name: name, eng: eng}
}

func (s *MinimaxSource) Name() string { return s.name }

func (s *MinimaxSource) Propose(ctx context.Context, req engine.Request) (engine.Result, error) {
	return s.eng.SuggestMove(ctx, req)
}
