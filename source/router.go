package source

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/gomoku-engine/engine"
)

// Router dispatches requests to registered sources by id. Unknown ids and
// failed proposals degrade to the fallback source instead of erroring, so a
// broken experimental source never stalls a game.
type Router struct {
	sources  map[string]Source
	fallback Source
	logger   zerolog.Logger
}

func NewRouter(fallback Source, logger zerolog.Logger) *Router {
	r := &Router{
		sources:  make(map[string]Source),
		fallback: fallback,
		logger:   logger,
	}
	r.Register(fallback)
	return r
}

func (r *Router) Register(s Source) {
	r.sources[s.Name()] = s
}

// Names lists the registered source ids.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}

func (r *Router) Propose(ctx context.Context, id string, req engine.Request) (engine.Result, error) {
	src, ok := r.sources[id]
	if !ok {
		r.logger.Warn().Str("source", id).Msg("unknown move source, using fallback")
		src = r.fallback
	}

	res, err := src.Propose(ctx, req)
	if err == nil {
		return res, nil
	}
	if src == r.fallback {
		return engine.Result{}, err
	}

	r.logger.Warn().
		Str("source", src.Name()).
		Err(err).
		Msg("move source failed, using fallback")
	return r.fallback.Propose(ctx, req)
}
