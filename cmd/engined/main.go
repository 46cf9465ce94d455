package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/TheKrainBow/gomoku-engine/engine"
	"github.com/TheKrainBow/gomoku-engine/source"
	"github.com/TheKrainBow/gomoku-engine/store"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "listen address")
		cacheDir = flag.String("cache-dir", "", "directory for the persisted search cache (empty disables)")
		logLevel = flag.String("log-level", "info", "zerolog level")
		seed     = flag.Int64("seed", 0, "score-noise seed (0 uses the clock)")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	hub := NewHub()
	opts := []engine.Option{
		engine.WithLogger(logger.With().Str("component", "engine").Logger()),
		engine.WithIterationHook(func(u engine.IterationUpdate) {
			hub.Publish(traceEvent{
				Depth:     u.Depth,
				Score:     u.Score,
				Row:       u.Move.Y,
				Col:       u.Move.X,
				Nodes:     u.Nodes,
				ElapsedMs: u.Elapsed.Milliseconds(),
			})
		}),
	}
	if *seed != 0 {
		opts = append(opts, engine.WithSeed(*seed))
	}
	eng := engine.New(opts...)

	var ttStore *store.TTStore
	if *cacheDir != "" {
		ttStore, err = store.Open(*cacheDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", *cacheDir).Msg("open search cache store")
		}
		entries, err := ttStore.Load()
		if err != nil {
			logger.Warn().Err(err).Msg("restore search cache")
		} else if len(entries) > 0 {
			eng.RestoreTT(entries)
			logger.Info().Int("entries", len(entries)).Msg("restored search cache")
		}
	}

	var persistOnce sync.Once
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			if ttStore == nil {
				return
			}
			snapshot := eng.SnapshotTT()
			if err := ttStore.Save(snapshot); err != nil {
				logger.Warn().Err(err).Msg("persist search cache")
			} else {
				logger.Info().Str("reason", reason).Int("entries", len(snapshot)).Msg("persisted search cache")
			}
			if err := ttStore.Close(); err != nil {
				logger.Warn().Err(err).Msg("close search cache store")
			}
		})
	}
	defer persistOnShutdown("exit")

	router := source.NewRouter(
		source.NewMinimaxSource("minimax", eng),
		logger.With().Str("component", "router").Logger(),
	)
	router.Register(source.NewRolloutSource("rollout", 0, time.Now().UnixNano()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/difficulties", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"difficulties": engine.ProfileNames()})
	})

	r.Get("/api/sources", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"sources": router.Names()})
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload moveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		res, err := router.Propose(r.Context(), payload.Source, engineRequest(payload))
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, moveResponse{
			Row:     res.Row,
			Col:     res.Col,
			Score:   res.Score,
			Depth:   res.Depth,
			HasMove: res.HasMove,
		})
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"count": eng.TTSize()})
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		eng.ClearTT()
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})

	r.Get("/ws/trace", func(w http.ResponseWriter, r *http.Request) {
		serveTraceWS(hub, w, r)
	})

	server := &http.Server{
		Addr:    *addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Info().Str("addr", *addr).Msg("engined listening")
	select {
	case <-sigCtx.Done():
		logger.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			logger.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn().Err(err).Msg("graceful shutdown failed")
		_ = server.Close()
	}

	cancel()
	persistOnShutdown("shutdown")
}

func serveTraceWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writePump(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
