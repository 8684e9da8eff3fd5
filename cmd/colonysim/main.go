// Command colonysim runs the colony economic planner against a generated
// territory.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/api"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/colony"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/config"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/engine"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/persistence"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/planner"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := envOrDefault("COLONYSIM_DB", "data/colony.db")
	cfgPath := envOrDefault("COLONYSIM_CONFIG", "colony.yaml")
	apiPort := envIntOrDefault("COLONYSIM_PORT", 8080)
	seed := int64(envIntOrDefault("COLONYSIM_SEED", 42))

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	// ── Store ─────────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Territory (always regenerated, deterministic from seed) ───────
	gen := world.DefaultGenConfig()
	gen.Seed = seed
	survey := world.Generate(gen, 0)
	slog.Info("territory generated", "nodes", len(survey.Nodes), "links", len(survey.Links))

	// ── Load or start fresh ───────────────────────────────────────────
	// Saved contracts are not reloaded; the first planning pass derives
	// fresh ones.
	col, _, err := persistence.LoadColony(db)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		slog.Info("no saved colony found, starting fresh")
		col = colony.New(cfg.Colony, cfg.MintValues)
	case err != nil:
		slog.Error("failed to load colony", "error", err)
		os.Exit(1)
	default:
		// The corp registry is not persisted; hosted corps are rebuilt below.
		for _, n := range col.Nodes() {
			n.Corps = nil
		}
	}
	startTick := col.Tick()

	reg := corp.NewRegistry()
	ctx := engine.NewContext(col, planner.New(cfg.Planner, col.MintValues()), reg)
	ctx.Store = db
	ctx.Sensor = engine.StaticSensor{Survey: survey}
	ctx.Executor = engine.SteadyExecutor{}

	ctx.Survey(startTick)
	ctx.Hydrate(startTick, engine.DefaultCorpParams())

	eng := engine.NewEngine()
	eng.Tick = startTick
	eng.SurveyEvery = cfg.Schedule.SurveyEvery
	eng.PlanEvery = cfg.Schedule.PlanEvery
	ctx.Bind(eng)

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("COLONYSIM_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("COLONYSIM_ADMIN_KEY not set, admin POST endpoints will be disabled")
	}
	apiServer := &api.Server{
		Ctx:      ctx,
		Eng:      eng,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nColony ready: %d corps across %d nodes.\n", reg.TotalCorps(), len(col.Nodes()))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)
	if startTick > 0 {
		fmt.Printf("Resuming from tick %d\n", startTick)
	}
	fmt.Println("Starting engine... (Ctrl+C to stop)")

	eng.Run()

	slog.Info("final save...")
	if err := ctx.Save(); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Engine stopped. Colony saved.")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
