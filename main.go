package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"snake-autopilot/ai"
	"snake-autopilot/audio"
	"snake-autopilot/game"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/store"
	"snake-autopilot/terminal"
	"snake-autopilot/ui"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type options struct {
	width, height int
	strategy      string
	manual        bool
	seed          uint64
	speed         int
	frontend      string
	ticks         int
	highScore     string
	statsFile     string
	dsn           string
	sound         bool
	verbose       bool
}

func main() {
	var opts options
	flag.IntVar(&opts.width, "width", game.DefaultWidth, "Board width in cells")
	flag.IntVar(&opts.height, "height", game.DefaultHeight, "Board height in cells")
	flag.StringVar(&opts.strategy, "strategy", "astar", "Search strategy: astar or bfs")
	flag.BoolVar(&opts.manual, "manual", false, "Start in manual mode (arrow keys steer)")
	flag.Uint64Var(&opts.seed, "seed", 0, "Food placement seed (0 = time based)")
	flag.IntVar(&opts.speed, "speed", 100, "Tick interval in milliseconds (lower = faster)")
	flag.StringVar(&opts.frontend, "ui", "raylib", "Frontend: raylib, terminal or headless")
	flag.IntVar(&opts.ticks, "ticks", 1000, "Ticks to run in headless mode (0 = until game over)")
	flag.StringVar(&opts.highScore, "highscore", store.DefaultHighScoreFile, "High score file")
	flag.StringVar(&opts.statsFile, "stats", "data/stats.json", "Session history file (empty = do not keep)")
	flag.StringVar(&opts.dsn, "dsn", "", "Postgres DSN; stores the high score in the database instead of the file")
	flag.BoolVar(&opts.sound, "sound", true, "Play sounds")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.Parse()

	logger := newLogger(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("snake stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(opts options) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if opts.frontend == "terminal" {
		// stderr shares the screen
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg, err := buildConfig(ctx, opts, logger)
	if err != nil {
		return err
	}
	g, err := game.NewGame(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if err := g.SaveStats(); err != nil {
			logger.Warn("session history not saved", "error", err)
		}
	}()

	interval := time.Duration(opts.speed) * time.Millisecond

	switch opts.frontend {
	case "headless":
		return runHeadless(ctx, g, opts.ticks, logger)
	case "terminal":
		return withSound(g, opts.sound, logger, func() error {
			f, err := terminal.New(nil, g, interval, logger)
			if err != nil {
				return err
			}
			return f.Run(ctx)
		})
	case "raylib":
		return withSound(g, opts.sound, logger, func() error {
			return runWindow(ctx, g, interval)
		})
	}
	return fmt.Errorf("unknown frontend %q", opts.frontend)
}

func buildConfig(ctx context.Context, opts options, logger *slog.Logger) (game.Config, error) {
	cfg := game.DefaultConfig()
	cfg.Grid = types.Grid{Width: opts.width, Height: opts.height}
	cfg.AIEnabled = !opts.manual
	cfg.StatsFile = opts.statsFile
	cfg.Logger = logger

	kind, err := ai.ParseKind(opts.strategy)
	if err != nil {
		return cfg, err
	}
	cfg.Strategy = kind

	cfg.Seed = opts.seed
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	highScores, err := openStore(ctx, opts)
	if err != nil {
		return cfg, err
	}
	cfg.Store = highScores
	return cfg, nil
}

func openStore(ctx context.Context, opts options) (manager.HighScoreStore, error) {
	if opts.dsn == "" {
		return store.NewFileStore(opts.highScore), nil
	}
	db, err := store.OpenPostgres(opts.dsn)
	if err != nil {
		return nil, err
	}
	pg := store.NewPostgresStore(db, store.BoardKey(opts.width, opts.height))
	if err := pg.Migrate(ctx); err != nil {
		return nil, err
	}
	return pg, nil
}

func runHeadless(ctx context.Context, g *game.Game, ticks int, logger *slog.Logger) error {
	if err := game.Run(ctx, g, ticks, 0); err != nil {
		return err
	}
	logger.Info("headless run finished",
		"session", g.UUID,
		"steps", g.Steps,
		"score", g.Score(),
		"high_score", g.HighScore(),
		"over", g.Over,
		"cause", g.Cause.String(),
		"games_recorded", g.Stats().GamesPlayed(),
		"average_score", g.Stats().AverageScore())
	return nil
}

// withSound wires the sound manager for the duration of fn. Without a
// working audio device the game runs silent.
func withSound(g *game.Game, enabled bool, logger *slog.Logger, fn func() error) error {
	if enabled {
		sm := audio.NewSoundManager(logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio initialization failed, running without sound", "error", err)
		} else {
			defer sm.Close()
			g.AddListener(sm)
		}
	}
	return fn()
}

func runWindow(ctx context.Context, g *game.Game, interval time.Duration) error {
	rl.InitWindow(1280, 800, "Snake Autopilot")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	lastUpdate := time.Now()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}

		quit, err := g.Apply(renderer.HandleInput())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		if time.Since(lastUpdate) >= interval {
			if err := g.Update(ctx); err != nil {
				return err
			}
			lastUpdate = time.Now()
		}

		renderer.Draw(g)
	}
	return nil
}
