// Command capypet-sim runs the pet scene without a window and prints a
// Markdown report of what the pets did and how long ticks took.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/capypet/config"
	"github.com/plus3/capypet/scene"
	"github.com/plus3/capypet/sprite"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "capypet-sim:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML or TOML config file.")
	duration := flag.Duration("duration", 10*time.Minute, "Simulated time to run for.")
	tick := flag.Duration("tick", time.Second/60, "Simulated time per tick.")
	pets := flag.Int("pets", -1, "Number of pets (overrides the config).")
	seed := flag.Uint64("seed", 0, "Random seed (overrides the config, 0 keeps it).")
	realtime := flag.Bool("realtime", false, "Tick on a wall-clock ticker instead of as fast as possible.")
	logLevel := flag.String("log-level", "", "Log level (overrides the config).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *pets >= 0 {
		cfg.Scene.Pets = *pets
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", *tick)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Scene.Seed == 0 {
		cfg.Scene.Seed = uint64(time.Now().UnixNano())
	}

	s := scene.New(scene.Options{
		Settings:  scene.SettingsFromConfig(cfg, probeFrameCounts(cfg, logger)),
		Seed:      cfg.Scene.Seed,
		Pets:      cfg.Scene.Pets,
		HalfWidth: cfg.Scene.WorldHalfWidth,
		Logger:    logger,
	})
	defer s.Teardown()

	report := &Report{
		Duration: *duration,
		Tick:     *tick,
		Pets:     cfg.Scene.Pets,
		Seed:     cfg.Scene.Seed,
		Realtime: *realtime,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("simulation started",
		zap.Duration("duration", *duration),
		zap.Duration("tick", *tick),
		zap.Int("pets", cfg.Scene.Pets))

	startTime := time.Now()
	if *realtime {
		ctx, cancel := context.WithTimeout(context.Background(), *duration)
		defer cancel()
		s.Update.Run(ctx, *tick)
	} else {
		steps := int(*duration / *tick)
		dt := tick.Seconds()
		report.TickTime.Samples = make([]time.Duration, 0, steps)
		for i := 0; i < steps; i++ {
			tickStart := time.Now()
			s.Tick(dt)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(s)

	logger.Info("simulation finished",
		zap.Uint64("ticks", report.Behavior.Ticks),
		zap.Duration("wall", report.TotalTime))

	return report.Generate(os.Stdout)
}

// probeFrameCounts reads the width of every configured sheet. Sheets that
// are missing or unreadable count as placeholders.
func probeFrameCounts(cfg *config.Config, logger *zap.Logger) [sprite.NumClips]int {
	var counts [sprite.NumClips]int
	for clip := sprite.Clip(0); clip < sprite.NumClips; clip++ {
		counts[clip] = sprite.PlaceholderFrames

		path := cfg.SheetPath(clip)
		if path == "" {
			continue
		}
		n, err := sprite.ProbeSheet(path, cfg.Sprites.FrameWidth)
		if err != nil {
			logger.Warn("using placeholder frame count", zap.Stringer("clip", clip), zap.Error(err))
			continue
		}
		counts[clip] = n
	}
	return counts
}
