package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skillforge/internal/config"
	"github.com/udisondev/skillforge/internal/db"
	"github.com/udisondev/skillforge/internal/skill"
)

const ConfigPath = "config/skillserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("SKILLFORGE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("skillforge starting", "log_level", cfg.LogLevel, "skills_path", cfg.SkillsPath)

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	manager := skill.NewManager(
		skill.WithPermissionPrefix(cfg.PermissionPrefix),
		skill.WithLevelInheritance(cfg.InheritLevel),
	).RegisterDefaults()

	skillRepo := db.NewSkillRepository(database.Pool())

	reload := func() error {
		if err := manager.LoadAll(cfg.SkillsPath); err != nil {
			return fmt.Errorf("loading skills: %w", err)
		}
		if err := skillRepo.ReplaceAll(ctx, manager.Hierarchy().All()); err != nil {
			return fmt.Errorf("persisting skill definitions: %w", err)
		}
		return nil
	}
	if err := reload(); err != nil {
		return err
	}
	slog.Info("skills loaded", "count", manager.Hierarchy().Len())

	g, ctx := errgroup.WithContext(ctx)

	// Wholesale reload on SIGHUP. A failed reload keeps the previous
	// definitions wiped only from the manager, so the error is fatal.
	g.Go(func() error {
		hupCh := make(chan os.Signal, 1)
		signal.Notify(hupCh, syscall.SIGHUP)
		defer signal.Stop(hupCh)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-hupCh:
				slog.Info("reloading skill configuration")
				if err := reload(); err != nil {
					return err
				}
				slog.Info("skills reloaded", "count", manager.Hierarchy().Len())
			}
		}
	})

	return g.Wait()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
