// Package main runs underbrush, on this terminal or as a telnet server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/config"
	"github.com/cory-johannsen/underbrush/internal/frontend/console"
	"github.com/cory-johannsen/underbrush/internal/frontend/telnet"
	"github.com/cory-johannsen/underbrush/internal/game/action"
	"github.com/cory-johannsen/underbrush/internal/game/dice"
	"github.com/cory-johannsen/underbrush/internal/i18n"
	"github.com/cory-johannsen/underbrush/internal/observability"
	"github.com/cory-johannsen/underbrush/internal/options"
	"github.com/cory-johannsen/underbrush/internal/server"
	"github.com/cory-johannsen/underbrush/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/underbrush.yaml", "path to configuration file")
	mode := flag.String("mode", "", "override server.mode: console or telnet")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *mode != "" {
		cfg.Server.Mode = *mode
		if err := cfg.Validate(); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("underbrush stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()
	lifecycle := server.NewLifecycle(logger)

	content, err := console.LoadContent(cfg.Game)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	logger.Info("content loaded",
		zap.String("level", content.Level.ID),
		zap.String("dir", cfg.Game.ContentDir),
	)

	store, err := optionStore(ctx, cfg, lifecycle, logger)
	if err != nil {
		return err
	}
	opts, err := loadOptions(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	boot := i18n.New(i18n.Config{
		BasePath:  cfg.Language.BasePath,
		NamesFile: cfg.Language.NamesFile,
	}, opts, i18n.NewNames(), logger)
	if err := boot.SetLanguage(); err != nil {
		return fmt.Errorf("setting language: %w", err)
	}
	boot.UpdateGlobalLocale()

	settings := console.Settings{
		Action: action.Config{TileIso: cfg.Game.TileIso, TrigDist: cfg.Game.TrigDist},
		Color:  cfg.Game.Color,
	}
	play := func(ctx context.Context, term console.Terminal, logger *zap.Logger) error {
		s, err := console.NewSession(term, content, settings, opts, boot, dice.NewCryptoSource(), logger)
		if err != nil {
			return fmt.Errorf("starting game: %w", err)
		}
		defer s.Close()
		return s.Run(ctx)
	}

	switch cfg.Server.Mode {
	case config.ModeTelnet:
		acceptor := telnet.NewAcceptor(cfg.Telnet, telnet.HandlerFunc(func(ctx context.Context, conn *telnet.Conn) error {
			return play(ctx, conn, logger.With(zap.Stringer("remote_addr", conn.RemoteAddr())))
		}), logger)
		lifecycle.Add("telnet", &server.FuncService{
			StartFn: acceptor.Serve,
			StopFn:  acceptor.Stop,
		})
	default:
		term := console.NewStdio(os.Stdin, os.Stdout)
		lifecycle.Add("console", &server.FuncService{
			StartFn: func(ctx context.Context) error { return play(ctx, term, logger) },
		})
	}

	logger.Info("underbrush initialized",
		zap.String("mode", cfg.Server.Mode),
		zap.String("language", opts.String(options.UseLang)),
		zap.Duration("startup", time.Since(start)),
	)
	return lifecycle.Run(ctx)
}

// optionStore opens the configured option store. A postgres store also
// registers a pool health service.
func optionStore(ctx context.Context, cfg config.Config, lifecycle *server.Lifecycle, logger *zap.Logger) (options.Store, error) {
	if cfg.Language.OptionsStore != config.StorePostgres {
		return options.NewFileStore(cfg.Language.OptionsFile), nil
	}
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	stop := make(chan struct{})
	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				case <-stop:
					return nil
				case <-ctx.Done():
					return nil
				}
			}
		},
		StopFn: func() {
			close(stop)
			pool.Close()
		},
	})
	return postgres.NewOptionRepository(pool.DB(), cfg.Language.Profile), nil
}

// loadOptions builds the option set, seeds the boolean defaults from the
// game config, then applies stored values and the configured language.
func loadOptions(ctx context.Context, cfg config.Config, store options.Store, logger *zap.Logger) (*options.Manager, error) {
	var langs []options.Item
	for _, l := range i18n.Languages() {
		langs = append(langs, options.Item{ID: l.ID, Name: l.Name})
	}
	opts := options.NewManager(store, logger, options.Defaults(langs)...)
	for name, v := range map[string]bool{
		options.AutoFeatures: cfg.Game.AutoFeatures,
		options.AutoMining:   cfg.Game.AutoMining,
		options.SafeMode:     cfg.Game.SafeMode,
	} {
		if err := opts.Set(name, strconv.FormatBool(v)); err != nil {
			return nil, err
		}
	}
	if err := opts.Load(ctx); err != nil {
		return nil, err
	}
	if lang := cfg.Language.UseLang; lang != "" {
		if err := opts.Set(options.UseLang, lang); err != nil {
			return nil, fmt.Errorf("language.use_lang: %w", err)
		}
	}
	return opts, nil
}
