package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/advisory"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/config"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/repository"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/service"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "kisan",
		Short:         "KisanAI conversational front-end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	root.AddCommand(newServeCmd(), newChatCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app bundles the components shared by every subcommand
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *repository.DB
	advisor  *advisory.Client
	sessions *service.SessionManager
}

func newApp(level zapcore.Level) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	resolver, err := i18n.NewResolver(cfg.I18n.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	// Locale preferences are best effort; run without them if the database is unusable.
	var storage service.StorageFactory
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Warn("Preference database unavailable, locale will not persist", zap.Error(err))
	} else {
		storage = func(clientID string) service.LocaleStorage {
			return repository.NewLocaleStore(db, clientID)
		}
	}

	advisor := advisory.NewClient(cfg.Advisory.BaseURL, cfg.Advisory.Timeout)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		advisor:  advisor,
		sessions: service.NewSessionManager(advisor, resolver, storage, logger,
			service.WithIdleTimeout(cfg.Server.SessionIdleTimeout),
		),
	}, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	_ = a.logger.Sync()
}

func newLogger(cfg *config.Config, level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level > zcfg.Level.Level() {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
