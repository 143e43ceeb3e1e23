package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/setlist/internal/config"
	"github.com/five82/setlist/internal/fallback"
	"github.com/five82/setlist/internal/localstore"
	"github.com/five82/setlist/internal/logging"
	"github.com/five82/setlist/internal/monitor"
	"github.com/five82/setlist/internal/prefs"
	"github.com/five82/setlist/internal/query"
	"github.com/five82/setlist/internal/remote"
	"github.com/five82/setlist/internal/seed"
	"github.com/five82/setlist/internal/ui"
)

// Options configure the setlist application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/setlist/prefs.toml
	// Ephemeral keeps local records in memory for this run only.
	Ephemeral bool
	// Interactive routes logs to the configured log file, or drops them, so
	// they do not draw over the terminal browser.
	Interactive bool
}

// App holds the wired components shared by the CLI and the browser.
type App struct {
	Config  config.Config
	Log     *zap.Logger
	Remote  *remote.Client
	Data    *fallback.Client
	Monitor *monitor.Monitor

	prefsPath string
	backend   localstore.Backend
}

// New loads configuration and builds every component. Callers must Close
// the returned App.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg, opts.Interactive)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	storeKind := cfg.StoreBackend
	if opts.Ephemeral {
		storeKind = config.StoreMemory
	}
	backend, err := openBackend(storeKind, cfg)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open local store: %w", err)
	}

	client, err := remote.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		_ = backend.Close()
		_ = log.Sync()
		return nil, fmt.Errorf("init remote client: %w", err)
	}

	data := fallback.New(fallback.Options{
		API:         client,
		Seed:        seed.Default(),
		Local:       fallback.OpenLocal(backend, log.Named("localstore")),
		Logger:      log.Named("fallback"),
		CallTimeout: cfg.RequestTimeout,
	})

	mon := monitor.New(client, monitor.Options{
		Interval:     cfg.ProbeInterval,
		ProbeTimeout: cfg.RequestTimeout,
		Logger:       log.Named("monitor"),
	})

	log.Debug("setlist initialized",
		zap.String("api", client.BaseURL()),
		zap.String("store", storeKind),
		zap.String("data_dir", cfg.DataDir),
	)

	return &App{
		Config:    cfg,
		Log:       log,
		Remote:    client,
		Data:      data,
		Monitor:   mon,
		prefsPath: opts.PrefsPath,
		backend:   backend,
	}, nil
}

// Browse runs the terminal browser until the user quits or ctx is
// cancelled. The availability monitor runs for the lifetime of the view.
func (a *App) Browse(ctx context.Context) error {
	userPrefs, _ := prefs.Load(a.prefsPath)
	sortKey, err := query.ParseSortKey(userPrefs.Sort)
	if err != nil {
		a.Log.Warn("ignoring stored sort preference", zap.String("sort", userPrefs.Sort))
	}

	a.Monitor.Start(ctx)
	defer a.Monitor.Stop()

	return ui.Run(ctx, ui.Options{
		Data:      a.Data,
		Monitor:   a.Monitor,
		Logger:    a.Log.Named("ui"),
		ThemeName: userPrefs.Theme,
		Sort:      sortKey,
		PrefsPath: a.prefsPath,
	})
}

// Close stops the monitor, closes the local store and flushes the logger.
func (a *App) Close() error {
	a.Monitor.Stop()
	err := a.backend.Close()
	// Sync on stderr returns EINVAL on some platforms; it is not actionable.
	_ = a.Log.Sync()
	return err
}

func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	if !interactive {
		return logging.NewLogger(cfg.LogLevel, "")
	}
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	return logging.NewLogger(cfg.LogLevel, cfg.LogFile)
}

func openBackend(kind string, cfg config.Config) (localstore.Backend, error) {
	switch kind {
	case config.StoreMemory:
		return localstore.NewMemoryBackend(), nil
	case config.StoreSQLite:
		db, err := localstore.OpenSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.StoreFile, "":
		dir, err := localstore.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", kind)
	}
}
