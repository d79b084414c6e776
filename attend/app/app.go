package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yogansh2008/AutoAttendDevArc/attend/config"
	"github.com/yogansh2008/AutoAttendDevArc/attend/db"
	"github.com/yogansh2008/AutoAttendDevArc/attend/importer"
	logpkg "github.com/yogansh2008/AutoAttendDevArc/attend/logger"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
	platformplugins "github.com/yogansh2008/AutoAttendDevArc/attend/platform/plugins"
	"github.com/yogansh2008/AutoAttendDevArc/attend/worker"
)

// App wires all application dependencies.
type App struct {
	Config          *config.Config
	Logger          *logpkg.Logger
	DB              *db.Repository
	Pool            *worker.Pool
	PlatformManager *platform.DefaultManager
	Importer        *importer.Importer
	Build           BuildInfo
}

// BuildInfo provides build-time metadata.
type BuildInfo struct {
	RuntimeVer string
	BinVersion string
	CommitSHA  string
	BuildTime  string
	BuildArch  string
}

// Options controls what New sets up.
type Options struct {
	ConfigPath string
	// Store opens the database. Commands that only resolve leave it off.
	Store bool
	// LogOutput overrides the console log writer.
	LogOutput io.Writer
	Build     BuildInfo
}

// New builds the application container.
func New(ctx context.Context, opts Options) (*App, error) {
	conf, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	log, err := logpkg.New(logpkg.Options{
		Level:     conf.GetString("LogLevel"),
		Format:    conf.GetString("LogFormat"),
		AddSource: conf.GetBool("LogSource"),
		Dir:       conf.GetString("LogDir"),
		Output:    opts.LogOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{
		Config: conf,
		Logger: log,
		Build:  opts.Build,
	}

	a.PlatformManager = platform.NewManager()
	for _, loaded := range platformplugins.Load(conf, log) {
		for _, p := range loaded.Platforms {
			a.PlatformManager.Register(p)
		}
		log.Debug("plugin loaded", "plugin", loaded.Name, "priority", loaded.Priority, "platforms", len(loaded.Platforms))
	}
	if len(a.PlatformManager.List()) == 0 {
		_ = a.Shutdown(ctx)
		return nil, fmt.Errorf("no platforms enabled")
	}

	a.Pool = worker.New(conf.GetInt("WorkerPoolSize"))

	if opts.Store {
		repo, err := openRepository(conf, log)
		if err != nil {
			_ = a.Shutdown(ctx)
			return nil, err
		}
		a.DB = repo
	}

	importOpts := []importer.Option{
		importer.WithRateLimit(conf.GetFloat64("ImportRateLimit"), conf.GetInt("ImportRateBurst")),
	}
	if a.DB != nil {
		a.Importer = importer.New(a.PlatformManager, a.DB, a.Pool, log, importOpts...)
	} else {
		a.Importer = importer.New(a.PlatformManager, nil, a.Pool, log, importOpts...)
	}

	return a, nil
}

func openRepository(conf *config.Config, log *logpkg.Logger) (*db.Repository, error) {
	gormLogger := logpkg.NewGormLogger(log.Slog(), logpkg.ParseGormLevel(conf.GetString("GormLogLevel")))
	databasePath := strings.TrimSpace(conf.GetString("Database"))
	if databasePath == "" {
		databasePath = "links.db"
	}

	repo, err := db.NewSQLiteRepository(databasePath, gormLogger)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	poolMaxOpen := conf.GetInt("DBMaxOpenConns")
	poolMaxIdle := conf.GetInt("DBMaxIdleConns")
	poolMaxLifetimeSec := conf.GetInt("DBConnMaxLifetimeSec")
	if err := repo.ConfigurePool(poolMaxOpen, poolMaxIdle, time.Duration(poolMaxLifetimeSec)*time.Second); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("configure db pool: %w", err)
	}
	return repo, nil
}

// DefaultPlatform returns the configured platform for commands that do not
// name one, if it is registered.
func (a *App) DefaultPlatform() (string, bool) {
	name := strings.TrimSpace(a.Config.GetString("DefaultPlatform"))
	if name == "" {
		return "", false
	}
	return a.PlatformManager.ResolveAlias(name)
}

// Shutdown releases resources in reverse order of creation.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if a.Pool != nil {
		if err := a.Pool.Shutdown(ctx); err != nil {
			a.Pool.StopNow()
			if firstErr == nil {
				firstErr = fmt.Errorf("shutdown worker pool: %w", err)
			}
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("failed to close database", "error", err)
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("close database: %w", err)
			}
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("close logger: %w", err)
			}
		}
	}

	return firstErr
}
