// Package cli wires the command-line application: configuration, logging,
// the local state database and the background service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/cli/styles"
	"github.com/bnema/gamedesk/internal/domain/build"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/infrastructure/butler"
	"github.com/bnema/gamedesk/internal/infrastructure/cache"
	"github.com/bnema/gamedesk/internal/infrastructure/config"
	"github.com/bnema/gamedesk/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/gamedesk/internal/logging"
)

// ErrButlerDisabled is returned by upload lookups when no background
// service is configured.
var ErrButlerDisabled = errors.New("butler is disabled")

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	DB       *sqlite.LazyDB
	Games    repository.GameRepository
	Caves    repository.CaveRepository
	Keys     repository.DownloadKeyRepository
	Accounts repository.AccountRepository

	Library *usecase.ListLibraryUseCase

	ctx     context.Context
	logFile io.Closer
	butler  *butler.Client
}

// NewApp loads the configuration and builds the dependencies. The database
// opens on first use.
func NewApp(opts ...config.Option) (*App, error) {
	mgr, err := config.NewManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logCfg.TimeFormat = "15:04:05"

	var logFile io.Closer
	if cfg.Logging.File.Enabled {
		w, fileErr := logging.NewFileWriter(logging.FileConfig{
			Dir:        cfg.Logging.File.Dir,
			MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAgeDays: cfg.Logging.File.MaxAgeDays,
			Compress:   cfg.Logging.File.Compress,
		}, logging.GenerateSessionID())
		if fileErr != nil {
			return nil, fmt.Errorf("open log file: %w", fileErr)
		}
		logCfg.File = w
		logFile = w
	}

	logger := logging.New(logCfg)
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config", mgr.ConfigFile()).Str("db_path", cfg.Database.Path).Msg("configuration loaded")

	db := sqlite.NewLazyDB(cfg.Database.Path)
	games := sqlite.NewLazyGameRepository(db)
	caves := sqlite.NewLazyCaveRepository(db)

	return &App{
		Config:   cfg,
		Manager:  mgr,
		Theme:    styles.NewTheme(),
		DB:       db,
		Games:    games,
		Caves:    caves,
		Keys:     sqlite.NewLazyDownloadKeyRepository(db),
		Accounts: sqlite.NewLazyAccountRepository(db),
		Library:  usecase.NewListLibraryUseCase(games, caves),
		ctx:      ctx,
		logFile:  logFile,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Credentials returns a resolver for the given user; zero picks the most
// recently connected account.
func (a *App) Credentials(userID func() int64) *usecase.GameCredentialsResolver {
	return usecase.NewGameCredentialsResolver(a.Accounts, a.Keys, userID)
}

// UploadFinder connects to the background service and wraps it in the
// upload cache. Without a configured service every lookup fails with
// ErrButlerDisabled.
func (a *App) UploadFinder(ctx context.Context) (port.UploadFinder, error) {
	cfg := a.Config
	if !cfg.Butler.Enabled || cfg.Butler.Address == "" {
		return disabledFinder{}, nil
	}

	client, err := butler.Dial(ctx, butler.Config{
		Address: cfg.Butler.Address,
		Secret:  cfg.Butler.Secret,
		Timeout: time.Duration(cfg.Butler.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	a.butler = client

	return cache.NewUploadFinder(
		client,
		cfg.Uploads.CacheEntries,
		time.Duration(cfg.Uploads.CacheTTLSeconds)*time.Second,
	), nil
}

// Close releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.butler != nil {
		errs = append(errs, a.butler.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// DisabledUploadFinder returns a finder failing every lookup with
// ErrButlerDisabled.
func DisabledUploadFinder() port.UploadFinder {
	return disabledFinder{}
}

type disabledFinder struct{}

func (disabledFinder) FindUploads(context.Context, *entity.Game, entity.GameCredentials) ([]entity.Upload, error) {
	return nil, ErrButlerDisabled
}
