package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/gamedesk/internal/app/api"
	"github.com/bnema/gamedesk/internal/app/store"
	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/cli"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	domainurl "github.com/bnema/gamedesk/internal/domain/url"
	"github.com/bnema/gamedesk/internal/infrastructure/cdp"
	"github.com/bnema/gamedesk/internal/infrastructure/config"
	"github.com/bnema/gamedesk/internal/infrastructure/headless"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/bnema/gamedesk/internal/ui/coordinator"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// rootNativeID is the native window id of the root window.
const rootNativeID = 1

var (
	runEngine  string
	runControl bool
)

var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Start the client",
	Long: `Start the client with its browsing engine. The root window opens on url,
or on the storefront home page.

Examples:
  gamedesk run
  gamedesk run https://itch.io/games/free
  gamedesk run --engine headless --control`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runEngine, "engine", "", "surface engine: chrome or headless (overrides engine.kind)")
	runCmd.Flags().BoolVar(&runControl, "control", false, "enable the control API (overrides control.enabled)")
}

type engine interface {
	port.BrowserEngine
	open(nativeID int, content entity.Bounds)
	Close() error
}

type chromeEngine struct{ *cdp.Engine }

func (e chromeEngine) open(nativeID int, content entity.Bounds) { e.OpenWindow(nativeID, content) }

type headlessEngine struct{ *headless.Engine }

func (e headlessEngine) open(nativeID int, content entity.Bounds) { e.OpenWindow(nativeID, content) }
func (headlessEngine) Close() error { return nil }

func newEngine(ctx context.Context, cfg config.EngineConfig) (engine, error) {
	switch cfg.Kind {
	case config.EngineHeadless:
		return headlessEngine{headless.New(headless.WithLoadDelay(100 * time.Millisecond))}, nil
	case config.EngineChrome, "":
		e, err := cdp.New(ctx, cdp.Config{
			RemoteURL:   cfg.RemoteURL,
			ExecPath:    cfg.ExecPath,
			UserDataDir: cfg.UserDataDir,
			Headless:    cfg.Headless,
			Width:       cfg.Width,
			Height:      cfg.Height,
		})
		if err != nil {
			return nil, err
		}
		return chromeEngine{e}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Kind)
	}
}

func coordinatorOptions(cfg *config.Config) coordinator.Options {
	return coordinator.Options{
		DevTools:         cfg.Web.DevTools,
		DontShowWebviews: cfg.Web.DontShowWebviews,
		PrimaryDomain:    cfg.Web.PrimaryDomain,
	}
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	if runEngine != "" {
		cfg.Engine.Kind = config.EngineKind(runEngine)
	}
	if cmd.Flags().Changed("control") {
		cfg.Control.Enabled = runControl
	}

	ctx, stop := signal.NotifyContext(logging.WithComponent(app.Ctx(), "run"), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)
	log.Info().
		Str("version", app.BuildInfo.Version).
		Str("engine", string(cfg.Engine.Kind)).
		Msg("starting gamedesk")

	eng, err := newEngine(ctx, cfg.Engine)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Warn().Err(err).Msg("engine close failed")
		}
	}()

	loop := mainloop.New()
	defer loop.Close()
	watcher := store.NewWatcher()
	st := store.New(ctx, loop, watcher)

	registry := coordinator.NewSurfaceRegistry()
	webContents := coordinator.NewWebContentsCoordinator(eng, registry, loop, st, coordinatorOptions(cfg))
	webContents.Register(watcher)
	defer webContents.Close()
	coordinator.NewShellCoordinator(eng, coordinator.DefaultChromeHeight).Register(watcher)

	uploads, err := app.UploadFinder(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("butler unavailable, uploads will not be listed")
		uploads = cli.DisabledUploadFinder()
	}
	manageGame := usecase.NewManageGameUseCase(app.Caves, app.Credentials(st.UserID), uploads, st)
	coordinator.NewLibraryCoordinator(manageGame, loop).Register(watcher)

	app.Manager.OnConfigChange(func(next *config.Config) {
		log.Info().Msg("configuration reloaded")
		webContents.SetOptions(coordinatorOptions(next))
	})
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("could not watch configuration")
	}

	bootstrap(ctx, app.Accounts, st, eng, cfg, args)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	if cfg.Control.Enabled {
		handler := api.NewServer(gctx, api.Deps{
			Store:    st,
			Loop:     loop,
			Registry: registry,
			Games:    app.Games,
		})
		g.Go(func() error {
			return api.Serve(gctx, cfg.Control.Listen, handler)
		})
	}

	err = g.Wait()
	log.Info().Msg("gamedesk stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type accountFinder interface {
	Latest(ctx context.Context) (*entity.Account, error)
}

// bootstrap logs the last account in and opens the root window on its
// first page.
func bootstrap(ctx context.Context, accounts accountFinder, st *store.Store, eng engine, cfg *config.Config, args []string) {
	log := logging.FromContext(ctx)

	account, err := accounts.Latest(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("could not load accounts")
	case account != nil:
		log.Info().Str("user", account.Username).Msg("logged in")
		st.Dispatch(action.ProfileLoggedIn{UserID: account.UserID})
	default:
		log.Info().Msg("no account, browsing anonymously")
	}

	eng.open(rootNativeID, entity.Bounds{Width: cfg.Engine.Width, Height: cfg.Engine.Height})
	st.Dispatch(action.WindowOpened{Window: entity.RootWindow, NativeID: rootNativeID})

	domain := cfg.Web.PrimaryDomain
	if domain == "" {
		domain = domainurl.DefaultPrimaryDomain
	}
	url := "https://" + domain + "/"
	if len(args) > 0 {
		url = domainurl.Normalize(args[0])
	}
	st.Dispatch(action.NewNavigate(entity.RootWindow, url, false))
}
