//
// NEWSBOARD
// =========
// A small link-sharing service: users post articles, comment on them and
// vote on both. State lives in memory and is snapshotted after every change.
//
// Pass -routes to print the route documentation instead of serving:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ go run . -snapshot yaml -data ./database
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"username":"alice"}' http://localhost:3333/users
// {"user":{"username":"alice","articleIds":[],"commentIds":[]}}
//
// $ curl -X POST -d '{"article":{"title":"Hi","url":"http://hi","username":"alice"}}' http://localhost:3333/articles
// {"article":{"id":1,"title":"Hi","url":"http://hi","username":"alice","commentIds":[],"upvotedBy":[],"downvotedBy":[]}}
//
// $ curl -X PUT -d '{"username":"alice"}' http://localhost:3333/articles/1/upvote
// {"article":{"id":1,...,"upvotedBy":["alice"],"downvotedBy":[]}}
//
// $ curl -X DELETE http://localhost:3333/articles/1
// (204, empty body)
//
// $ curl http://localhost:9999/metrics
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/newsboard/internal/api"
	"github.com/SergeyParamoshkin/newsboard/internal/config"
	"github.com/SergeyParamoshkin/newsboard/internal/content"
	"github.com/SergeyParamoshkin/newsboard/internal/snapshot"
	"github.com/SergeyParamoshkin/newsboard/internal/telemetry"
)

const ServiceName = "newsboard"

const shutdownTimeout = 10 * time.Second

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
}

func main() {
	var (
		configPath = flag.String("config", os.Getenv(config.EnvPrefix+"CONFIG"), "path to a TOML config file")
		routes     = flag.Bool("routes", false, "Generate router documentation")
		addr       = flag.String("addr", "", "application address (overrides config)")
		diagAddr   = flag.String("diag_addr", "", "diagnostics address (overrides config)")
		driver     = flag.String("snapshot", "", "snapshot driver: yaml, badger or none (overrides config)")
		dataDir    = flag.String("data", "", "snapshot directory (overrides config)")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.ApplyEnv()
	overrideString(&cfg.Server.Addr, *addr)
	overrideString(&cfg.Server.DiagAddr, *diagAddr)
	overrideString(&cfg.Snapshot.Driver, *driver)
	overrideString(&cfg.Snapshot.Dir, *dataDir)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync() // flushes buffer, if any

	a := App{
		sugarLogger: logger.Sugar().With("service", ServiceName),
		config:      cfg,
	}

	if err := a.run(*routes); err != nil {
		a.sugarLogger.Errorw("exit", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func (a *App) run(printRoutes bool) error {
	exporter, err := telemetry.NewExporter()
	if err != nil {
		return fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	metrics := telemetry.NewMetrics(global.Meter(ServiceName))
	defer metrics.Close()

	gateway, closeGateway, err := a.openGateway()
	if err != nil {
		return err
	}
	defer closeGateway()

	manager := content.NewManager(
		content.WithGateway(gateway),
		content.WithLogger(a.sugarLogger.Named("content")),
		content.WithObserver(metrics),
	)

	r := api.New(manager, a.sugarLogger, metrics).Router()

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if printRoutes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/newsboard",
			Intro:       "Routes served by newsboard. Paths are classified before matching, see internal/route.",
		}))

		return nil
	}

	// Persistence failures never stop the service.
	_ = manager.Load(context.Background())

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)
	diagRouter.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("pong")); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	return a.serve(map[string]http.Handler{
		a.config.Server.Addr:     r,
		a.config.Server.DiagAddr: diagRouter,
	})
}

// serve runs one server per address until a signal arrives or any of them
// fails, then shuts all of them down.
func (a *App) serve(handlers map[string]http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	for addr, h := range handlers {
		srv := &http.Server{Addr: addr, Handler: h}

		g.Go(func() error {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}

			return nil
		})

		g.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func (a *App) openGateway() (content.Gateway, func(), error) {
	driver := a.config.SnapshotDriver()
	a.sugarLogger.Infow("snapshot gateway", "driver", driver, "dir", a.config.Snapshot.Dir)

	switch driver {
	case config.DriverYAML:
		return snapshot.NewYAML(a.config.Snapshot.Dir), func() {}, nil
	case config.DriverBadger:
		b, err := snapshot.OpenBadger(snapshot.BadgerConfig{
			Path:   a.config.Snapshot.Dir,
			Logger: a.sugarLogger.Named("badger"),
		})
		if err != nil {
			return nil, nil, err
		}

		return b, func() {
			if err := b.Close(); err != nil {
				a.sugarLogger.Errorw("close badger", "error", err)
			}
		}, nil
	default:
		return snapshot.Nop{}, func() {}, nil
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = level
	}

	return zc.Build()
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
