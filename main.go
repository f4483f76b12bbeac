//
// blogconsole
// ===========
// A console for the blog backend: public pages, the admin area behind a
// session guard and, in development, a proxy for /api and /uploads.
//
// Print the route docs:
// ---------------------
// $ go run . -routes
//
// Boot the console:
// -----------------
// $ BLOGCONSOLE_BACKEND_ORIGIN=http://127.0.0.1:8080 go run . -proxy
//
// $ curl http://localhost:3333/article/1
// {"id":1,"title":"Hi",...,"url":"/article/1","edit_url":"/admin/articles/edit/1"}
//
// $ curl -i http://localhost:3333/admin/dashboard
// HTTP/1.1 302 Found
// Location: /admin/login?redirect=%2Fadmin%2Fdashboard
//
// $ curl -i -X POST -d '{"secret_key":"..."}' -H 'Content-Type: application/json' \
//     'http://localhost:3333/admin/login?redirect=%2Fadmin%2Fdashboard'
// HTTP/1.1 303 See Other
// Location: /admin/dashboard
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
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogconsole/client"
	"github.com/SergeyParamoshkin/blogconsole/internal/config"
	"github.com/SergeyParamoshkin/blogconsole/internal/devproxy"
	"github.com/SergeyParamoshkin/blogconsole/internal/diag"
	"github.com/SergeyParamoshkin/blogconsole/internal/router"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

const (
	ServiceName     = "blogconsole"
	shutdownTimeout = 5 * time.Second
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      config.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// nolint
func run() error {
	var (
		routes   = flag.Bool("routes", config.GetEnvBool("BLOGCONSOLE_ROUTES", false), "Generate router documentation")
		cfgPath  = flag.String("config", config.GetEnv("BLOGCONSOLE_CONFIG", ""), "YAML config file")
		addr     = flag.String("addr", "", "application address (overrides server.addr)")
		diagAddr = flag.String("diag_addr", "", "diag address (overrides server.diag_addr)")
		origin   = flag.String("origin", "", "blog backend origin (overrides backend.origin)")
		proxy    = flag.Bool("proxy", false, "forward /api and /uploads to the backend")
	)

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *diagAddr != "" {
		cfg.Server.DiagAddr = *diagAddr
	}
	if *origin != "" {
		cfg.Backend.Origin = *origin
	}
	if *proxy {
		cfg.Proxy.Enabled = true
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() // flushes buffer, if any

	a := App{
		sugarLogger: logger.Sugar().With("service", ServiceName),
		config:      cfg,
	}

	exporter, err := diag.NewExporter()
	if err != nil {
		return err
	}

	r, err := a.router()
	if err != nil {
		return err
	}

	// Passing -routes prints the console routes and exits.
	if *routes {
		// nolint
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blogconsole",
			Intro:       "Routes served by the blog console.",
		}))

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.serve(ctx,
		&http.Server{Addr: cfg.Server.Addr, Handler: r},
		&http.Server{Addr: cfg.Server.DiagAddr, Handler: diag.Router(exporter)},
	)
}

func (a *App) router() (chi.Router, error) {
	store := session.NewFileStore(a.config.Session.Path)
	blog := client.NewBlog(a.config.Backend.Origin, store,
		client.WithLogger(a.sugarLogger),
		client.WithTimeout(a.config.Backend.Timeout),
		client.WithRedirect(func(path string) {
			a.sugarLogger.Infow("admin session ended", "login", path)
		}),
	)

	deps := router.Deps{
		Backend: blog,
		Store:   store,
		Logger:  a.sugarLogger,
		About: router.About{
			Name:    ServiceName,
			Backend: a.config.Backend.Origin,
		},
	}

	if a.config.Proxy.Enabled {
		p, err := devproxy.New(a.config.Backend.Origin, a.sugarLogger)
		if err != nil {
			return nil, err
		}
		deps.Proxy = p
		a.sugarLogger.Infow("dev proxy enabled", "origin", a.config.Backend.Origin, "prefixes", devproxy.Prefixes)
	}

	return router.New(deps)
}

// serve runs every server until ctx is done or one of them fails, then
// shuts them all down.
func (a *App) serve(ctx context.Context, servers ...*http.Server) error {
	errc := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			err := srv.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			errc <- err
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		a.sugarLogger.Infow("shutting down")
	case err = <-errc:
		a.sugarLogger.Errorw("server stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		err = multierr.Append(err, srv.Shutdown(shutdownCtx))
	}

	return err
}
