package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/grafana/dskit/modules"
	"github.com/grafana/dskit/server"
	"github.com/grafana/dskit/services"
	"github.com/pkg/errors"

	"github.com/zachfi/stationd/modules/ingester"
	"github.com/zachfi/stationd/modules/nowplaying"
	"github.com/zachfi/stationd/pkg/radiobrowser"
	"github.com/zachfi/stationd/pkg/store"
)

const (
	Server string = "server"

	Store string = "store"

	Ingester string = "ingester"

	NowPlaying string = "nowplaying"

	All string = "all"
)

func (a *App) setupModuleManager() error {
	mm := modules.NewManager(kitlog.NewLogfmtLogger(os.Stderr))
	mm.RegisterModule(Server, a.initServer, modules.UserInvisibleModule)
	mm.RegisterModule(Store, a.initStore, modules.UserInvisibleModule)

	mm.RegisterModule(Ingester, a.initIngester)
	mm.RegisterModule(NowPlaying, a.initNowPlaying)

	mm.RegisterModule(All, nil)

	deps := map[string][]string{
		Ingester:   {Server, Store},
		NowPlaying: {Server, Store},

		All: {Ingester, NowPlaying},
	}

	for mod, targets := range deps {
		if err := mm.AddDependency(mod, targets...); err != nil {
			return err
		}
	}

	a.ModuleManager = mm

	return nil
}

func (a *App) initStore() (services.Service, error) {
	s, err := store.New(a.cfg.Store, a.logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}

	a.store = s

	// The module framework stops this only after its dependents stopped, so
	// the database stays open for as long as anything can reach it.
	return services.NewIdleService(nil, func(_ error) error {
		return s.Close()
	}), nil
}

func (a *App) initIngester() (services.Service, error) {
	cfg := a.cfg.Ingester

	if cfg.DiscoverMirror && cfg.SourceURL == "" {
		mirror, err := radiobrowser.DiscoverMirror(context.Background(), cfg.RequestTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "failed to discover directory mirror")
		}
		cfg.SourceURL = mirror
	}

	source := radiobrowser.New(cfg.SourceURL, cfg.RequestTimeout, &a.logger)

	i, err := ingester.New(cfg, a.logger, source, a.store)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init "+Ingester)
	}

	return i, nil
}

func (a *App) initNowPlaying() (services.Service, error) {
	n, err := nowplaying.New(a.cfg.NowPlaying, a.logger, a.store)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init "+NowPlaying)
	}

	a.Server.HTTP.Path("/stations/{slug}/nowplaying").Methods("GET").Handler(n.Handler())

	return n, nil
}

func (a *App) initServer() (services.Service, error) {
	a.cfg.Server.MetricsNamespace = metricsNamespace
	a.cfg.Server.ExcludeRequestInLog = true
	a.cfg.Server.RegisterInstrumentation = true
	a.cfg.Server.Log = kitlog.NewLogfmtLogger(os.Stderr)

	server, err := server.New(a.cfg.Server)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create server")
	}

	servicesToWaitFor := func() []services.Service {
		svs := []services.Service(nil)
		for m, s := range a.serviceMap {
			// Server should not wait for itself.
			if m != Server {
				svs = append(svs, s)
			}
		}

		return svs
	}

	a.Server = server

	serverDone := make(chan error, 1)

	runFn := func(ctx context.Context) error {
		go func() {
			defer close(serverDone)
			serverDone <- server.Run()
		}()

		select {
		case <-ctx.Done():
			return nil
		case err := <-serverDone:
			if err != nil {
				return err
			}

			return fmt.Errorf("server stopped unexpectedly")
		}
	}

	stoppingFn := func(_ error) error {
		// wait until all modules are done, and then shutdown server.
		for _, s := range servicesToWaitFor() {
			_ = s.AwaitTerminated(context.Background())
		}

		// shutdown HTTP and gRPC servers (this also unblocks Run)
		server.Shutdown()

		// if not closed yet, wait until server stops.
		<-serverDone
		slog.Info("server stopped")
		return nil
	}

	return services.NewBasicService(nil, runFn, stoppingFn), nil
}
