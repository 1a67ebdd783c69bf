// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/api"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/cmd/stakepool/httpserver"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
)

const (
	maxClockOffset  = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	metricsEnabled := ctx.Bool(enableMetricsFlag.Name)
	if metricsEnabled {
		metrics.InitializePrometheusMetrics()
	}

	if server := ctx.String(ntpServerFlag.Name); server != "" {
		go clock.CheckOffset(server, maxClockOffset)
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing databases..."); inst.Close() }()

	d, err := inst.openDeployment(clock.NewSystem())
	if err != nil {
		return err
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler, closeSubs := api.New(d.Token, d.Pool, inst.eventDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		BacklogLimit:         ctx.Int(apiBacklogLimitFlag.Name),
		EventsLimit:          ctx.Uint64(apiEventsLimitFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableMetrics:        metricsEnabled,
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
	})

	if metricsEnabled {
		url, closeFn, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			closeSubs()
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFn() }()
		logger.Info("metrics server started", "url", url)
	}

	if ctx.Bool(enableAdminFlag.Name) {
		logHandler, ok := ctx.App.Metadata[logHandlerKey].(*log.Handler)
		if !ok {
			closeSubs()
			return errors.New("log handler not installed")
		}
		url, closeFn, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logHandler, apiLogs)
		if err != nil {
			closeSubs()
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeFn() }()
		logger.Info("admin server started", "url", url)
	}

	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		closeSubs()
		return errors.Wrapf(err, "listen API addr [%v]", addr)
	}

	logger.Info("API server started",
		"url", "http://"+listener.Addr().String()+"/",
		"token", d.Token.Address(),
		"pool", d.Pool.Address(),
	)
	if isLoopback(listener.Addr()) {
		logger.Warn("API is unauthenticated and moves funds for any address, use it for local development only")
	} else {
		logger.Warn("API is unauthenticated and exposed beyond loopback, any client can move funds for any address",
			"addr", listener.Addr().String())
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAPIServer(sigCtx, listener, handler, closeSubs)
}

// runAPIServer serves the API on listener until ctx is done or serving fails.
// isLoopback reports whether addr only accepts local connections.
func isLoopback(addr net.Addr) bool {
	tcp, ok := addr.(*net.TCPAddr)
	return ok && tcp.IP.IsLoopback()
}

func runAPIServer(ctx context.Context, listener net.Listener, handler http.Handler, closeSubs func()) error {
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve API")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping API server...")
		// hijacked websocket connections are not tracked by Shutdown
		closeSubs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
