// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves the token, the staking pool and its event history over http.
package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/events"
	"github.com/vechain/stakepool/api/middleware"
	"github.com/vechain/stakepool/api/pool"
	"github.com/vechain/stakepool/api/subscriptions"
	"github.com/vechain/stakepool/api/tokens"
	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	BacklogLimit         int
	EventsLimit          uint64
	PprofOn              bool
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
}

// New return api router. The returned close func releases the hijacked
// websocket connections.
func New(
	tok *token.Token,
	stakingPool *staking.Pool,
	eventDB *eventdb.EventDB,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	tokens.New(tok).
		Mount(router, "/token")
	pool.New(stakingPool).
		Mount(router, "/staking")
	if eventDB != nil {
		events.New(eventDB, opts.EventsLimit).
			Mount(router, "/events")
	}
	subs := subscriptions.New(origins, opts.BacklogLimit)
	stakingPool.AddSink(subs)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	enableReqLogger := opts.EnableReqLogger
	if enableReqLogger == nil {
		enableReqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enableReqLogger, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.ExposedHeaders([]string{utils.RevertDataHeader}),
	)(handler)

	return handler.ServeHTTP, subs.Close
}
