// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpserver runs the auxiliary metrics and admin endpoints next to the API.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/log"
)

const shutdownTimeout = 2 * time.Second

var logger = log.WithContext("pkg", "httpserver")

// start serves handler on addr until the returned close func is called.
// Closing waits up to shutdownTimeout for in-flight requests.
func start(name, addr string, handler http.Handler) (net.Addr, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("server stopped", "name", name, "err", err)
		}
	})
	return listener.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
		}
		if err := goes.WaitContext(ctx); err != nil {
			logger.Warn("server did not stop in time", "name", name)
		}
	}, nil
}
