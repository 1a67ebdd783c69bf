// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/log"
)

// maxLoggedBody caps the request body echoed into a log record.
const maxLoggedBody = 1024

// RequestLoggerMiddleware logs every request while enabled is set. Requests
// slower than slowQueriesThreshold are logged anyway, unless it is zero.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowQueriesThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slowQueriesThreshold == 0 && !enabled.Load() {
				next.ServeHTTP(w, r)
				return
			}

			var body []byte
			if r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("failed to read request body", "uri", r.URL.String(), "err", err)
					http.Error(w, "unable to read body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			slow := slowQueriesThreshold > 0 && elapsed > slowQueriesThreshold
			if !slow && !enabled.Load() {
				return
			}
			if len(body) > maxLoggedBody {
				body = append(body[:maxLoggedBody:maxLoggedBody], "..."...)
			}
			logger.Info("API Request",
				"method", r.Method,
				"uri", r.URL.String(),
				"status", sw.status,
				"duration_ms", elapsed.Milliseconds(),
				"slow", slow,
				"body", string(body),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection over to websocket upgrades.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("hijack not supported")
}
