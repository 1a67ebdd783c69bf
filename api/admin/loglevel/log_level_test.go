// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/log"
)

type levelVar struct {
	slog.LevelVar
}

func (v *levelVar) SetLevel(l slog.Level) { v.Set(l) }

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		code   int
		want   string // currentLevel on success, the error otherwise
		level  slog.Level
	}{
		{"set debug", http.MethodPost, `{"level":"debug"}`, http.StatusOK, "debug", log.LevelDebug},
		{"set crit", http.MethodPost, `{"level":"crit"}`, http.StatusOK, "crit", log.LevelCrit},
		{"case insensitive", http.MethodPost, `{"level":"WARN"}`, http.StatusOK, "warn", log.LevelWarn},
		{"unknown level", http.MethodPost, `{"level":"loud"}`, http.StatusBadRequest, `invalid verbosity level "loud"`, log.LevelInfo},
		{"unknown field", http.MethodPost, `{"lvl":"debug"}`, http.StatusBadRequest, "", log.LevelInfo},
		{"get", http.MethodGet, "", http.StatusOK, "info", log.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lv levelVar
			lv.Set(log.LevelInfo)

			router := mux.NewRouter()
			New(&lv).Mount(router, "/admin/loglevel")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, "/admin/loglevel", strings.NewReader(tt.body)))

			require.Equal(t, tt.code, rr.Code, rr.Body.String())
			assert.Equal(t, tt.level, lv.Level())
			if tt.code == http.StatusOK {
				var res Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
				assert.Equal(t, tt.want, res.CurrentLevel)
			} else if tt.want != "" {
				assert.Equal(t, tt.want, strings.TrimSpace(rr.Body.String()))
			}
		})
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "trace", levelName(log.LevelTrace))
	assert.Equal(t, "debug+1", levelName(log.LevelDebug+1))
}
