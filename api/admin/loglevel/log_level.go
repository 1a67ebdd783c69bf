// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/log"
)

var logger = log.WithContext("pkg", "loglevel")

// Leveler is a log handler whose verbosity can be read and changed at runtime.
type Leveler interface {
	Level() slog.Level
	SetLevel(slog.Level)
}

var levels = []struct {
	name  string
	level slog.Level
}{
	{"trace", log.LevelTrace},
	{"debug", log.LevelDebug},
	{"info", log.LevelInfo},
	{"warn", log.LevelWarn},
	{"error", log.LevelError},
	{"crit", log.LevelCrit},
}

func parseLevel(name string) (slog.Level, bool) {
	for _, l := range levels {
		if strings.EqualFold(l.name, name) {
			return l.level, true
		}
	}
	return 0, false
}

func levelName(lvl slog.Level) string {
	for _, l := range levels {
		if l.level == lvl {
			return l.name
		}
	}
	return strings.ToLower(lvl.String())
}

type Request struct {
	Level string `json:"level"`
}

type Response struct {
	CurrentLevel string `json:"currentLevel"`
}

type LogLevel struct {
	leveler Leveler
}

func New(leveler Leveler) *LogLevel {
	return &LogLevel{leveler}
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /admin/loglevel").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLevel))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /admin/loglevel").
		HandlerFunc(utils.WrapHandlerFunc(l.handleSetLevel))
}

func (l *LogLevel) current() *Response {
	return &Response{levelName(l.leveler.Level())}
}

func (l *LogLevel) handleGetLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) handleSetLevel(w http.ResponseWriter, r *http.Request) error {
	var req Request
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	lvl, ok := parseLevel(req.Level)
	if !ok {
		return utils.BadRequest(errors.Errorf("invalid verbosity level %q", req.Level))
	}
	prev := l.leveler.Level()
	l.leveler.SetLevel(lvl)
	logger.Info("log level changed", "from", levelName(prev), "to", levelName(lvl))

	return utils.WriteJSON(w, l.current())
}
