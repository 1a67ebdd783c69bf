// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// FromLegacyLevel converts a 0-5 verbosity into a slog level.
// Values above the trace level are clamped to trace.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl <= LegacyLevelCrit:
		return LevelCrit
	case lvl == LegacyLevelError:
		return LevelError
	case lvl == LegacyLevelWarn:
		return LevelWarn
	case lvl == LegacyLevelInfo:
		return LevelInfo
	case lvl == LegacyLevelDebug:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// Handler is the installed root handler; its verbosity can be changed at runtime.
type Handler struct {
	glog  *gethlog.GlogHandler
	level atomic.Int64
}

// Level returns the minimum level of emitted records.
func (h *Handler) Level() slog.Level {
	return slog.Level(h.level.Load())
}

// SetLevel adjusts the minimum level of emitted records.
func (h *Handler) SetLevel(lvl slog.Level) {
	h.glog.Verbosity(lvl)
	h.level.Store(int64(lvl))
}

// Install builds a terminal or JSON handler on w, filtered at lvl, and makes it the root handler.
// Terminal output is colored when w is a tty.
func Install(w io.Writer, lvl slog.Level, asJSON bool) *Handler {
	var inner slog.Handler
	if asJSON {
		inner = gethlog.JSONHandlerWithLevel(w, LevelTrace)
	} else {
		inner = gethlog.NewTerminalHandlerWithLevel(w, LevelTrace, useColor(w))
	}
	h := &Handler{glog: gethlog.NewGlogHandler(inner)}
	h.SetLevel(lvl)
	gethlog.SetDefault(gethlog.NewLogger(h.glog))
	return h
}

// Discard silences the root logger.
func Discard() {
	gethlog.SetDefault(gethlog.NewLogger(gethlog.DiscardHandler()))
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
}
