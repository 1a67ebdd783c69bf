// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the logging facade used across the repository. Records are
// forwarded to the go-ethereum slog based root logger, so every package can
// hold a package-level logger created before the root handler is installed.
package log

import (
	"context"
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// Levels, aliased from go-ethereum.
const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

// Legacy verbosity values accepted by the command line (0 = crit ... 5 = trace).
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes key/value pair messages.
type Logger interface {
	With(ctx ...any) Logger
	Enabled(level slog.Level) bool

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

type logger struct {
	ctx []any
}

// WithContext returns a logger which always prepends ctx to the record attributes.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

// Root returns the context-free logger.
func Root() Logger {
	return &logger{}
}

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &logger{ctx: append(merged, ctx...)}
}

func (l *logger) Enabled(level slog.Level) bool {
	return gethlog.Root().Enabled(context.Background(), level)
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	if len(l.ctx) == 0 {
		gethlog.Root().Log(level, msg, ctx...)
		return
	}
	all := make([]any, 0, len(l.ctx)+len(ctx))
	all = append(all, l.ctx...)
	gethlog.Root().Log(level, msg, append(all, ctx...)...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

// Crit logs and terminates the process.
func (l *logger) Crit(msg string, ctx ...any) {
	all := append(append([]any{}, l.ctx...), ctx...)
	gethlog.Root().Crit(msg, all...)
}

// Convenience wrappers around the root logger.

func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }
