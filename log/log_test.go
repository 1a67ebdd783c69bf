// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h *captureHandler) WithGroup(string) slog.Handler           { return h }
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func attrs(r slog.Record) map[string]any {
	m := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	return m
}

func withCapture(t *testing.T) *captureHandler {
	prev := gethlog.Root()
	t.Cleanup(func() { gethlog.SetDefault(prev) })

	h := &captureHandler{}
	gethlog.SetDefault(gethlog.NewLogger(h))
	return h
}

func TestWithContextIsLazy(t *testing.T) {
	// created before the root handler is installed
	l := WithContext("pkg", "staking")
	h := withCapture(t)

	l.Info("staked", "amount", 100)
	require.Len(t, h.records, 1)
	assert.Equal(t, "staked", h.records[0].Message)
	assert.Equal(t, slog.LevelInfo, h.records[0].Level)
	got := attrs(h.records[0])
	assert.Equal(t, "staking", got["pkg"])
	assert.EqualValues(t, 100, got["amount"])
}

func TestWithDoesNotShareContext(t *testing.T) {
	h := withCapture(t)

	base := WithContext("pkg", "api")
	a := base.With("id", "a")
	b := base.With("id", "b")
	a.Debug("one")
	b.Warn("two")

	require.Len(t, h.records, 2)
	assert.Equal(t, "a", attrs(h.records[0])["id"])
	assert.Equal(t, "b", attrs(h.records[1])["id"])
	assert.Equal(t, slog.LevelWarn, h.records[1].Level)
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, LevelError, FromLegacyLevel(1))
	assert.Equal(t, LevelWarn, FromLegacyLevel(2))
	assert.Equal(t, LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelDebug, FromLegacyLevel(4))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}

func TestInstallJSON(t *testing.T) {
	prev := gethlog.Root()
	t.Cleanup(func() { gethlog.SetDefault(prev) })

	var buf bytes.Buffer
	h := Install(&buf, LevelInfo, true)

	WithContext("pkg", "test").Debug("hidden")
	assert.Zero(t, buf.Len())

	WithContext("pkg", "test").Info("shown", "n", 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])

	buf.Reset()
	assert.Equal(t, LevelInfo, h.Level())
	h.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, h.Level())
	Debug("now shown")
	assert.NotZero(t, buf.Len())
}
