// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"context"
	"sync"
)

// Goes tracks a group of goroutines. The zero value is ready to use.
type Goes struct {
	wg sync.WaitGroup
}

// Go runs f in a tracked goroutine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every tracked goroutine has returned.
func (g *Goes) Wait() { g.wg.Wait() }

// Done is closed once every tracked goroutine has returned.
// Each call spawns a goroutine that lives until then.
func (g *Goes) Done() <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(ch)
	}()
	return ch
}

// WaitContext is Wait bounded by ctx.
func (g *Goes) WaitContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.Done():
		return nil
	}
}
