// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Signal is a broadcast point that waiters can select on.
// The zero value is ready to use.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

// round returns the channel closed by the next broadcast. s.mu must be held.
func (s *Signal) round() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes every waiter of the current round.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}

// Waiter follows the rounds of a Signal. Broadcasts that happen between
// creating the waiter and waiting on it are not lost.
type Waiter struct {
	s   *Signal
	ref chan struct{}
}

// NewWaiter creates a waiter bound to the current round.
func (s *Signal) NewWaiter() *Waiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Waiter{s: s, ref: s.round()}
}

// C returns the channel of the round the waiter is on and moves it to the
// latest round.
func (w *Waiter) C() <-chan struct{} {
	ch := w.ref

	w.s.mu.Lock()
	w.ref = w.s.round()
	w.s.mu.Unlock()

	return ch
}
