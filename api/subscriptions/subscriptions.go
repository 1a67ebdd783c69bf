// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/thor"
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveCount = metrics.LazyLoadGaugeVec("api_active_websocket_count", []string{"subject"})
)

const (
	maxBacklog = 1000
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 7) / 10
)

type entry struct {
	ev   *staking.Event
	data []byte
}

// Subscriptions fans pool events out to websocket subscribers.
// It is registered with the pool as an event sink.
type Subscriptions struct {
	upgrader *websocket.Upgrader
	backlog  int

	mu      sync.RWMutex
	entries []entry
	next    uint64 // index of the next emitted event

	signal co.Signal
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates the subscriptions. backlog is the number of recent events kept
// for subscribers that fall behind, at most 1000.
func New(allowedOrigins []string, backlog int) *Subscriptions {
	if backlog > maxBacklog {
		backlog = maxBacklog
	}
	if backlog < 1 {
		backlog = 1
	}
	return &Subscriptions{
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		backlog: backlog,
		done:    make(chan struct{}),
	}
}

// Emit queues ev for all subscribers.
func (s *Subscriptions) Emit(ev *staking.Event) error {
	cpy := *ev
	if ev.Amount != nil {
		cpy.Amount = new(big.Int).Set(ev.Amount)
	}
	data, err := json.Marshal(newEventMessage(&cpy))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry{&cpy, data})
	if over := len(s.entries) - s.backlog; over > 0 {
		s.entries = append(s.entries[:0:0], s.entries[over:]...)
	}
	s.next++
	s.mu.Unlock()

	s.signal.Broadcast()
	return nil
}

// read returns the entries from index on, and the index to continue with.
// ok is false when the entries at index were already dropped.
func (s *Subscriptions) read(index uint64) (entries []entry, next uint64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	base := s.next - uint64(len(s.entries))
	if index < base {
		return nil, s.next, false
	}
	return s.entries[index-base:], s.next, true
}

func (s *Subscriptions) head() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.next
}

func parseEventFilter(req *http.Request) (*EventFilter, error) {
	q := req.URL.Query()
	filter := &EventFilter{}
	if s := q.Get("account"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}
	for _, s := range q["kind"] {
		kind, ok := staking.ParseEventKind(s)
		if !ok {
			return nil, utils.BadRequest(fmt.Errorf("kind: unknown event kind %q", s))
		}
		filter.Kinds = append(filter.Kinds, kind)
	}
	return filter, nil
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req)
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return utils.HTTPError(errors.New("service closed"), http.StatusServiceUnavailable)
	default:
	}

	// start from the events emitted after the handshake
	waiter := s.signal.NewWaiter()
	index := s.head()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}

	id := uuid.New()
	s.wg.Add(1)
	metricActiveCount().AddWithLabel(1, map[string]string{"subject": "event"})
	defer func() {
		metricActiveCount().AddWithLabel(-1, map[string]string{"subject": "event"})
		conn.Close()
		s.wg.Done()
	}()

	logger.Debug("subscriber joined", "id", id, "remote", req.RemoteAddr)
	if err := s.pipe(conn, filter, waiter, index); err != nil {
		logger.Debug("subscriber left", "id", id, "err", err)
	}
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, filter *EventFilter, waiter *co.Waiter, index uint64) error {
	closed := make(chan struct{})
	// the read loop handles pongs and notices the peer going away
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		entries, next, ok := s.read(index)
		if !ok {
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscriber lagged behind")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return errors.New("lagged behind")
		}
		for _, e := range entries {
			if !filter.Match(e.ev) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, e.data); err != nil {
				return err
			}
		}
		index = next

		select {
		case <-waiter.C():
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return errors.New("connection closed")
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "service closed")
			return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		}
	}
}

// Close stops all subscribers and waits for their connections, which were
// hijacked from the http server, to be released.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("WS /subscriptions/events").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
