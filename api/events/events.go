// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

// New serves the events kept in db. limit bounds the page size, a request
// without a limit gets at most limit events.
func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{db, limit}
}

func parseUint(q url.Values, name string) (uint64, bool, error) {
	s := q.Get(name)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, utils.BadRequest(errors.WithMessage(err, name))
	}
	return v, true, nil
}

func (e *Events) parseFilter(q url.Values) (*eventdb.Filter, error) {
	filter := &eventdb.Filter{
		Options: &eventdb.Options{Limit: e.limit},
	}

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

	from, hasFrom, err := parseUint(q, "from")
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseUint(q, "to")
	if err != nil {
		return nil, err
	}
	switch {
	case hasTo:
		if to < from {
			return nil, utils.BadRequest(errors.New("to: must not be less than from"))
		}
		filter.Range = &eventdb.Range{From: from, To: to}
	case hasFrom && from > 0:
		// a To below From leaves the range open ended
		filter.Range = &eventdb.Range{From: from}
	}

	switch order := eventdb.OrderType(q.Get("order")); order {
	case "", eventdb.ASC:
	case eventdb.DESC:
		filter.Order = eventdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: must be %q or %q", eventdb.ASC, eventdb.DESC))
	}

	offset, _, err := parseUint(q, "offset")
	if err != nil {
		return nil, err
	}
	filter.Options.Offset = offset

	limit, hasLimit, err := parseUint(q, "limit")
	if err != nil {
		return nil, err
	}
	if hasLimit {
		if limit > e.limit {
			return nil, utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
		}
		filter.Options.Limit = limit
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	evs, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	filtered := make([]*FilteredEvent, 0, len(evs))
	for _, ev := range evs {
		filtered = append(filtered, convertEvent(ev))
	}
	return utils.WriteJSON(w, filtered)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
