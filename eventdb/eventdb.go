// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb keeps the history of pool events in sqlite.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/staking"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "eventdb")

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	account BLOB NOT NULL,
	amount TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_event_account ON event(account, seq);
CREATE INDEX IF NOT EXISTS idx_event_timestamp ON event(timestamp);`

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

// Range bounds events by timestamp, both ends inclusive. A To below From leaves the end open.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events. Nil fields match everything.
type Filter struct {
	Account *thor.Address       `json:"account"`
	Kinds   []staking.EventKind `json:"kinds"`
	Range   *Range              `json:"range"`
	Order   OrderType           `json:"order"` // default asc
	Options *Options            `json:"options"`
}

// Event is a stored pool event.
type Event struct {
	Seq uint64
	staking.Event
}

// EventDB manages all events
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New open a event db
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open event db")
	}
	if path == ":memory:" {
		// every connection would see its own database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create event table")
	}
	s, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", s)
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert stores events in one transaction.
func (db *EventDB) Insert(events []*staking.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, ev := range events {
		amount := "0"
		if ev.Amount != nil {
			amount = ev.Amount.String()
		}
		if _, err = tx.Exec("INSERT INTO event(kind, account, amount, timestamp) VALUES (?, ?, ?, ?);",
			string(ev.Kind),
			ev.Account.Bytes(),
			amount,
			ev.Timestamp); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Emit stores a single event as it happens.
func (db *EventDB) Emit(ev *staking.Event) error {
	return db.Insert([]*staking.Event{ev})
}

// Filter return events with options
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT seq, kind, account, amount, timestamp FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT seq, kind, account, amount, timestamp FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND timestamp >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND timestamp <= ? "
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}
	if len(filter.Kinds) > 0 {
		stmt += " AND kind IN (" + strings.TrimSuffix(strings.Repeat("?,", len(filter.Kinds)), ",") + ") "
		for _, k := range filter.Kinds {
			args = append(args, string(k))
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq       uint64
			kind      string
			account   []byte
			amount    string
			timestamp uint64
		)
		if err := rows.Scan(&seq, &kind, &account, &amount, &timestamp); err != nil {
			return nil, err
		}
		v, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, errors.Errorf("invalid amount %q at seq %d", amount, seq)
		}
		events = append(events, &Event{
			Seq: seq,
			Event: staking.Event{
				Kind:      staking.EventKind(kind),
				Account:   thor.BytesToAddress(account),
				Amount:    v,
				Timestamp: timestamp,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path return db's directory
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite
func (db *EventDB) Close() error {
	return db.db.Close()
}
