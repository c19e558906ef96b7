package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
)

const (
	defaultEventPageSize = 50
	maxEventPageSize     = 200
)

// AppendEvent assigns the next deployment sequence, links the event into the
// hash chain, and inserts it.
func (t *tx) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if strings.TrimSpace(evt.DeploymentID) == "" {
		return event.Event{}, event.ErrDeploymentIDRequired
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)
	if len(evt.PayloadJSON) == 0 {
		evt.PayloadJSON = []byte("{}")
	}

	var (
		lastSeq  int64
		prevHash string
	)
	err := t.q.QueryRowContext(
		ctx,
		`SELECT seq, chain_hash
		   FROM events
		  WHERE deployment_id = ?
		  ORDER BY seq DESC
		  LIMIT 1`,
		evt.DeploymentID,
	).Scan(&lastSeq, &prevHash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, fmt.Errorf("load previous event: %w", err)
	}
	evt.Seq = uint64(lastSeq) + 1

	hash, err := event.EventHash(evt)
	if err != nil {
		return event.Event{}, fmt.Errorf("compute event hash: %w", err)
	}
	evt.Hash = hash
	chainHash, err := event.ChainHash(evt, prevHash)
	if err != nil {
		return event.Event{}, fmt.Errorf("compute chain hash: %w", err)
	}
	evt.PrevHash = prevHash
	evt.ChainHash = chainHash

	_, err = t.q.ExecContext(
		ctx,
		`INSERT INTO events (
		   deployment_id, seq, game_id, event_type, tick, timestamp, actor_id,
		   request_id, invocation_id, payload_json, event_hash, prev_hash, chain_hash
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.DeploymentID,
		toInt64(evt.Seq),
		evt.GameID,
		string(evt.Type),
		toInt64(evt.Tick),
		toMillis(evt.Timestamp),
		evt.ActorID,
		evt.RequestID,
		evt.InvocationID,
		evt.PayloadJSON,
		evt.Hash,
		evt.PrevHash,
		evt.ChainHash,
	)
	if err != nil {
		if isConstraintError(err) {
			return event.Event{}, fmt.Errorf("append event: %w", storage.ErrAlreadyExists)
		}
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}
	return evt, nil
}

// ListEvents returns journal events after query.AfterSeq in sequence order.
// NextPageToken is the last returned sequence when more events remain.
func (s *Store) ListEvents(ctx context.Context, query storage.ListEventsQuery) (storage.EventPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.EventPage{}, err
	}
	deploymentID := strings.TrimSpace(query.DeploymentID)
	if deploymentID == "" {
		return storage.EventPage{}, fmt.Errorf("deployment id is required")
	}
	pageSize := query.PageSize
	switch {
	case pageSize <= 0:
		pageSize = defaultEventPageSize
	case pageSize > maxEventPageSize:
		pageSize = maxEventPageSize
	}

	clauses := []string{"deployment_id = ?", "seq > ?"}
	args := []any{deploymentID, toInt64(query.AfterSeq)}
	if gameID := strings.TrimSpace(query.GameID); gameID != "" {
		clauses = append(clauses, "game_id = ?")
		args = append(args, gameID)
	}
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT deployment_id, seq, game_id, event_type, tick, timestamp, actor_id,
		        request_id, invocation_id, payload_json, event_hash, prev_hash, chain_hash
		   FROM events
		  WHERE `+strings.Join(clauses, " AND ")+`
		  ORDER BY seq ASC
		  LIMIT ?`,
		args...,
	)
	if err != nil {
		return storage.EventPage{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	page := storage.EventPage{Events: make([]event.Event, 0, pageSize)}
	for rows.Next() {
		var (
			evt       event.Event
			eventType string
			seq, tick int64
			timestamp int64
		)
		if err := rows.Scan(
			&evt.DeploymentID,
			&seq,
			&evt.GameID,
			&eventType,
			&tick,
			&timestamp,
			&evt.ActorID,
			&evt.RequestID,
			&evt.InvocationID,
			&evt.PayloadJSON,
			&evt.Hash,
			&evt.PrevHash,
			&evt.ChainHash,
		); err != nil {
			return storage.EventPage{}, fmt.Errorf("list events: %w", err)
		}
		evt.Seq = fromInt64(seq)
		evt.Type = event.Type(eventType)
		evt.Tick = fromInt64(tick)
		evt.Timestamp = fromMillis(timestamp)
		page.Events = append(page.Events, evt)
	}
	if err := rows.Err(); err != nil {
		return storage.EventPage{}, fmt.Errorf("list events: %w", err)
	}
	if len(page.Events) > pageSize {
		page.Events = page.Events[:pageSize]
		page.NextPageToken = strconv.FormatUint(page.Events[pageSize-1].Seq, 10)
	}
	return page, nil
}
