package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo with ent's SQL builder.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.SessionID == "" {
		return errors.New("snapshot needs a session id")
	}
	if !json.Valid(snap.Data) {
		return errors.New("snapshot data is not valid JSON")
	}
	if snap.Sequence == 0 {
		seq, err := r.seq.Current(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(snapshotsTable).
		Columns("sequence", "timestamp", "session_id", "data").
		Values(snap.Sequence, toMillis(snap.Timestamp), snap.SessionID, string(snap.Data)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, sessionID string) (*Snapshot, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "session_id", "data").
		From(builder().Table(snapshotsTable)).
		OrderBy(entsql.Desc("id")).
		Limit(1)
	if sessionID != "" {
		sel.Where(entsql.EQ("session_id", sessionID))
	}
	query, args := sel.Query()

	var (
		snap Snapshot
		ms   int64
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &ms, &snap.SessionID, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	snap.Timestamp = fromMillis(ms)
	snap.Data = json.RawMessage(data)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the newest snapshot past the first keep.
	query, args := builder().
		Select("id").
		From(builder().Table(snapshotsTable)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Offset(max(keep, 0)).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(snapshotsTable).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
