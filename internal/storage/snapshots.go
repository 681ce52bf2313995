package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"repertoire/internal/models"
)

// ErrNoSnapshot indicates the store holds no snapshot yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotInfo describes one stored dataset snapshot.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveSnapshot stores the dataset as a new snapshot and returns its ID. The
// payload is the dataset's JSON form, reloaded verbatim by LatestSnapshot.
func (s *DB) SaveSnapshot(ctx context.Context, ds *models.Dataset, source string) (string, error) {
	payload, err := json.Marshal(ds)
	if err != nil {
		return "", fmt.Errorf("encoding dataset: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, payload) VALUES (?, ?, ?)`,
		id, source, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}
	return id, nil
}

// LatestSnapshot returns the most recently stored dataset, or ErrNoSnapshot.
func (s *DB) LatestSnapshot(ctx context.Context) (*models.Dataset, *SnapshotInfo, error) {
	var (
		info    SnapshotInfo
		payload string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, payload, created_at FROM snapshots ORDER BY created_at DESC, id LIMIT 1`,
	).Scan(&info.ID, &info.Source, &payload, &info.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying snapshot: %w", err)
	}

	ds := models.NewDataset()
	if err := json.Unmarshal([]byte(payload), ds); err != nil {
		return nil, nil, fmt.Errorf("decoding snapshot %s: %w", info.ID, err)
	}
	return ds, &info, nil
}

// PruneSnapshots deletes all but the newest keep snapshots and returns the
// number removed.
func (s *DB) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY created_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return res.RowsAffected()
}
