package store

import (
	"database/sql"
	"errors"
	"time"
)

// Snapshot is one saved canvas export: the flattened PNG plus metadata.
type Snapshot struct {
	ID        string
	Name      string
	Width     int
	Height    int
	PNG       []byte
	CreatedAt time.Time
}

// SnapshotRepository provides CRUD operations for canvas snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// Snapshots returns the snapshot repository for this store.
func (s *Store) Snapshots() *SnapshotRepository {
	return &SnapshotRepository{db: s.db}
}

// Create inserts a new snapshot. The caller supplies the ID.
func (r *SnapshotRepository) Create(snap *Snapshot) error {
	snap.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO snapshots (id, name, width, height, png, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Name, snap.Width, snap.Height, snap.PNG, snap.CreatedAt,
	)
	return err
}

// GetByID retrieves a snapshot, including its PNG data.
func (r *SnapshotRepository) GetByID(id string) (*Snapshot, error) {
	snap := &Snapshot{}

	err := r.db.QueryRow(
		`SELECT id, name, width, height, png, created_at
		 FROM snapshots WHERE id = ?`,
		id,
	).Scan(&snap.ID, &snap.Name, &snap.Width, &snap.Height, &snap.PNG, &snap.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return snap, nil
}

// List retrieves all snapshot metadata, newest first. PNG data is omitted;
// use GetByID to fetch the image itself.
func (r *SnapshotRepository) List() ([]*Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT id, name, width, height, created_at
		 FROM snapshots ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		snap := &Snapshot{}
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Width, &snap.Height, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snaps, nil
}

// Delete removes a snapshot by ID.
func (r *SnapshotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
