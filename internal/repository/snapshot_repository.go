// backend-go/internal/repository/snapshot_repository.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopsight/backend-go/internal/domain"
	"github.com/shopsight/backend-go/internal/repository/postgres"
)

// SnapshotRepository persists snapshot generations append-only. A new
// generation becomes visible only when the per-organization current pointer
// flips to it; a write that fails partway is never selected by Latest.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.InventorySnapshot) error
	Latest(ctx context.Context, organizationID string) (*domain.InventorySnapshot, error)
}

type snapshotRepository struct {
	db *postgres.DB
}

func NewSnapshotRepository(db *postgres.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save inserts the generation row and flips the current pointer in one
// transaction.
func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.InventorySnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO inventory_snapshots (id, organization_id, computed_at, analysis_window_days, payload)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.ExecContext(ctx, insert,
			snapshot.ID, snapshot.OrganizationID, snapshot.ComputedAt,
			snapshot.AnalysisWindowDays, payload); err != nil {
			return fmt.Errorf("error inserting snapshot generation: %w", err)
		}

		pointer := `
			INSERT INTO inventory_snapshot_current (organization_id, snapshot_id)
			VALUES ($1, $2)
			ON CONFLICT (organization_id) DO UPDATE SET snapshot_id = EXCLUDED.snapshot_id
		`
		if _, err := tx.ExecContext(ctx, pointer, snapshot.OrganizationID, snapshot.ID); err != nil {
			return fmt.Errorf("error updating snapshot pointer: %w", err)
		}

		return nil
	})
}

// Latest returns the current generation, or nil when the organization has
// no snapshot yet. Callers treat nil as empty-state, not an error.
func (r *snapshotRepository) Latest(ctx context.Context, organizationID string) (*domain.InventorySnapshot, error) {
	query := `
		SELECT s.payload
		FROM inventory_snapshot_current c
		JOIN inventory_snapshots s ON s.id = c.snapshot_id
		WHERE c.organization_id = $1
	`

	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, organizationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading latest snapshot: %w", err)
	}

	var snapshot domain.InventorySnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("error decoding snapshot payload: %w", err)
	}

	return &snapshot, nil
}
