// ABOUTME: Loads a full audit snapshot from the store
// ABOUTME: Fetches the three equipment inventories concurrently

package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ecg-energy/audit-analyzer/models"
)

// AuditReader is the read side of the store needed to assemble a snapshot
type AuditReader interface {
	GetAudit(id string) (models.AuditRecord, error)
	ListAirConditioning(auditID string) ([]models.AirConditioningItem, error)
	ListLighting(auditID string) ([]models.LightingItem, error)
	ListOtherEquipment(auditID string) ([]models.OtherEquipmentItem, error)
}

// SnapshotLoader assembles AuditSnapshots
type SnapshotLoader struct {
	reader AuditReader
}

// NewSnapshotLoader creates a loader over the given store
func NewSnapshotLoader(reader AuditReader) *SnapshotLoader {
	return &SnapshotLoader{reader: reader}
}

// Load fetches the audit record, then its inventories in parallel.
// Store errors such as store.ErrNotFound are returned wrapped.
func (l *SnapshotLoader) Load(ctx context.Context, auditID string) (models.AuditSnapshot, error) {
	var snap models.AuditSnapshot

	audit, err := l.reader.GetAudit(auditID)
	if err != nil {
		return snap, fmt.Errorf("loading audit %s: %w", auditID, err)
	}
	snap.Audit = audit

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		items, err := l.reader.ListAirConditioning(auditID)
		if err != nil {
			return fmt.Errorf("loading air conditioning: %w", err)
		}
		snap.AirConditioning = items
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		items, err := l.reader.ListLighting(auditID)
		if err != nil {
			return fmt.Errorf("loading lighting: %w", err)
		}
		snap.Lighting = items
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		items, err := l.reader.ListOtherEquipment(auditID)
		if err != nil {
			return fmt.Errorf("loading other equipment: %w", err)
		}
		snap.OtherEquipment = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.AuditSnapshot{}, err
	}
	return snap, nil
}
