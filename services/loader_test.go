// ABOUTME: Tests for snapshot loading
// ABOUTME: Uses an in-memory reader to verify assembly and error propagation

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ecg-energy/audit-analyzer/models"
)

var errBoom = errors.New("boom")

type fakeReader struct {
	audit     models.AuditRecord
	auditErr  error
	lighting  []models.LightingItem
	listErr   error
	listCalls int
}

func (f *fakeReader) GetAudit(id string) (models.AuditRecord, error) {
	if f.auditErr != nil {
		return models.AuditRecord{}, f.auditErr
	}
	return f.audit, nil
}

func (f *fakeReader) ListAirConditioning(string) ([]models.AirConditioningItem, error) {
	return []models.AirConditioningItem{{RoomName: "101"}}, nil
}

func (f *fakeReader) ListLighting(string) ([]models.LightingItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lighting, nil
}

func (f *fakeReader) ListOtherEquipment(string) ([]models.OtherEquipmentItem, error) {
	return []models.OtherEquipmentItem{}, nil
}

func TestSnapshotLoader_Load(t *testing.T) {
	r := &fakeReader{
		audit:    models.AuditRecord{ID: "a1", ClientName: "Acme"},
		lighting: []models.LightingItem{{RoomName: "Hall"}, {RoomName: "Office"}},
	}

	snap, err := NewSnapshotLoader(r).Load(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Audit.ClientName != "Acme" {
		t.Errorf("Audit.ClientName = %q, want Acme", snap.Audit.ClientName)
	}
	if len(snap.AirConditioning) != 1 || len(snap.Lighting) != 2 || snap.OtherEquipment == nil {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestSnapshotLoader_AuditError(t *testing.T) {
	r := &fakeReader{auditErr: errBoom}
	_, err := NewSnapshotLoader(r).Load(context.Background(), "a1")
	if !errors.Is(err, errBoom) {
		t.Errorf("Load error = %v, want wrapped errBoom", err)
	}
}

func TestSnapshotLoader_ListError(t *testing.T) {
	r := &fakeReader{listErr: errBoom}
	snap, err := NewSnapshotLoader(r).Load(context.Background(), "a1")
	if !errors.Is(err, errBoom) {
		t.Errorf("Load error = %v, want wrapped errBoom", err)
	}
	if snap.AirConditioning != nil {
		t.Error("expected empty snapshot on error")
	}
}

func TestSnapshotLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSnapshotLoader(&fakeReader{}).Load(ctx, "a1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load error = %v, want context.Canceled", err)
	}
}
