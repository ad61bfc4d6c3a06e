// ABOUTME: Equipment inventory persistence for the three item kinds
// ABOUTME: Generic row helpers keyed by audit ID; every change touches the parent audit

package store

import "github.com/ecg-energy/audit-analyzer/models"

// rowKeys tells the generic helpers how to read and stamp a row's identifiers
type rowKeys[T any] struct {
	id    func(T) string
	audit func(T) string
	stamp func(t *T, id, auditID string)
}

var acRows = rowKeys[models.AirConditioningItem]{
	id:    func(it models.AirConditioningItem) string { return it.ID },
	audit: func(it models.AirConditioningItem) string { return it.AuditID },
	stamp: func(it *models.AirConditioningItem, id, auditID string) { it.ID, it.AuditID = id, auditID },
}

var lightingRows = rowKeys[models.LightingItem]{
	id:    func(it models.LightingItem) string { return it.ID },
	audit: func(it models.LightingItem) string { return it.AuditID },
	stamp: func(it *models.LightingItem, id, auditID string) { it.ID, it.AuditID = id, auditID },
}

var otherRows = rowKeys[models.OtherEquipmentItem]{
	id:    func(it models.OtherEquipmentItem) string { return it.ID },
	audit: func(it models.OtherEquipmentItem) string { return it.AuditID },
	stamp: func(it *models.OtherEquipmentItem, id, auditID string) { it.ID, it.AuditID = id, auditID },
}

func addRow[T any](s *Store, rows *[]T, k rowKeys[T], auditID string, item T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.auditIndexLocked(auditID) < 0 {
		return zero, ErrNotFound
	}
	k.stamp(&item, NewID(), auditID)
	*rows = append(*rows, item)
	untouch := s.touchAuditLocked(auditID)
	if err := s.saveLocked(); err != nil {
		*rows = (*rows)[:len(*rows)-1]
		untouch()
		return zero, err
	}
	return item, nil
}

func listRows[T any](s *Store, rows *[]T, k rowKeys[T], auditID string) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.auditIndexLocked(auditID) < 0 {
		return nil, ErrNotFound
	}
	out := []T{}
	for _, r := range *rows {
		if k.audit(r) == auditID {
			out = append(out, r)
		}
	}
	return out, nil
}

func updateRow[T any](s *Store, rows *[]T, k rowKeys[T], auditID, itemID string, item T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range *rows {
		if k.id(r) != itemID || k.audit(r) != auditID {
			continue
		}
		prev := r
		k.stamp(&item, itemID, auditID)
		(*rows)[i] = item
		untouch := s.touchAuditLocked(auditID)
		if err := s.saveLocked(); err != nil {
			(*rows)[i] = prev
			untouch()
			return zero, err
		}
		return item, nil
	}
	return zero, ErrNotFound
}

func deleteRow[T any](s *Store, rows *[]T, k rowKeys[T], auditID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range *rows {
		if k.id(r) == itemID && k.audit(r) == auditID {
			prev := *rows
			*rows = removeAt(prev, i)
			untouch := s.touchAuditLocked(auditID)
			if err := s.saveLocked(); err != nil {
				*rows = prev
				untouch()
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}

// removeAudit returns a new slice without the audit's rows, leaving rows untouched
func removeAudit[T any](rows []T, auditID string, k rowKeys[T]) []T {
	kept := make([]T, 0, len(rows))
	for _, r := range rows {
		if k.audit(r) != auditID {
			kept = append(kept, r)
		}
	}
	return kept
}

// AddAirConditioning appends an AC unit to an audit
func (s *Store) AddAirConditioning(auditID string, item models.AirConditioningItem) (models.AirConditioningItem, error) {
	return addRow(s, &s.data.AirConditioning, acRows, auditID, item)
}

// ListAirConditioning returns an audit's AC units in insertion order
func (s *Store) ListAirConditioning(auditID string) ([]models.AirConditioningItem, error) {
	return listRows(s, &s.data.AirConditioning, acRows, auditID)
}

func (s *Store) UpdateAirConditioning(auditID, itemID string, item models.AirConditioningItem) (models.AirConditioningItem, error) {
	return updateRow(s, &s.data.AirConditioning, acRows, auditID, itemID, item)
}

func (s *Store) DeleteAirConditioning(auditID, itemID string) error {
	return deleteRow(s, &s.data.AirConditioning, acRows, auditID, itemID)
}

// AddLighting appends a lighting row to an audit
func (s *Store) AddLighting(auditID string, item models.LightingItem) (models.LightingItem, error) {
	return addRow(s, &s.data.Lighting, lightingRows, auditID, item)
}

func (s *Store) ListLighting(auditID string) ([]models.LightingItem, error) {
	return listRows(s, &s.data.Lighting, lightingRows, auditID)
}

func (s *Store) UpdateLighting(auditID, itemID string, item models.LightingItem) (models.LightingItem, error) {
	return updateRow(s, &s.data.Lighting, lightingRows, auditID, itemID, item)
}

func (s *Store) DeleteLighting(auditID, itemID string) error {
	return deleteRow(s, &s.data.Lighting, lightingRows, auditID, itemID)
}

// AddOtherEquipment appends a miscellaneous equipment row to an audit
func (s *Store) AddOtherEquipment(auditID string, item models.OtherEquipmentItem) (models.OtherEquipmentItem, error) {
	return addRow(s, &s.data.OtherEquipment, otherRows, auditID, item)
}

func (s *Store) ListOtherEquipment(auditID string) ([]models.OtherEquipmentItem, error) {
	return listRows(s, &s.data.OtherEquipment, otherRows, auditID)
}

func (s *Store) UpdateOtherEquipment(auditID, itemID string, item models.OtherEquipmentItem) (models.OtherEquipmentItem, error) {
	return updateRow(s, &s.data.OtherEquipment, otherRows, auditID, itemID, item)
}

func (s *Store) DeleteOtherEquipment(auditID, itemID string) error {
	return deleteRow(s, &s.data.OtherEquipment, otherRows, auditID, itemID)
}
