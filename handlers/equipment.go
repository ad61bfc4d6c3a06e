// ABOUTME: HTTP handlers for the three equipment inventories of an audit
// ABOUTME: One set of handlers serves air-conditioning, lighting and other-equipment

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
)

// Path segments for the inventory kinds
const (
	kindAirConditioning = "air-conditioning"
	kindLighting        = "lighting"
	kindOtherEquipment  = "other-equipment"
)

// ListEquipment returns one inventory of the audit
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	var (
		items any
		err   error
	)
	switch kind := mux.Vars(r)["kind"]; kind {
	case kindAirConditioning:
		items, err = h.store.ListAirConditioning(audit.ID)
	case kindLighting:
		items, err = h.store.ListLighting(audit.ID)
	case kindOtherEquipment:
		items, err = h.store.ListOtherEquipment(audit.ID)
	default:
		h.writeError(w, "Unknown equipment kind", http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// AddEquipment validates and appends an item to one inventory
func (h *Handler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	item, ok := h.decodeEquipment(w, r)
	if !ok {
		return
	}

	saved, err := h.saveEquipment(audit.ID, "", item)
	if err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return
	}
	slog.Debug("Equipment added", "audit_id", audit.ID, "category", saved.Category(), "item_id", saved.ItemID())
	h.writeJSON(w, http.StatusCreated, saved)
}

// UpdateEquipment replaces an item in one inventory
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	itemID := mux.Vars(r)["itemID"]
	if err := services.ValidateID(itemID); err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	item, ok := h.decodeEquipment(w, r)
	if !ok {
		return
	}

	saved, err := h.saveEquipment(audit.ID, itemID, item)
	if err != nil {
		h.writeStoreError(w, err, "Equipment item not found")
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// DeleteEquipment removes an item from one inventory
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	itemID := vars["itemID"]
	if err := services.ValidateID(itemID); err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	var err error
	switch vars["kind"] {
	case kindAirConditioning:
		err = h.store.DeleteAirConditioning(audit.ID, itemID)
	case kindLighting:
		err = h.store.DeleteLighting(audit.ID, itemID)
	case kindOtherEquipment:
		err = h.store.DeleteOtherEquipment(audit.ID, itemID)
	default:
		h.writeError(w, "Unknown equipment kind", http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeStoreError(w, err, "Equipment item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeEquipment reads the item type selected by {kind} and validates it
func (h *Handler) decodeEquipment(w http.ResponseWriter, r *http.Request) (models.Equipment, bool) {
	var item models.Equipment
	switch mux.Vars(r)["kind"] {
	case kindAirConditioning:
		var it models.AirConditioningItem
		if !h.decodeJSON(w, r, &it) {
			return nil, false
		}
		item = it
	case kindLighting:
		var it models.LightingItem
		if !h.decodeJSON(w, r, &it) {
			return nil, false
		}
		item = it
	case kindOtherEquipment:
		var it models.OtherEquipmentItem
		if !h.decodeJSON(w, r, &it) {
			return nil, false
		}
		item = it
	default:
		h.writeError(w, "Unknown equipment kind", http.StatusNotFound)
		return nil, false
	}

	if err := services.ValidateEquipment(item); err != nil {
		h.writeStoreError(w, err, "")
		return nil, false
	}
	return item, true
}

// saveEquipment adds the item when itemID is empty and updates it otherwise
func (h *Handler) saveEquipment(auditID, itemID string, item models.Equipment) (models.Equipment, error) {
	switch it := item.(type) {
	case models.AirConditioningItem:
		if itemID == "" {
			return h.store.AddAirConditioning(auditID, it)
		}
		return h.store.UpdateAirConditioning(auditID, itemID, it)
	case models.LightingItem:
		if itemID == "" {
			return h.store.AddLighting(auditID, it)
		}
		return h.store.UpdateLighting(auditID, itemID, it)
	case models.OtherEquipmentItem:
		if itemID == "" {
			return h.store.AddOtherEquipment(auditID, it)
		}
		return h.store.UpdateOtherEquipment(auditID, itemID, it)
	}
	return nil, fmt.Errorf("unsupported equipment type %T", item)
}
