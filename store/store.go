// ABOUTME: JSON document store for users, audits and equipment inventories
// ABOUTME: Atomic file persistence behind a RWMutex; reads return copies

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecg-energy/audit-analyzer/models"
)

var (
	// ErrNotFound is returned when an audit, item or user does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for duplicate emails and for removing the last admin
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials is returned by AuthenticateUser on any mismatch
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// document is the on-disk layout
type document struct {
	Users           []models.User                `json:"users"`
	Audits          []models.AuditRecord         `json:"audits"`
	AirConditioning []models.AirConditioningItem `json:"air_conditioning"`
	Lighting        []models.LightingItem        `json:"lighting"`
	OtherEquipment  []models.OtherEquipmentItem  `json:"other_equipment"`
}

// Store persists audit data to a single JSON file.
// An empty path keeps everything in memory.
type Store struct {
	mu         sync.RWMutex
	path       string
	data       *document
	now        func() time.Time
	bcryptCost int
}

// New opens the store at path, creating the file on first use
func New(path string) (*Store, error) {
	st := &Store{
		path:       path,
		now:        func() time.Time { return time.Now().UTC() },
		bcryptCost: bcrypt.DefaultCost,
	}
	if err := st.load(); err != nil {
		return nil, fmt.Errorf("loading store %s: %w", path, err)
	}
	return st, nil
}

// NewID returns a random UUID string
func NewID() string {
	return uuid.NewString()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = &document{}
	if s.path == "" {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.saveLocked()
	}
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	return json.Unmarshal(raw, s.data)
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Stats returns the number of audits and users
func (s *Store) Stats() (audits, users int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Audits), len(s.data.Users)
}

// Path returns the backing file, empty for in-memory stores
func (s *Store) Path() string {
	return s.path
}

// ---------------------------------------------------------------------------
// Audits

// CreateAudit stores a new audit owned by ownerID
func (s *Store) CreateAudit(ownerID string, rec models.AuditRecord) (models.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec.ID = NewID()
	rec.OwnerID = ownerID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.data.Audits = append(s.data.Audits, rec)
	if err := s.saveLocked(); err != nil {
		s.data.Audits = s.data.Audits[:len(s.data.Audits)-1]
		return models.AuditRecord{}, err
	}
	return rec, nil
}

// GetAudit returns one audit
func (s *Store) GetAudit(id string) (models.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.auditIndexLocked(id); i >= 0 {
		return s.data.Audits[i], nil
	}
	return models.AuditRecord{}, ErrNotFound
}

// ListAudits returns the audits owned by ownerID, most recently updated first
func (s *Store) ListAudits(ownerID string) []models.AuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AuditRecord{}
	for _, a := range s.data.Audits {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sortAudits(out)
	return out
}

// ListAllAudits returns every audit, most recently updated first
func (s *Store) ListAllAudits() []models.AuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AuditRecord, len(s.data.Audits))
	copy(out, s.data.Audits)
	sortAudits(out)
	return out
}

// UpdateAudit replaces the editable header fields of an audit
func (s *Store) UpdateAudit(id string, rec models.AuditRecord) (models.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.auditIndexLocked(id)
	if i < 0 {
		return models.AuditRecord{}, ErrNotFound
	}
	prev := s.data.Audits[i]
	updated := prev
	updated.ClientName = rec.ClientName
	updated.Branch = rec.Branch
	updated.Location = rec.Location
	updated.AuditorName = rec.AuditorName
	updated.UpdatedAt = s.now()

	s.data.Audits[i] = updated
	if err := s.saveLocked(); err != nil {
		s.data.Audits[i] = prev
		return models.AuditRecord{}, err
	}
	return updated, nil
}

// DeleteAudit removes an audit and all its equipment
func (s *Store) DeleteAudit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.auditIndexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	prev := *s.data
	s.data.Audits = removeAt(s.data.Audits, i)
	s.data.AirConditioning = removeAudit(s.data.AirConditioning, id, acRows)
	s.data.Lighting = removeAudit(s.data.Lighting, id, lightingRows)
	s.data.OtherEquipment = removeAudit(s.data.OtherEquipment, id, otherRows)
	if err := s.saveLocked(); err != nil {
		*s.data = prev
		return err
	}
	return nil
}

// removeAt returns a new slice without element i, leaving rows untouched
func removeAt[T any](rows []T, i int) []T {
	out := make([]T, 0, len(rows)-1)
	out = append(out, rows[:i]...)
	return append(out, rows[i+1:]...)
}

func (s *Store) auditIndexLocked(id string) int {
	for i, a := range s.data.Audits {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// touchAuditLocked bumps an audit's UpdatedAt and returns a func restoring it
func (s *Store) touchAuditLocked(id string) func() {
	i := s.auditIndexLocked(id)
	if i < 0 {
		return func() {}
	}
	prev := s.data.Audits[i].UpdatedAt
	s.data.Audits[i].UpdatedAt = s.now()
	return func() { s.data.Audits[i].UpdatedAt = prev }
}

func sortAudits(audits []models.AuditRecord) {
	sort.SliceStable(audits, func(i, j int) bool {
		return audits[i].UpdatedAt.After(audits[j].UpdatedAt)
	})
}
