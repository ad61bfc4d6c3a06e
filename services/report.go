// ABOUTME: Report service that memoizes engine output per snapshot content
// ABOUTME: Collapses concurrent identical computations with singleflight

package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/ecg-energy/audit-analyzer/cache"
	"github.com/ecg-energy/audit-analyzer/models"
)

// CacheRecorder receives report cache outcomes
type CacheRecorder interface {
	CacheHit()
	CacheMiss()
}

// ReportService computes audit reports through the engine with memoization
type ReportService struct {
	engine   *Engine
	cache    *cache.Cache[models.AuditReport]
	group    singleflight.Group
	recorder CacheRecorder
}

// NewReportService wires an engine to a report cache. recorder may be nil.
func NewReportService(engine *Engine, c *cache.Cache[models.AuditReport], recorder CacheRecorder) *ReportService {
	return &ReportService{engine: engine, cache: c, recorder: recorder}
}

// Engine returns the underlying engine
func (s *ReportService) Engine() *Engine {
	return s.engine
}

// Report returns the report for a snapshot, computing it at most once per
// distinct snapshot content while the cache entry lives. GeneratedAt is the
// time of that computation, so cached reports keep their original timestamp.
// The returned slices are copies and may be modified by the caller.
func (s *ReportService) Report(snap models.AuditSnapshot) (models.AuditReport, error) {
	key, err := SnapshotKey(snap)
	if err != nil {
		return models.AuditReport{}, err
	}

	if report, ok := s.cache.Get(key); ok {
		slog.Debug("Report cache hit", "audit_id", snap.Audit.ID)
		s.hit()
		return cloneReport(report), nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		if report, ok := s.cache.Get(key); ok {
			return report, nil
		}
		report := s.engine.Compute(snap)
		s.cache.Set(key, report)
		return report, nil
	})
	if err != nil {
		return models.AuditReport{}, err
	}

	slog.Debug("Report cache miss", "audit_id", snap.Audit.ID, "shared", shared)
	s.miss()
	return cloneReport(v.(models.AuditReport)), nil
}

// cloneReport detaches the report's slices from the cached entry
func cloneReport(r models.AuditReport) models.AuditReport {
	r.Recommendations = append([]string{}, r.Recommendations...)
	r.Items = append([]models.ItemEnergy{}, r.Items...)
	return r
}

func (s *ReportService) hit() {
	if s.recorder != nil {
		s.recorder.CacheHit()
	}
}

func (s *ReportService) miss() {
	if s.recorder != nil {
		s.recorder.CacheMiss()
	}
}

// SnapshotKey is the hex SHA-256 of the snapshot's JSON encoding
func SnapshotKey(snap models.AuditSnapshot) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	sum := sha256.Sum256(raw)
	return "report:" + hex.EncodeToString(sum[:]), nil
}
