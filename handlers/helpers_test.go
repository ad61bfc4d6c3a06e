// ABOUTME: Shared fixtures for handler tests
// ABOUTME: Builds an in-memory API with real services and issues sessions per role

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/ecg-energy/audit-analyzer/cache"
	"github.com/ecg-energy/audit-analyzer/metrics"
	"github.com/ecg-energy/audit-analyzer/middleware"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
	"github.com/ecg-energy/audit-analyzer/store"
)

type testEnv struct {
	h        *Handler
	router   *mux.Router
	store    *store.Store
	sessions *services.SessionService
	metrics  *metrics.Metrics
}

func newTestEnv(t *testing.T, opts RouterOptions) *testEnv {
	t.Helper()

	st, err := store.New("")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	sessionCache := cache.New[*models.Session]("sessions", time.Hour)
	reportCache := cache.New[models.AuditReport]("reports", time.Minute)
	t.Cleanup(sessionCache.Close)
	t.Cleanup(reportCache.Close)

	m := metrics.New()
	sessions := services.NewSessionService(sessionCache, time.Hour)
	reports := services.NewReportService(services.NewEngine(services.DefaultEngineConfig()), reportCache, m)

	h := NewHandler(nil, st, sessions, reports, m)
	return &testEnv{
		h:        h,
		router:   h.NewRouter(opts),
		store:    st,
		sessions: sessions,
		metrics:  m,
	}
}

// signIn creates an account with the given role and returns a session token for it
func (e *testEnv) signIn(t *testing.T, email string, role models.Role) (string, models.User) {
	t.Helper()
	user, err := e.store.CreateUser(models.CreateUserRequest{
		Email:    email,
		Password: "correct-horse",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := e.sessions.Create(user)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return token, user
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v; body: %s", err, w.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d; body: %s", want, w.Code, w.Body.String())
	}
}

func createTestAudit(t *testing.T, e *testEnv, token string) models.AuditRecord {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/audits", token, models.AuditRecord{
		ClientName:  "Kumasi Branch",
		Branch:      "Adum",
		Location:    "First floor",
		AuditorName: "A. Owusu",
	})
	expectStatus(t, w, http.StatusCreated)
	return decodeBody[models.AuditRecord](t, w)
}

func newLimiter(perMinute int) *middleware.RateLimiter {
	return middleware.NewRateLimiter(perMinute, time.Minute)
}
