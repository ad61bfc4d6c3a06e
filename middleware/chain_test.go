// ABOUTME: Tests for middleware chaining
// ABOUTME: Verifies declaration order maps to outermost-first execution

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChain_Order(t *testing.T) {
	var calls []string
	mark := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next(w, r)
			}
		}
	}

	h := Chain(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "handler")
	}, mark("first"), mark("second"), mark("third"))

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	got := strings.Join(calls, ",")
	if got != "first,second,third,handler" {
		t.Errorf("Call order = %q, want %q", got, "first,second,third,handler")
	}
}

func TestChain_NoMiddleware(t *testing.T) {
	called := false
	h := Chain(func(w http.ResponseWriter, r *http.Request) { called = true })
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("Handler not called")
	}
}

func TestChain_ShortCircuit(t *testing.T) {
	deny := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, "denied", http.StatusForbidden)
		}
	}
	h := Chain(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run after short circuit")
	}, deny)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
