package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMutationLimiterPassesReads(t *testing.T) {
	mw := MutationLimiter()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 200; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/threads", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("read %d limited: %d", i, rec.Code)
		}
	}
}

func TestMutationLimiterThrottlesWrites(t *testing.T) {
	mw := MutationLimiter()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	limited := false
	for i := 0; i < 200; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/select", nil)
		req.RemoteAddr = "203.0.113.9:4242"
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatalf("expected burst of writes to hit the limiter")
	}

	// another host gets its own bucket
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/select", nil)
	req.RemoteAddr = "203.0.113.10:4242"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("fresh host should not be limited: %d", rec.Code)
	}
}
