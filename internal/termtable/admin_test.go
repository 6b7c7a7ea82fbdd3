package termtable

import (
	"net/http/httptest"
	"testing"
)

func TestAdminHandlerGetTreatment(t *testing.T) {
	svc := newTestService(t)
	handler := AdminHandler(svc)

	req := httptest.NewRequest("GET", "/debug/treatment?idf=40", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAdminHandlerGetTreatmentRejectsBadIdf(t *testing.T) {
	svc := newTestService(t)
	handler := AdminHandler(svc)

	req := httptest.NewRequest("GET", "/debug/treatment?idf=notanumber", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdminHandlerStatusBeforeAnyBuild(t *testing.T) {
	svc := newTestService(t)
	handler := AdminHandler(svc)

	req := httptest.NewRequest("GET", "/debug/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Errorf("status = %d, want 404 (no build has completed)", rec.Code)
	}
}
