package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseBuilderJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponse().Status(http.StatusCreated).Header("X-Test", "1").JSON(map[string]int{"n": 3}).Write(rec)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Header().Get("X-Test") != "1" {
		t.Error("custom header missing")
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["n"] != 3 {
		t.Errorf("body = %q (%v)", rec.Body.String(), err)
	}
}

func TestResponseBuilderJSONEncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponse().JSON(func() {}).Write(rec)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestResponseBuilderAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponse().Attachment("inv.pdf", "application/pdf", []byte("%PDF")).Write(rec)

	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="inv.pdf"` {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.String() != "%PDF" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestErrorResponsesEscapeMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFoundError("<b>missing</b>").Write(rec)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<b>") {
		t.Errorf("message not escaped: %q", rec.Body.String())
	}
}

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(http.StatusUnprocessableEntity, "unknown room category").Write(rec)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"unknown room category"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}
