package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quithub/qgraphql/internal/schema"
)

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()
	sdl := `type Query { hello: String }`
	sch, err := schema.BuildFromSDL(sdl)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	h, err := New(sch, nil, nil, opts...)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return h
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) CompileResponse {
	t.Helper()
	var resp CompileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestCompilePlanSuccess(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Plan != "hello" || len(resp.Problems) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCompileUnknownFieldReturnsProblems(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"query":"{ missing }"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Plan != "" || len(resp.Problems) == 0 || resp.Problems[0].Kind != "UnknownField" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCORSAndPreflight(t *testing.T) {
	h := newTestHandler(t, WithCORS("*"))

	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}

	pre := httptest.NewRequest("OPTIONS", "/", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Headers", "X-Test")
	pw := httptest.NewRecorder()
	h.ServeHTTP(pw, pre)
	if pw.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", pw.Code)
	}
	if pw.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight missing CORS header")
	}
	if pw.Header().Get("Access-Control-Allow-Headers") != "X-Test" {
		t.Fatalf("preflight missing allow headers")
	}
}

func TestMaxBodyBytes(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(10))

	body := bytes.NewBufferString(`{"query":"1234567890"}`)
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d", w.Code)
	}
}

func TestBatchRequests(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`[{"query":"{ hello }"},{"query":"{ hello }"}]`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp []CompileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode batch response: %v", err)
	}
	if len(resp) != 2 || resp[0].Plan != "hello" {
		t.Fatalf("unexpected batch response: %+v", resp)
	}
}
