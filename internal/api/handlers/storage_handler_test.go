package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okvist/crewdesk/config"
	"github.com/okvist/crewdesk/internal/api/handlers"
	"github.com/okvist/crewdesk/internal/api/routes"
	"github.com/okvist/crewdesk/internal/models"
	"github.com/okvist/crewdesk/internal/services"
	"github.com/okvist/crewdesk/internal/storage"
)

type fakeSigner struct {
	url  string
	err  error
	path string
	ttl  time.Duration
}

func (f *fakeSigner) SignedGetURL(_ context.Context, objectName string, ttl time.Duration) (string, error) {
	f.path = objectName
	f.ttl = ttl
	return f.url, f.err
}

type fakeSource struct {
	rows []models.Estimate
	err  error
}

func (f *fakeSource) Select(_ context.Context, _, _ string, dst any) error {
	if f.err != nil {
		return f.err
	}
	*(dst.(*[]models.Estimate)) = f.rows
	return nil
}

func newTestRouter(signer storage.Signer, src services.EstimateSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return routes.New(routes.Deps{
		Storage:        handlers.NewStorageHandler(services.NewStorageService(signer)),
		Estimates:      handlers.NewEstimatesHandler(services.NewEstimateService(src)),
		AllowedOrigins: config.DefaultAllowedOrigins,
	})
}

func doRequest(t *testing.T, r *gin.Engine, method, target, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestPreflightEchoesAllowedOrigins(t *testing.T) {
	r := newTestRouter(&fakeSigner{url: "https://x"}, &fakeSource{})

	for _, origin := range config.DefaultAllowedOrigins {
		w := doRequest(t, r, http.MethodOptions, "/api/storage/getSignedUrl", origin)

		if w.Code != http.StatusOK {
			t.Errorf("origin %s: status = %d, want 200", origin, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", origin, got, origin)
		}
		if w.Body.Len() != 0 {
			t.Errorf("origin %s: preflight body = %q, want empty", origin, w.Body.String())
		}
	}
}

func TestPreflightUnknownOriginGetsNoHeader(t *testing.T) {
	r := newTestRouter(&fakeSigner{url: "https://x"}, &fakeSource{})

	w := doRequest(t, r, http.MethodOptions, "/api/storage/getSignedUrl", "https://evil.example.com")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want absent", got)
	}
}

func TestGetSignedURLMissingPath(t *testing.T) {
	r := newTestRouter(&fakeSigner{url: "https://x"}, &fakeSource{})

	w := doRequest(t, r, http.MethodGet, "/api/storage/getSignedUrl", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "path query parameter is required" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGetSignedURLSuccess(t *testing.T) {
	signed := "https://proj.supabase.co/storage/v1/object/sign/task-attachments/jobs/123/photo.jpg?token=abc"
	signer := &fakeSigner{url: signed}
	r := newTestRouter(signer, &fakeSource{})

	w := doRequest(t, r, http.MethodGet, "/api/storage/getSignedUrl?path=jobs/123/photo.jpg", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	raw, _ := body["url"].(string)
	if raw != signed {
		t.Errorf("url = %q, want %q", raw, signed)
	}
	if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
		t.Errorf("url %q is not absolute: %v", raw, err)
	}
	if signer.path != "jobs/123/photo.jpg" {
		t.Errorf("signer got path %q", signer.path)
	}
	if signer.ttl != 3600*time.Second {
		t.Errorf("signer got ttl %v, want 1h", signer.ttl)
	}
}

func TestGetSignedURLMethodNotAllowed(t *testing.T) {
	r := newTestRouter(&fakeSigner{url: "https://x"}, &fakeSource{})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := doRequest(t, r, method, "/api/storage/getSignedUrl?path=x", "")

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", method, w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != "Method not allowed" {
			t.Errorf("%s: error = %q", method, body["error"])
		}
	}
}

func TestGetSignedURLUnconfiguredSigner(t *testing.T) {
	r := newTestRouter(nil, &fakeSource{})

	w := doRequest(t, r, http.MethodGet, "/api/storage/getSignedUrl?path=x", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGetSignedURLUpstreamFailure(t *testing.T) {
	r := newTestRouter(&fakeSigner{err: errors.New("bucket unreachable")}, &fakeSource{})

	w := doRequest(t, r, http.MethodGet, "/api/storage/getSignedUrl?path=x", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestListEstimates(t *testing.T) {
	src := &fakeSource{rows: []models.Estimate{
		{EstimateNumber: "EST-2025-0001", Division: "Electrical", Status: "active"},
		{EstimateNumber: "EST-2025-0002", Division: "Plumbing", Status: "active"},
	}}
	r := newTestRouter(&fakeSigner{url: "https://x"}, src)

	w := doRequest(t, r, http.MethodGet, "/api/data/estimates", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}
}

func TestListEstimatesUpstreamError(t *testing.T) {
	r := newTestRouter(&fakeSigner{url: "https://x"}, &fakeSource{err: errors.New("connection refused")})

	w := doRequest(t, r, http.MethodGet, "/api/data/estimates", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestGetRequestEchoesAllowedOrigin(t *testing.T) {
	r := newTestRouter(&fakeSigner{url: "https://x"}, &fakeSource{})

	w := doRequest(t, r, http.MethodGet, "/api/storage/getSignedUrl?path=x", "http://localhost:3000")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:3000", got)
	}
}
