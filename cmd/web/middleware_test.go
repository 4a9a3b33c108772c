package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/myrjola/gymplanner/internal/contexthelpers"
	"github.com/myrjola/gymplanner/internal/flightrecorder"
	"github.com/myrjola/gymplanner/internal/testhelpers"
)

func Test_application_timeout(t *testing.T) {
	tests := []struct {
		name     string
		sleep    time.Duration
		timesOut bool
	}{
		{
			name:     "completes within timeout",
			sleep:    500 * time.Millisecond,
			timesOut: false,
		},
		{
			name:     "times out",
			sleep:    3 * time.Second,
			timesOut: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				app := &application{ //nolint:exhaustruct // this is a test
					logger: testhelpers.NewLogger(testhelpers.NewWriter(t)),
				}
				handler := app.timeout(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					time.Sleep(tt.sleep)
					w.WriteHeader(http.StatusOK)
				}))

				req := httptest.NewRequest(http.MethodGet, "/api/healthy", nil)
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)

				if tt.timesOut {
					if w.Code != http.StatusServiceUnavailable {
						t.Errorf("Expected status 503 on timeout, got %d", w.Code)
					}
					if !strings.Contains(w.Body.String(), "timed out") {
						t.Errorf("Expected timeout message in response body, got: %s", w.Body.String())
					}
				} else if w.Code != http.StatusOK {
					t.Errorf("Expected status 200, got %d", w.Code)
				}
			})
		})
	}
}

func Test_application_timeout_capturesTrace(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	dir := t.TempDir()
	recorder, err := flightrecorder.New(flightrecorder.Config{Logger: logger, TracesDirectory: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err = recorder.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer recorder.Stop(ctx)

	app := &application{ //nolint:exhaustruct // this is a test
		logger:         logger,
		flightRecorder: recorder,
	}
	handler := app.timeout(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/plans", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 on timeout, got %d", w.Code)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "timeout-") {
		t.Errorf("Expected one timeout trace, got %v", entries)
	}
}

func Test_application_recoverPanic(t *testing.T) {
	app := &application{ //nolint:exhaustruct // this is a test
		logger:     testhelpers.NewLogger(testhelpers.NewWriter(t)),
		templateFS: os.DirFS("../../ui/templates"),
	}
	handler := app.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	tests := []struct {
		path        string
		contentType string
		body        string
	}{
		{path: "/plans", contentType: "text/html", body: "Something went wrong"},
		{path: "/api/plans", contentType: "application/json", body: `{"error":"Internal Server Error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))

			if w.Code != http.StatusInternalServerError {
				t.Errorf("Expected status 500, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Expected content type %s, got %s", tt.contentType, ct)
			}
			if !strings.Contains(w.Body.String(), tt.body) {
				t.Errorf("Expected %q in response body, got: %s", tt.body, w.Body.String())
			}
		})
	}
}

func Test_secureHeaders(t *testing.T) {
	var nonce string
	handler := secureHeaders(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		nonce = contexthelpers.CSPNonce(r.Context())
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if nonce == "" {
		t.Fatal("Expected a CSP nonce in the request context")
	}
	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "'nonce-"+nonce+"'") {
		t.Errorf("Expected CSP to allow nonce %s, got: %s", nonce, csp)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "deny" {
		t.Errorf("Expected X-Frame-Options deny, got %q", got)
	}
}
