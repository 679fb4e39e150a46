package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/blobposter/internal/metrics"
	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	opts = append([]Option{WithLogger(logger), WithDefaults(pipeline.Options{Width: 140})}, opts...)
	srv := httptest.NewServer(NewServer(pipeline.NewRunner(logger), opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestIndexPlaceholder(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	page := string(body)
	if !strings.Contains(page, Placeholder) {
		t.Error("page without generate should show the placeholder")
	}
	if strings.Contains(page, "<img") {
		t.Error("page without generate should not embed an image")
	}
	for _, want := range []string{"simple&amp;tidy", "Monochrome shade", "noise touch", "Generate Poster"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexGenerate(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/?palette=Pastel+colors+only&style=vivid&generate=1")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	page := string(body)
	if strings.Contains(page, Placeholder) {
		t.Error("generated page should not show the placeholder")
	}
	if !strings.Contains(page, `<img src="/poster.png?`) || !strings.Contains(page, "seed=") {
		t.Errorf("generated page should embed the poster image:\n%s", page)
	}
	if !strings.Contains(page, `<option value="vivid" selected>`) {
		t.Error("selected style should stay selected")
	}
}

func TestIndexUnknownPalette(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/?palette=rainbow&generate=1")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(string(body), "unknown palette") {
		t.Error("page should report the unknown palette")
	}
}

func TestPosterPNG(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/poster.png?palette=simple%26tidy&style=minimal&seed=9")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Poster-Seed") != "9" {
		t.Errorf("X-Poster-Seed = %q", resp.Header.Get("X-Poster-Seed"))
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 200 {
		t.Errorf("bounds = %v", b)
	}
}

func TestPosterSeedReproducible(t *testing.T) {
	srv := newTestServer(t)
	_, a := get(t, srv.URL+"/poster.svg?style=noise+touch&seed=123")
	_, b := get(t, srv.URL+"/poster.svg?style=noise+touch&seed=123")
	if !bytes.Equal(a, b) {
		t.Error("same seed should render identical SVG")
	}
}

func TestPosterErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"unknown palette", "palette=rainbow", 400, "INVALID_PALETTE"},
		{"bad seed", "seed=abc", 400, "INVALID_SEED"},
		{"bad width", "width=5", 400, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv.URL+"/poster.png?"+tt.query)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e apiError
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if e.Error != tt.code {
				t.Errorf("code = %q, want %q", e.Error, tt.code)
			}
		})
	}
}

func TestPosterUnknownStyleFallsBack(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := get(t, srv.URL+"/poster.svg?style=glitter&seed=1")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unknown style status = %d, want 200", resp.StatusCode)
	}
}

func TestAPIPalettes(t *testing.T) {
	srv := newTestServer(t)
	_, body := get(t, srv.URL+"/api/v1/palettes")
	var out []paletteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 || out[0].Name != "simple&tidy" || len(out[4].Colors) != 6 {
		t.Errorf("palettes = %+v", out)
	}
}

func TestAPIStyles(t *testing.T) {
	srv := newTestServer(t)
	_, body := get(t, srv.URL+"/api/v1/styles")
	var out []struct {
		Name   string `json:"name"`
		Jitter bool   `json:"jitter"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[2].Name != "noise touch" || !out[2].Jitter {
		t.Errorf("styles = %+v", out)
	}
}

func TestAPICreatePoster(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/v1/posters", "application/json",
		strings.NewReader(`{"palette":"High contrast vivid","style":"vivid","seed":77}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		ID     string `json:"id"`
		Seed   uint64 `json:"seed"`
		Poster struct {
			Poster struct {
				Palette string            `json:"palette"`
				Layers  []json.RawMessage `json:"layers"`
			} `json:"poster"`
		} `json:"poster"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ID == "" || out.Seed != 77 {
		t.Errorf("id/seed = %q/%d", out.ID, out.Seed)
	}
	if out.Poster.Poster.Palette != "High contrast vivid" || len(out.Poster.Poster.Layers) != 8 {
		t.Errorf("poster = %+v", out.Poster.Poster)
	}
}

func TestAPICreatePosterBadBody(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{`{`, `{"colour":"red"}`} {
		resp, err := http.Post(srv.URL+"/api/v1/posters", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestHealthAndNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/healthz")
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"ok":true`) {
		t.Errorf("healthz = %d %s", resp.StatusCode, body)
	}
	resp, _ = get(t, srv.URL+"/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d", resp.StatusCode)
	}
	resp, _ = get(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("/metrics without metrics enabled = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	observability.SetPosterHooks(m)
	observability.SetHTTPHooks(m)
	defer observability.Reset()

	srv := newTestServer(t, WithMetrics(metrics.Handler(reg)))
	get(t, srv.URL+"/poster.svg?seed=1")
	_, body := get(t, srv.URL+"/metrics")

	for _, want := range []string{
		"blobposter_poster_composed_total",
		`blobposter_http_requests_total{method="GET",route="/poster.svg",status="200"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestHTTPServerRun(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := NewHTTPServer("127.0.0.1:0", NewServer(nil, WithLogger(logger)).Handler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var addr string
	for i := 0; i < 100 && addr == ""; i++ {
		addr = s.ListenAddr()
		time.Sleep(10 * time.Millisecond)
	}
	if addr == "" {
		t.Fatal("server did not start")
	}
	resp, _ := get(t, "http://"+addr+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if err := s.Start(); err == nil {
		t.Error("Start() after Stop() should fail")
	}
}
