package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skillfield/skillfield/pkg/observability"
	"github.com/skillfield/skillfield/pkg/pipeline"
	"github.com/skillfield/skillfield/pkg/render/sink"
	"github.com/skillfield/skillfield/pkg/skills"
)

type recordingServeHooks struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingServeHooks) OnRequest(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := newTestCLI(t)
	runner := c.newRunner(context.Background(), false)
	t.Cleanup(func() { runner.Close() })

	opts := pipeline.Options{
		Strategy:  c.Config.Layout.Strategy,
		Placement: c.Config.Placement(),
		Animate:   true,
	}
	s := newServer(runner, skills.Default(), opts, log.New(io.Discard))
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServeHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if !strings.HasPrefix(resp.Header.Get("Server"), "skillfield/") {
		t.Errorf("Server header = %q", resp.Header.Get("Server"))
	}
}

func TestServePage(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, "ReactJs") {
		t.Error("page should be a full document with the badges")
	}
}

func TestServeSVG(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/field.svg?guide=true&animate=false")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, `class="guide"`) || strings.Contains(body, "@keyframes") {
		t.Error("query flags should toggle the guide and animation")
	}
}

func TestServeFreshLayoutPerRequest(t *testing.T) {
	ts := newTestServer(t)

	r1, b1 := get(t, ts.URL+"/field.json")
	r2, b2 := get(t, ts.URL+"/field.json")

	if r1.Header.Get("Cache-Control") != "no-store" {
		t.Errorf("unseeded Cache-Control = %q", r1.Header.Get("Cache-Control"))
	}
	if r1.Header.Get("X-Skillfield-Run") == r2.Header.Get("X-Skillfield-Run") {
		t.Error("each request should be a new run")
	}
	if b1 == b2 {
		t.Error("two unseeded requests returned the same layout")
	}
}

func TestServeSeededLayoutIsStable(t *testing.T) {
	ts := newTestServer(t)

	r1, b1 := get(t, ts.URL+"/field.json?seed=42")
	_, b2 := get(t, ts.URL+"/field.json?seed=42")

	if b1 != b2 {
		t.Error("seeded requests should return the same layout")
	}
	if !strings.HasPrefix(r1.Header.Get("Cache-Control"), "public") {
		t.Errorf("seeded Cache-Control = %q", r1.Header.Get("Cache-Control"))
	}

	f, err := sink.ParseJSON([]byte(b1))
	if err != nil {
		t.Fatal(err)
	}
	if f.Seed != 42 || f.RunID != r1.Header.Get("X-Skillfield-Run") {
		t.Errorf("field seed %d run %s", f.Seed, f.RunID)
	}
}

func TestServeQueryOptions(t *testing.T) {
	ts := newTestServer(t)

	_, body := get(t, ts.URL+"/field.json?strategy=orbit&category=web3")
	f, err := sink.ParseJSON([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if f.Strategy != pipeline.StrategyOrbit {
		t.Errorf("Strategy = %q", f.Strategy)
	}
	for _, b := range f.Badges {
		if b.Category != "web3" {
			t.Errorf("badge %s in category %q", b.Label, b.Category)
		}
	}
}

func TestServeBadRequests(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{"seed=-1", "seed=abc", "strategy=grid", "animate=maybe"} {
		resp, _ := get(t, ts.URL+"/field.svg?"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("?%s status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestServeReportsRequests(t *testing.T) {
	hooks := &recordingServeHooks{}
	observability.SetServeHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	get(t, ts.URL+"/healthz")
	get(t, ts.URL+"/field.svg?seed=x")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 2 {
		t.Fatalf("hook calls = %d, want 2", len(hooks.routes))
	}
	if hooks.routes[0] != "/healthz" || hooks.status[0] != http.StatusOK {
		t.Errorf("first request = %s %d", hooks.routes[0], hooks.status[0])
	}
	if hooks.routes[1] != "/field.svg" || hooks.status[1] != http.StatusBadRequest {
		t.Errorf("second request = %s %d", hooks.routes[1], hooks.status[1])
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	c := newTestCLI(t)
	runner := c.newRunner(context.Background(), true)
	s := newServer(runner, skills.Default(), pipeline.Options{}, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.listenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("listenAndServe after cancel = %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
