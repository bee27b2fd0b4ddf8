package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/scene"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

func createTestServer() *Server {
	return NewServer(0, texture.NewSolidTexture(core.NewVec4(0.2, 0.4, 0.8, 1)))
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	createTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestHandleConfig(t *testing.T) {
	rec := httptest.NewRecorder()
	createTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	var body struct {
		Defaults scene.Config               `json:"defaults"`
		Features []string                   `json:"features"`
		Limits   map[string]json.RawMessage `json:"limits"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Defaults != scene.DefaultConfig() {
		t.Errorf("defaults = %+v", body.Defaults)
	}
	want := []string{"disk-sdf", "disk-vol", "sky-proc", "aa", "rk4", "adaptive", "bloom"}
	if strings.Join(body.Features, ",") != strings.Join(want, ",") {
		t.Errorf("features = %v, want %v", body.Features, want)
	}
	for _, key := range []string{"width", "height", "samples", "fov"} {
		if _, ok := body.Limits[key]; !ok {
			t.Errorf("missing limit %q", key)
		}
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", 7, false},
		{"5", 5, false},
		{"0", 0, true},
		{"11", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		values := url.Values{}
		if tt.value != "" {
			values.Set("n", tt.value)
		}
		got, err := parseIntParam(values, "n", 7, 1, 10)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestParseFloatParam(t *testing.T) {
	values := url.Values{"f": {"0.25"}}
	if got, err := parseFloatParam(values, "f", 1, 0, 1); err != nil || got != 0.25 {
		t.Errorf("got %v, %v", got, err)
	}
	if _, err := parseFloatParam(url.Values{"f": {"2"}}, "f", 1, 0, 1); err == nil {
		t.Error("Expected range error")
	}
	if got, _ := parseFloatParam(url.Values{}, "f", 0.5, 0, 1); got != 0.5 {
		t.Errorf("default = %v, want 0.5", got)
	}
}

func TestParseRenderRequest(t *testing.T) {
	s := createTestServer()

	r := httptest.NewRequest(http.MethodGet, "/api/render?width=32&height=16&samples=3&features=disk-vol,rk4&fov=60&seed=9", nil)
	req, err := s.parseRenderRequest(r)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if req.Width != 32 || req.Height != 16 || req.Seed != 9 {
		t.Errorf("request = %+v", req)
	}
	if req.Config.Samples != 3 {
		t.Errorf("samples = %d, want 3", req.Config.Samples)
	}
	if req.Config.Features != scene.DiskVolume|scene.RK4 {
		t.Errorf("features = %v", req.Config.Features)
	}
	if math.Abs(req.Config.Camera.FOV-math.Pi/3) > 1e-12 {
		t.Errorf("fov = %v, want pi/3", req.Config.Camera.FOV)
	}

	bad := []string{
		"width=0",
		"samples=0",
		"features=warp-drive",
		"fov=5",
		"radius=100",
	}
	for _, q := range bad {
		if _, err := s.parseRenderRequest(httptest.NewRequest(http.MethodGet, "/api/render?"+q, nil)); err == nil {
			t.Errorf("%s: expected error", q)
		}
	}
}

// parseSSE splits an event stream body into (event, data) pairs
func parseSSE(body string) [][2]string {
	var events [][2]string
	for _, block := range strings.Split(body, "\n\n") {
		var event, data string
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			}
		}
		if event != "" {
			events = append(events, [2]string{event, data})
		}
	}
	return events
}

func TestHandleRender_StreamsPasses(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/render?width=20&height=18&samples=2", nil)
	createTestServer().Handler().ServeHTTP(rec, r)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	events := parseSSE(rec.Body.String())
	if len(events) == 0 {
		t.Fatal("No events received")
	}

	var passes []PassUpdate
	tiles := 0
	for _, e := range events {
		switch e[0] {
		case "passComplete":
			var p PassUpdate
			if err := json.Unmarshal([]byte(e[1]), &p); err != nil {
				t.Fatalf("bad pass payload: %v", err)
			}
			passes = append(passes, p)
		case "tile":
			tiles++
		case "error":
			t.Fatalf("render error: %s", e[1])
		}
	}

	if len(passes) != 2 {
		t.Fatalf("Got %d passes, want 2", len(passes))
	}
	if passes[1].PassNumber != 2 || passes[1].TotalPasses != 2 || passes[1].TotalPixels != 360 {
		t.Errorf("last pass = %+v", passes[1])
	}
	if passes[0].RenderID == "" || passes[0].RenderID != passes[1].RenderID {
		t.Errorf("render IDs %q and %q", passes[0].RenderID, passes[1].RenderID)
	}
	if passes[0].ImageData == "" {
		t.Error("Pass carried no image")
	}
	if tiles == 0 {
		t.Error("No tile events")
	}
	if last := events[len(events)-1]; last[0] != "complete" {
		t.Errorf("Last event = %q, want complete", last[0])
	}
}

func TestHandleRender_InvalidRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/render?width=-1", nil)
	createTestServer().Handler().ServeHTTP(rec, r)

	events := parseSSE(rec.Body.String())
	if len(events) != 1 || events[0][0] != "error" {
		t.Fatalf("events = %v, want a single error", events)
	}
	if !strings.Contains(events[0][1], "width") {
		t.Errorf("error %q does not mention width", events[0][1])
	}
}

func TestHandleInspect(t *testing.T) {
	s := createTestServer()

	tests := []struct {
		query      string
		wantStatus int
	}{
		{"width=10&height=10&x=5&y=5", http.StatusOK},
		{"width=10&height=10&x=10&y=5", http.StatusBadRequest},
		{"width=10&height=10&x=a&y=5", http.StatusBadRequest},
		{"width=10&height=10&x=1", http.StatusBadRequest},
		{"width=0&x=0&y=0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inspect?"+tt.query, nil))
		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.query, rec.Code, tt.wantStatus)
		}
	}
}

func TestHandleInspect_CentrePixelFallsIntoHole(t *testing.T) {
	// the default camera looks straight at the hole
	rec := httptest.NewRecorder()
	createTestServer().Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/inspect?width=64&height=64&x=32&y=32", nil))

	var resp InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != "captured" {
		t.Errorf("outcome = %q, want captured", resp.Outcome)
	}
	if resp.Color != [3]float64{} {
		t.Errorf("color = %v, want black", resp.Color)
	}
}
