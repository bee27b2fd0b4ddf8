package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/joe-loach/kerrbhy/pkg/scene"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// Request limits
const (
	MinSize    = 1
	MaxSize    = 2000
	MaxSamples = 10000
	MinFOV     = 10.0 // degrees
	MaxFOV     = 170.0
)

// Server handles web requests for the black hole renderer
type Server struct {
	port    int
	starmap *texture.Texture2D
	mux     *http.ServeMux
}

// NewServer creates a new web server. starmap may be nil, in which case
// texture sky renders are black.
func NewServer(port int, starmap *texture.Texture2D) *Server {
	s := &Server{port: port, starmap: starmap, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/config", s.handleConfig)
	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Seed   uint64       `json:"seed"`
	Config scene.Config `json:"config"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleConfig returns the default configuration, the feature names and the
// request limits
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var features []string
	for f := scene.Features(1); f <= scene.AllFeatures; f <<= 1 {
		features = append(features, f.String())
	}

	response := map[string]interface{}{
		"defaults": scene.DefaultConfig(),
		"features": features,
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": MinSize, "max": MaxSize},
			"height":  map[string]int{"min": MinSize, "max": MaxSize},
			"samples": map[string]int{"min": 1, "max": MaxSamples},
			"fov":     map[string]float64{"min": MinFOV, "max": MaxFOV},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseRenderRequest builds a request from URL parameters on top of the
// default configuration
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Config: scene.DefaultConfig()}
	cfg := &req.Config

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, MinSize, MaxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, MinSize, MaxSize); err != nil {
		return nil, err
	}
	if cfg.Samples, err = parseIntParam(query, "samples", 64, 1, MaxSamples); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 0, 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = uint64(seed)

	if value := query.Get("features"); value != "" {
		if cfg.Features, err = scene.ParseFeatures(value); err != nil {
			return nil, err
		}
	}

	fov, err := parseFloatParam(query, "fov", cfg.Camera.FOV*180/math.Pi, MinFOV, MaxFOV)
	if err != nil {
		return nil, err
	}
	cfg.Camera.FOV = fov * math.Pi / 180

	if cfg.Camera.Radius, err = parseFloatParam(query, "radius", cfg.Camera.Radius, cfg.Camera.Bounds.Min, cfg.Camera.Bounds.Max); err != nil {
		return nil, err
	}
	theta, err := parseFloatParam(query, "theta", 0, -2*math.Pi, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	phi, err := parseFloatParam(query, "phi", 0, -math.Pi, math.Pi)
	if err != nil {
		return nil, err
	}
	cfg.Camera.Orbit(theta, phi)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && cfg.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
