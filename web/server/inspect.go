package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/integrator"
	"github.com/joe-loach/kerrbhy/pkg/renderer"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// InspectResponse describes what happened to the first sample of a pixel
type InspectResponse struct {
	Outcome   string     `json:"outcome"`
	Steps     int        `json:"steps"`
	Valid     bool       `json:"valid"`
	Color     [3]float64 `json:"color"`
	Origin    [3]float64 `json:"origin"`
	Direction [3]float64 `json:"direction"`
}

// inspectPixel marches the frame-0 sample of pixel (x, y)
func inspectPixel(req *RenderRequest, starmap *texture.Texture2D, x, y int) (core.Ray, integrator.Result) {
	cfg := req.Config
	mode := cfg.Features.Resolve()
	kernel := integrator.NewBlackHole(mode, cfg.Disk, starmap)
	camera := renderer.NewCamera(cfg.Camera.View(), cfg.Camera.FOV, req.Width, req.Height)
	shader := renderer.NewShader(kernel, camera, mode)

	sampler := core.NewPixelSampler(req.Seed, y*req.Width+x, 0)
	ray := shader.PrimaryRay(x, y, sampler)
	return ray, kernel.March(ray, sampler)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect traces a single pixel and reports its outcome
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid x coordinate"})
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	ray, result := inspectPixel(req, s.starmap, pixelX, pixelY)

	response := InspectResponse{
		Outcome:   result.Outcome.String(),
		Steps:     result.Steps,
		Valid:     result.Valid(),
		Color:     vecArray(result.Color),
		Origin:    vecArray(ray.Origin),
		Direction: vecArray(ray.Direction),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
