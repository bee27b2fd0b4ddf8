package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/integrator"
	"github.com/joe-loach/kerrbhy/pkg/scene"
	"github.com/joe-loach/kerrbhy/pkg/texture"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	Seed       uint64 // Base seed for every pixel sampler
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		NumWorkers: 0,
		Seed:       0x6b657272,
	}
}

// FrameParams is the per-frame parameter block handed to every tile. It is
// a snapshot, so a config change mid-frame cannot tear a frame.
type FrameParams struct {
	Features      scene.Features
	Origin        core.Vec3
	FOV           float64
	Transform     core.Transform
	Sample        int // frames already accumulated
	DiskColor     core.Vec3
	DiskRadius    float64
	DiskThickness float64
}

// NewFrameParams captures config for the given frame index
func NewFrameParams(config scene.Config, frame int) FrameParams {
	view := config.Camera.View()
	return FrameParams{
		Features:      config.Features,
		Origin:        view.Origin,
		FOV:           config.Camera.FOV,
		Transform:     view,
		Sample:        frame,
		DiskColor:     config.Disk.Color,
		DiskRadius:    config.Disk.Radius,
		DiskThickness: config.Disk.Thickness,
	}
}

// Disk returns the disk described by the parameters
func (p FrameParams) Disk() scene.Disk {
	return scene.Disk{Radius: p.DiskRadius, Thickness: p.DiskThickness, Color: p.DiskColor}
}

// ProgressiveRaytracer accumulates one sample per pixel per frame into a
// persistent buffer until the configured sample count is reached. Frames are
// split into WorkgroupSize tiles and rendered by a worker pool.
//
// Update, RenderFrame and Close must not be called concurrently.
type ProgressiveRaytracer struct {
	config  scene.Config
	options ProgressiveConfig
	starmap *texture.Texture2D

	width, height int
	frame         int          // Frames accumulated since the last reset
	buffer        *FrameBuffer // Running mean, gamma corrected
	tiles         []*Tile
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(config scene.Config, width, height int, starmap *texture.Texture2D, options ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &ProgressiveRaytracer{
		config:  config,
		options: options,
		starmap: starmap,
		width:   width,
		height:  height,
		buffer:  NewFrameBuffer(width, height),
		tiles:   NewTileGrid(width, height),
		logger:  logger,
	}
}

// Update applies a new size and config. It reports whether anything changed;
// if so the accumulation restarts from frame 0.
func (pr *ProgressiveRaytracer) Update(width, height int, config scene.Config) bool {
	dirty := false

	if width != pr.width || height != pr.height {
		pr.width, pr.height = width, height
		pr.buffer.Resize(width, height)
		pr.tiles = NewTileGrid(width, height)
		dirty = true
	}
	if config != pr.config {
		pr.config = config
		dirty = true
	}

	if dirty {
		pr.frame = 0
		pr.buffer.ResetBlend()
	}
	return dirty
}

// MustRender reports whether more frames are needed to reach the target
// sample count
func (pr *ProgressiveRaytracer) MustRender() bool {
	return pr.frame < pr.config.Samples && pr.width > 0 && pr.height > 0
}

// Frame returns the number of frames accumulated
func (pr *ProgressiveRaytracer) Frame() int { return pr.frame }

// Buffer returns the accumulation buffer
func (pr *ProgressiveRaytracer) Buffer() *FrameBuffer { return pr.buffer }

// Config returns the active configuration
func (pr *ProgressiveRaytracer) Config() scene.Config { return pr.config }

// RenderFrame renders and blends one frame. tileCallback, if not nil, is
// called from this goroutine as each tile completes.
func (pr *ProgressiveRaytracer) RenderFrame(tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	if pr.workerPool == nil {
		pr.workerPool = NewWorkerPool(pr.options.NumWorkers, len(pr.tiles))
		pr.workerPool.Start()
		pr.logger.Printf("Started %d workers\n", pr.workerPool.GetNumWorkers())
	}

	params := NewFrameParams(pr.config, pr.frame)
	mode := params.Features.Resolve()
	kernel := integrator.NewBlackHole(mode, params.Disk(), pr.starmap)
	camera := NewCamera(params.Transform, params.FOV, pr.width, pr.height)
	tr := NewTileRenderer(NewShader(kernel, camera, mode), params, pr.options.Seed, pr.buffer)

	tiles := pr.tiles
	go func() {
		for i, tile := range tiles {
			pr.workerPool.SubmitTask(TileTask{Tile: tile, Renderer: tr, TaskID: i})
		}
	}()

	// every result is collected even after a failure so no submitter is
	// left blocked on the queue
	stats := RenderStats{}
	var frameErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, errors.New("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if frameErr == nil {
				frameErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)

		if tileCallback != nil {
			tile := result.Tile
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / WorkgroupSize,
				TileY:       tile.Bounds.Min.Y / WorkgroupSize,
				TileImage:   pr.buffer.Region(tile.Bounds),
				PassNumber:  params.Sample + 1,
				TileNumber:  i + 1,
				TotalTiles:  len(tiles),
				TotalPasses: pr.config.Samples,
			})
		}
	}

	if frameErr != nil {
		return nil, RenderStats{}, frameErr
	}

	pr.frame++
	stats.Frame = pr.frame
	stats.finalize()

	return pr.buffer.Image(), stats, nil
}

// Close stops the worker pool. The raytracer may be used again afterwards.
func (pr *ProgressiveRaytracer) Close() {
	if pr.workerPool != nil {
		pr.workerPool.Stop()
		pr.workerPool = nil
	}
}

// PassResult contains the result of a single frame
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.RGBA // Image data for just this tile
	PassNumber int         // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders frames until MustRender is false, reporting each
// on the returned channels. If options.TileUpdates is false the tile channel
// is closed immediately.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer pr.Close()

		pr.logger.Printf("Starting progressive rendering with %d samples...\n", pr.config.Samples)

		for pr.MustRender() {
			pass := pr.frame + 1

			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// drop the update rather than stall the frame
					}
				}
			}

			img, stats, err := pr.RenderFrame(tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%d discarded)\n",
				pass, time.Since(startTime), stats.DiscardedSamples)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     !pr.MustRender(),
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}
