package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joe-loach/kerrbhy/pkg/core"
	"github.com/joe-loach/kerrbhy/pkg/loaders"
	"github.com/joe-loach/kerrbhy/pkg/renderer"
	"github.com/joe-loach/kerrbhy/pkg/scene"
	"github.com/joe-loach/kerrbhy/pkg/sky"
	"github.com/joe-loach/kerrbhy/pkg/texture"
	"github.com/spf13/cobra"
)

// Size of the starfield baked from the procedural sky when no starmap is given
const (
	bakedStarmapWidth  = 2048
	bakedStarmapHeight = 1024
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kerrbhy",
		Short: "Render a black hole by marching light rays through a central force field",
	}
	cmd.AddCommand(renderCmd(), configCmd())
	return cmd
}

type renderFlags struct {
	config   string
	samples  int
	fov      float64 // degrees
	features string
	starmap  string
	seed     uint64
	out      string
}

func renderCmd() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:       "render <software|hardware> <width> <height>",
		Short:     "Render one image and save it as PNG",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"software", "hardware"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// usage has already been printed if the arguments were obviously wrong
			cmd.SilenceUsage = true
			return runRender(cmd, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.config, "config", "", "JSON config file (default: built-in defaults)")
	cmd.Flags().IntVar(&flags.samples, "samples", 1, "Samples per pixel (software) or frames to accumulate (hardware)")
	cmd.Flags().Float64Var(&flags.fov, "fov", 90, "Field of view in degrees")
	cmd.Flags().StringVar(&flags.features, "features", "", "Comma separated features: disk-sdf,disk-vol,sky-proc,aa,rk4,adaptive,bloom")
	cmd.Flags().StringVar(&flags.starmap, "starmap", "", "Starfield image (EXR, PNG, JPEG, BMP, TIFF or WebP), or 'checker' (default: baked procedural stars)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output PNG (default: output/render_<timestamp>.png)")
	return cmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return scene.DefaultConfig().Save(cmd.OutOrStdout())
		},
	}
}

// cmdLogger writes renderer output to the command's output stream
type cmdLogger struct {
	w io.Writer
}

func (l cmdLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

func runRender(cmd *cobra.Command, flags *renderFlags, args []string) error {
	mode := args[0]
	if mode != "software" && mode != "hardware" {
		return fmt.Errorf("unknown render mode %q, want software or hardware", mode)
	}
	width, err := parseDimension("width", args[1])
	if err != nil {
		return err
	}
	height, err := parseDimension("height", args[2])
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, flags)
	if err != nil {
		return err
	}

	starmap, err := loadStarmap(flags.starmap)
	if err != nil {
		return err
	}

	logger := cmdLogger{w: cmd.OutOrStdout()}
	logger.Printf("Rendering %dx%d on the %s path (features: %s)\n", width, height, mode, cfg.Features)

	start := time.Now()
	var fb *renderer.FrameBuffer
	switch mode {
	case "software":
		fb = renderer.NewFrameBuffer(width, height)
		r := renderer.NewRenderer(cfg, starmap, flags.seed, logger)
		if _, err := r.Render(cmd.Context(), fb); err != nil {
			return err
		}
	case "hardware":
		if fb, err = renderHardware(cmd.Context(), cfg, width, height, starmap, flags.seed, logger); err != nil {
			return err
		}
	}
	logger.Printf("Render completed in %v\n", time.Since(start))

	out := flags.out
	if out == "" {
		out = filepath.Join("output", fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := savePNG(out, fb); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", out)
	return nil
}

func renderHardware(ctx context.Context, cfg scene.Config, width, height int, starmap *texture.Texture2D, seed uint64, logger core.Logger) (*renderer.FrameBuffer, error) {
	options := renderer.DefaultProgressiveConfig()
	options.Seed = seed
	pr := renderer.NewProgressiveRaytracer(cfg, width, height, starmap, options, logger)

	passChan, _, errChan := pr.RenderProgressive(ctx, renderer.RenderOptions{})
	for range passChan {
	}
	if err := <-errChan; err != nil {
		return nil, err
	}
	return pr.Buffer(), nil
}

func parseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, value)
	}
	return n, nil
}

// buildConfig starts from the config file or defaults and applies any flags
// the user set explicitly
func buildConfig(cmd *cobra.Command, flags *renderFlags) (scene.Config, error) {
	cfg := scene.DefaultConfig()
	if flags.config != "" {
		var err error
		if cfg, err = scene.Load(flags.config); err != nil {
			return scene.Config{}, err
		}
	}

	if cmd.Flags().Changed("samples") {
		cfg.Samples = flags.samples
	}
	if cmd.Flags().Changed("fov") {
		cfg.Camera.FOV = flags.fov * math.Pi / 180
	}
	if cmd.Flags().Changed("features") {
		features, err := scene.ParseFeatures(flags.features)
		if err != nil {
			return scene.Config{}, err
		}
		cfg.Features = features
	}

	if err := cfg.Validate(); err != nil {
		return scene.Config{}, err
	}
	return cfg, nil
}

func loadStarmap(name string) (*texture.Texture2D, error) {
	switch name {
	case "":
		return sky.BakeStarfield(sky.NewProceduralSky(), bakedStarmapWidth, bakedStarmapHeight), nil
	case "checker":
		return texture.NewCheckerboardTexture(512, 256, 32,
			core.NewVec4(0.9, 0.9, 0.9, 1), core.NewVec4(0.1, 0.1, 0.1, 1)), nil
	default:
		return loaders.LoadImage(name)
	}
}

func savePNG(path string, fb *renderer.FrameBuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.Image()); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return file.Close()
}
