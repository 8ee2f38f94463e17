package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/rayengine/go-ray-engine/pkg/core"
	"github.com/rayengine/go-ray-engine/pkg/engine"
	"github.com/rayengine/go-ray-engine/pkg/scene"
	"github.com/rayengine/go-ray-engine/pkg/tracer"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'cornell'")
	workers := flag.Int("workers", 0, "Number of worker threads (0 = all CPU cores)")
	queueCap := flag.Int("queue", 64, "Task queue capacity (producer backpressure bound)")
	spp := flag.Int("spp", 16, "Samples per pixel")
	depth := flag.Int("depth", 25, "Maximum ray bounce depth")
	seed := flag.Int64("seed", 42, "Base random seed")
	scale := flag.Int("scale", 1, "Integer upscale factor for the output image")
	useCache := flag.Bool("cache", false, "Share an irradiance cache across workers (faster, relaxes determinism)")
	outputDir := flag.String("output", "output", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Parallel Ray Engine")
		fmt.Println("Usage: rayengine [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:", scene.Names())
		fmt.Println()
		fmt.Println("Output is saved to <output>/<scene>/render_<timestamp>_<run>.png")
		return
	}

	selectedScene, ok := scene.ByName(*sceneType)
	if !ok {
		fmt.Printf("Unknown scene type: %s (available: %v)\n", *sceneType, scene.Names())
		os.Exit(1)
	}

	pathTracer := tracer.NewPathTracer(selectedScene, tracer.Config{
		MaxDepth: *depth,
		Seed:     *seed,
	})
	if *useCache {
		pathTracer.SetIrradianceCache(tracer.NewIrradianceCache(0.1))
	}

	source := tracer.NewCameraRaySource(selectedScene.Camera,
		selectedScene.Width, selectedScene.Height, *spp, *seed+1)
	accum := newImageAccumulator(selectedScene.Width, selectedScene.Height, *spp)

	// Ctrl-C stops ray submission; in-flight rays finish and completed
	// results are still flushed into the image
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dispatcher := engine.NewDispatcher(engine.Config{
		NumWorkers:    *workers,
		QueueCapacity: *queueCap,
	}, pathTracer, engine.NewDefaultLogger())

	fmt.Printf("Tracing %d rays (%dx%d, %d spp)...\n",
		source.TotalRays(), selectedScene.Width, selectedScene.Height, *spp)

	stats, runErr := dispatcher.Run(ctx, source, accum.addResult)
	if runErr != nil {
		fmt.Printf("Run aborted: %v\n", runErr)
	}
	fmt.Printf("Traced %d rays with %d workers in %v (%d failed, max %d buffered)\n",
		stats.RaysEmitted, stats.NumWorkers, stats.Elapsed, stats.RaysFailed, stats.MaxBuffered)

	img := accum.image()
	if *scale > 1 {
		img = upscale(img, *scale)
	}

	filename, err := saveImage(img, *outputDir, *sceneType, stats)
	if err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if runErr != nil {
		os.Exit(1)
	}
}

// imageAccumulator folds the engine's in-order result stream into an image.
// Results arrive strictly in submission order, so sample seq/spp is always
// the pixel currently being accumulated.
type imageAccumulator struct {
	width, height   int
	samplesPerPixel int
	img             *image.RGBA
	accum           core.Vec3
	samples         int
	pixel           int
}

func newImageAccumulator(width, height, samplesPerPixel int) *imageAccumulator {
	return &imageAccumulator{
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
		img:             image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// addResult consumes one in-order result. Failed rays contribute nothing;
// their pixel just averages over fewer effective samples.
func (ia *imageAccumulator) addResult(result engine.RayResult) {
	if result.Ok() {
		ia.accum = ia.accum.Add(result.Sample.Color)
	}
	ia.samples++

	if ia.samples == ia.samplesPerPixel {
		ia.flushPixel()
	}
}

func (ia *imageAccumulator) flushPixel() {
	colorVec := ia.accum.Multiply(1.0 / float64(ia.samplesPerPixel))
	ia.img.SetRGBA(ia.pixel%ia.width, ia.pixel/ia.width, vec3ToColor(colorVec))

	ia.accum = core.Vec3{}
	ia.samples = 0
	ia.pixel++
}

// image returns the rendered image, flushing any partially sampled pixel
// left over from an aborted run
func (ia *imageAccumulator) image() *image.RGBA {
	if ia.samples > 0 {
		ia.flushPixel()
	}
	return ia.img
}

// vec3ToColor converts linear radiance to RGBA with gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// upscale resizes the image by an integer factor using Catmull-Rom filtering
func upscale(img *image.RGBA, factor int) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// saveImage writes the render to <dir>/<scene>/render_<timestamp>_<run>.png
func saveImage(img *image.RGBA, dir, sceneType string, stats engine.RunStats) (string, error) {
	outputDir := filepath.Join(dir, sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	runTag := stats.RunID.String()[:8]
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s_%s.png", timestamp, runTag))

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
