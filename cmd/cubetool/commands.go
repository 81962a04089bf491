package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/assets"
	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/engine/panorama/cubemap"
	"github.com/Faultbox/panosphere/internal/engine/panorama/resolution"
	"github.com/Faultbox/panosphere/internal/engine/texture"
	"github.com/Faultbox/panosphere/internal/engine/window"
	"github.com/Faultbox/panosphere/internal/logger"
	"github.com/Faultbox/panosphere/internal/viewer"
)

const checkWorkers = 4

// env is the offline viewer the commands run against.
type env struct {
	host    *panorama.Host
	adapter panorama.Adapter
	backend *texture.CPUBackend
	assets  *assets.Manager
}

// newEnv builds a registry-backed cubemap adapter on an in-memory texture
// backend. extraRoots are searched before the configured roots.
func newEnv(cfg *config.Config, extraRoots ...string) (*env, error) {
	roots := append(append([]string(nil), extraRoots...), cfg.Assets.Roots...)
	manager := assets.NewManager(assets.Options{
		Roots:      roots,
		CacheBytes: int64(cfg.Assets.CacheMB) << 20,
		Log:        logger.Log,
	})
	backend := texture.NewCPUBackend()

	host := &panorama.Host{
		Loader:  manager,
		Backend: backend,
		TexLimits: texture.Limits{
			MaxTextureWidth: cfg.Textures.MaxTextureWidth,
			MaxCanvasWidth:  cfg.Textures.MaxCanvasWidth,
		},
		Log:       logger.Log,
		FisheyeOn: cfg.Viewer.Fisheye,
	}

	reg := panorama.NewRegistry()
	if err := reg.Register(cubemap.Info, cubemap.Factory(cubemap.Options{
		FlipTopBottom: cfg.Cubemap.FlipTopBottom,
	})); err != nil {
		return nil, err
	}
	adapter, err := reg.New(cubemap.Info.ID, host)
	if err != nil {
		return nil, err
	}

	return &env{host: host, adapter: adapter, backend: backend, assets: manager}, nil
}

func readDescriptor(path string) (panorama.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	src, err := cubemap.ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

type checkResult struct {
	path    string
	sizes   []string
	elapsed time.Duration
	err     error
}

func cmdCheck(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cubetool check <descriptor>...")
	}

	ctx, cancel := signalContext()
	defer cancel()

	results := make([]checkResult, len(args))
	pool := worker.NewDynamicWorkerPool(min(checkWorkers, len(args)), len(args), time.Second)

	var wg sync.WaitGroup
	for i, path := range args {
		wg.Add(1)
		idx, p := i, path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = checkOne(ctx, cfg, p)
				return nil, results[idx].err
			},
		})
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Printf("OK   %s (%s)\n", r.path, r.elapsed.Round(time.Millisecond))
		for i, size := range r.sizes {
			fmt.Printf("     %-6s %s\n", cubemap.Face(i), size)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d descriptors failed", failed, len(args))
	}
	return nil
}

func checkOne(ctx context.Context, cfg *config.Config, path string) checkResult {
	res := checkResult{path: path}
	start := time.Now()

	src, err := readDescriptor(path)
	if err != nil {
		res.err = err
		return res
	}
	if _, err := cubemap.Validate(src); err != nil {
		res.err = err
		return res
	}

	e, err := newEnv(cfg, filepath.Dir(path))
	if err != nil {
		res.err = err
		return res
	}
	data, err := e.adapter.LoadTexture(ctx, src)
	if err != nil {
		res.err = err
		return res
	}
	defer e.adapter.DisposeTexture(data)

	for _, tex := range data.Textures {
		res.sizes = append(res.sizes, fmt.Sprintf("%dx%d %s", tex.Width(), tex.Height(), tex.Name))
	}
	res.elapsed = time.Since(start)
	return res
}

func cmdNet(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cubetool net <descriptor> <out.png>")
	}
	descPath, outPath := args[0], args[1]

	src, err := readDescriptor(descPath)
	if err != nil {
		return err
	}
	e, err := newEnv(cfg, filepath.Dir(descPath))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	e.host.OnProgress = func(p float64) {
		fmt.Printf("\rLoading... %3.0f%%", p*100)
	}
	data, err := e.adapter.LoadTexture(ctx, src)
	fmt.Println()
	if err != nil {
		return err
	}

	// Bind through a mesh so the face orientation options apply.
	mesh := e.adapter.CreateMesh(1)
	e.adapter.SetTexture(mesh, data)
	defer e.adapter.DisposeTexture(data)

	net, err := cubemap.Unfold(data.Textures)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, net); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", outPath, net.Bounds().Dx(), net.Bounds().Dy())
	return nil
}

func cmdResolutions(cfg *config.Config, args []string) error {
	list, err := resolution.FromConfig(cfg.Resolutions, cubemap.DecodeNode)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No resolutions configured")
		return nil
	}

	fmt.Printf("%-10s %-20s %s\n", "ID", "LABEL", "FORM")
	for _, r := range list {
		valid := "ok"
		if _, err := cubemap.Validate(r.Panorama); err != nil {
			valid = err.Error()
		}
		fmt.Printf("%-10s %-20s %s (%s)\n", r.ID, r.Label, r.Panorama.Kind(), valid)
	}
	return nil
}

func cmdSwitch(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cubetool switch <id> [from]")
	}
	to := args[0]

	list, err := resolution.FromConfig(cfg.Resolutions, cubemap.DecodeNode)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no resolutions configured")
	}
	from := list[0].ID
	if len(args) > 1 {
		from = args[1]
	}

	root := "."
	if path := config.ConfigPath(); path != "" {
		root = filepath.Dir(path)
	}
	e, err := newEnv(cfg, root)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	stage := viewer.New(e.adapter, viewer.Config{Log: logger.Log})
	defer stage.Close()

	switcher := resolution.New(stage, resolution.Options{
		OnChange: func(id string) {
			fmt.Printf("Resolution: %q\n", id)
		},
		Log: logger.Log,
	})
	stage.OnPanoramaLoaded(func(panorama.Source) { switcher.PanoramaLoaded() })

	if err := switcher.SetResolutions(list); err != nil {
		return err
	}

	for _, id := range []string{from, to} {
		start := time.Now()
		if err := switcher.SetResolution(ctx, id); err != nil {
			return err
		}
		logger.Info("switched",
			zap.String("id", id),
			zap.String("badge", switcher.Badge()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("textures", e.backend.Live()))
	}

	fmt.Printf("Current: %s\n", switcher.Resolution())
	return nil
}

// cmdGPU uploads a panorama to a real OpenGL context through the stage.
func cmdGPU(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cubetool gpu <descriptor>")
	}
	src, err := readDescriptor(args[0])
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{Title: "cubetool", Width: 64, Height: 64, Hidden: true})
	if err != nil {
		return err
	}
	defer win.Close()

	e, err := newEnv(cfg, filepath.Dir(args[0]))
	if err != nil {
		return err
	}
	limits := texture.GLLimits(cfg.Textures.MaxCanvasWidth)
	if w := cfg.Textures.MaxTextureWidth; w > 0 && w < limits.MaxTextureWidth {
		limits.MaxTextureWidth = w
	}
	e.host.Backend = texture.GLBackend{Mipmaps: true}
	e.host.TexLimits = limits
	fmt.Printf("GL max texture width: %d\n", limits.MaxTextureWidth)

	ctx, cancel := signalContext()
	defer cancel()

	stage := viewer.New(e.adapter, viewer.Config{
		OnLoader: func(visible bool) {
			if visible {
				fmt.Println("Uploading...")
			}
		},
		OnFrame: func(float32) { win.SwapBuffers() },
		Log:     logger.Log,
	})
	defer stage.Close()

	if err := stage.SetPanorama(ctx, src, viewer.SetOptions{ShowLoader: true}); err != nil {
		return err
	}
	for i, mat := range stage.Mesh().Materials {
		fmt.Printf("  %-6s texture %d (%dx%d)\n", cubemap.Face(i), mat.Map.Handle(), mat.Map.Width(), mat.Map.Height())
	}

	// Fade the same panorama in again to exercise the transition path.
	return stage.SetPanorama(ctx, src, viewer.SetOptions{Transition: true})
}
