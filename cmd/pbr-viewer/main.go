// Command pbr-viewer opens a window and shows one mesh lit by a single
// point light.
//
//	pbr-viewer -mesh model.glb
//	pbr-viewer -config viewer.yaml -albedo bricks.png -debug
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pbr-viewer/config"
	"pbr-viewer/core"
	"pbr-viewer/internal/gles/desktop"
	"pbr-viewer/internal/host"
	"pbr-viewer/renderer"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		meshPath   = flag.String("mesh", "", "mesh to show (.obj, .gltf, .glb); overrides the configuration")
		albedoPath = flag.String("albedo", "", "albedo texture; overrides the configuration and the mesh material")
		depthPath  = flag.String("depth", "", "depth texture; overrides the configuration")
		debug      = flag.Bool("debug", false, "log at debug level")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	core.SetLogger(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Error("failed to load configuration", "err", err)
			os.Exit(1)
		}
	}
	if *meshPath != "" {
		cfg.Mesh = *meshPath
	}
	if *albedoPath != "" {
		cfg.Textures.Albedo = *albedoPath
	}
	if *depthPath != "" {
		cfg.Textures.Depth = *depthPath
	}

	if err := run(cfg); err != nil {
		logger.Error("pbr-viewer", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	assets := host.Files{}

	// Decode on the CPU before a window exists so a bad file never opens one.
	mesh, err := host.LoadMesh(assets, cfg)
	if err != nil {
		return err
	}

	window, err := core.NewWindow(cfg.WindowConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	ctx, err := desktop.New(window)
	if err != nil {
		return err
	}

	r, err := renderer.New(ctx, mesh, cfg)
	if err != nil {
		return err
	}
	// runs before window.Destroy while the context is still current
	defer r.Destroy()

	if err := host.ApplyTextures(r, assets, cfg, mesh); err != nil {
		return fmt.Errorf("textures: %w", err)
	}

	window.SetResizeCallback(r.Resize)
	r.Resize(window.GetFramebufferSize())

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			window.Close()
		}
		r.DrawFrame()
		window.SwapBuffers()
	}
	return nil
}
