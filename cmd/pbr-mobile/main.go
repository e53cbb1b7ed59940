// Command pbr-mobile is the gomobile build of the viewer. The mesh, its
// textures and an optional config.yaml are read from the app's assets.
//
//	gomobile build -target=android ./cmd/pbr-mobile
package main

import (
	"log/slog"
	"os"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"

	"pbr-viewer/config"
	"pbr-viewer/core"
	"pbr-viewer/internal/gles/mobile"
	"pbr-viewer/internal/host"
	"pbr-viewer/renderer"
	"pbr-viewer/scene"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	core.SetLogger(logger)

	app.Main(func(a app.App) {
		assets := host.FS{FS: assetFS{}}
		cfg := loadConfig(assets)

		mesh, err := host.LoadMesh(assets, cfg)
		if err != nil {
			logger.Error("failed to load mesh", "err", err)
			os.Exit(1)
		}

		var (
			ctx *mobile.Context
			r   *renderer.Renderer
			sz  size.Event
			p   host.Painter
		)
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					glctx, ok := e.DrawContext.(gl.Context)
					if !ok {
						logger.Error("no GL context on the draw surface")
						continue
					}
					ctx = mobile.New(glctx)
					r = start(ctx, assets, cfg, mesh)
					if sz.WidthPx > 0 {
						r.Resize(sz.WidthPx, sz.HeightPx)
					}
					p.Invalidate()
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					if r != nil {
						r.Destroy()
						r = nil
					}
					if ctx != nil {
						ctx.Invalidate()
						ctx = nil
					}
				}
			case size.Event:
				sz = e
				if r != nil {
					r.Resize(sz.WidthPx, sz.HeightPx)
					p.Invalidate()
					a.Send(paint.Event{})
				}
			case paint.Event:
				// redraw only when dirty: nothing in the scene moves
				if r == nil || !p.ShouldDraw(e) {
					continue
				}
				r.DrawFrame()
				a.Publish()
			}
		}
	})
}

// loadConfig reads config.yaml from the assets. A missing file means the
// defaults; a malformed one is fatal.
func loadConfig(assets host.FS) config.Config {
	f, err := assets.FS.Open(config.Filename)
	if err != nil {
		core.Logger().Info("no configuration asset, using defaults", "err", err)
		return config.Default()
	}
	f.Close()

	cfg, err := config.LoadFS(assets.FS, config.Filename)
	if err != nil {
		core.Logger().Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	return cfg
}

func start(ctx *mobile.Context, assets host.Assets, cfg config.Config, mesh *scene.Mesh) *renderer.Renderer {
	r, err := renderer.New(ctx, mesh, cfg)
	if err != nil {
		core.Logger().Error("failed to create renderer", "err", err)
		os.Exit(1)
	}
	if err := host.ApplyTextures(r, assets, cfg, mesh); err != nil {
		core.Logger().Error("failed to upload textures", "err", err)
		os.Exit(1)
	}
	return r
}
