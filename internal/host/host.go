// Package host holds what the desktop and mobile viewers share: finding the
// mesh, picking the textures handed to the renderer, and deciding when a
// frame needs drawing.
package host

import (
	"fmt"
	"io/fs"

	"pbr-viewer/config"
	"pbr-viewer/core"
	"pbr-viewer/renderer"
	"pbr-viewer/scene"
)

// Assets resolves the names found in a config.Config.
type Assets interface {
	Mesh(name string, opts ...scene.LoadOption) (*scene.Mesh, error)
	Texture(name string, maxSize int) (*scene.Texture, error)
}

// Files reads assets from the operating system's file system. Names are
// host paths.
type Files struct{}

func (Files) Mesh(name string, opts ...scene.LoadOption) (*scene.Mesh, error) {
	return scene.LoadMeshFile(name, opts...)
}

func (Files) Texture(name string, maxSize int) (*scene.Texture, error) {
	return scene.LoadTexture(name, maxSize)
}

// FS reads assets from an fs.FS. Names are slash-separated.
type FS struct {
	FS fs.FS
}

func (a FS) Mesh(name string, opts ...scene.LoadOption) (*scene.Mesh, error) {
	return scene.LoadMesh(a.FS, name, opts...)
}

func (a FS) Texture(name string, maxSize int) (*scene.Texture, error) {
	return scene.LoadTextureFS(a.FS, name, maxSize)
}

// LoadMesh loads the configured mesh. With no mesh configured the built-in
// unit cube is returned.
func LoadMesh(assets Assets, cfg config.Config) (*scene.Mesh, error) {
	if cfg.Mesh == "" {
		core.Logger().Info("no mesh configured, using the built-in cube")
		return scene.CreateCube(1), nil
	}
	opts := []scene.LoadOption{scene.WithMaxTextureSize(cfg.Textures.MaxSize)}
	if cfg.Textures.Albedo != "" {
		// the configured albedo replaces the material's
		opts = append(opts, scene.WithoutTextures())
	}
	return assets.Mesh(cfg.Mesh, opts...)
}

// ApplyTextures uploads the albedo and depth textures. A configured file
// wins over the mesh's material texture; without either a white texel is
// used so the samplers never read an incomplete texture.
func ApplyTextures(r *renderer.Renderer, assets Assets, cfg config.Config, mesh *scene.Mesh) error {
	albedo, err := pick(assets, cfg.Textures.Albedo, cfg.Textures.MaxSize, mesh.AlbedoTexture)
	if err != nil {
		return fmt.Errorf("albedo: %w", err)
	}
	if err := r.SetSceneTexture(renderer.SlotAlbedo, albedo); err != nil {
		return err
	}

	depth, err := pick(assets, cfg.Textures.Depth, cfg.Textures.MaxSize, nil)
	if err != nil {
		return fmt.Errorf("depth: %w", err)
	}
	return r.SetSceneTexture(renderer.SlotDepth, depth)
}

func pick(assets Assets, name string, maxSize int, fallback *scene.Texture) (*scene.Texture, error) {
	switch {
	case name != "":
		return assets.Texture(name, maxSize)
	case fallback != nil:
		return fallback, nil
	}
	return scene.NewSolidTexture("white", 255, 255, 255, 255), nil
}
