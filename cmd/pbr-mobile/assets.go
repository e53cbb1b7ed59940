package main

import (
	"io"
	"io/fs"
	"time"

	"golang.org/x/mobile/asset"
)

// assetFS exposes the app's bundled assets as an fs.FS. Assets are flat
// files; directories cannot be listed or opened.
type assetFS struct{}

func (assetFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := asset.Open(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &assetFile{File: f, name: name}, nil
}

type assetFile struct {
	asset.File
	name string
}

func (f *assetFile) Stat() (fs.FileInfo, error) {
	cur, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(cur, io.SeekStart); err != nil {
		return nil, err
	}
	return assetInfo{name: f.name, size: size}, nil
}

type assetInfo struct {
	name string
	size int64
}

func (i assetInfo) Name() string       { return i.name }
func (i assetInfo) Size() int64        { return i.size }
func (i assetInfo) Mode() fs.FileMode  { return 0o444 }
func (i assetInfo) ModTime() time.Time { return time.Time{} }
func (i assetInfo) IsDir() bool        { return false }
func (i assetInfo) Sys() any           { return nil }
