package server

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

func StaticFilesFS() fs.FS {
	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("Failed to create sub filesystem: " + err.Error())
	}
	return subFS
}

// asset is an embedded file ready to serve
type asset struct {
	data        []byte
	contentType string
	etag        string
}

// loadAssets reads every embedded static file once, keyed by its URL path
func loadAssets() (map[string]asset, error) {
	assets := map[string]asset{}
	err := fs.WalkDir(StaticFilesFS(), ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(StaticFilesFS(), name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		sum := sha256.Sum256(data)
		assets["/"+name] = asset{
			data:        data,
			contentType: contentTypeOf(name, data),
			etag:        `"` + hex.EncodeToString(sum[:8]) + `"`,
		}
		return nil
	})
	return assets, err
}

func contentTypeOf(name string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(strings.ToLower(ctype), "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}

// serve writes the asset, or 304 when the browser already holds this version
func (a asset) serve(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("ETag", a.etag)
	if r.Header.Get("If-None-Match") == a.etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	w.Header().Set("Content-Type", a.contentType)
	if _, err := w.Write(a.data); err != nil {
		return fmt.Errorf("failed to write %s content: %w", r.URL.Path, err)
	}
	return nil
}
