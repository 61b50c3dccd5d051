package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the static frontend from a directory, falling back
// to the index file for paths that do not match a file on disk.
type FrontendHandler struct {
	dir       string
	indexFile string
}

func NewFrontendHandler(dir string, indexFile string) *FrontendHandler {
	return &FrontendHandler{dir: dir, indexFile: indexFile}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")
	if requested == "" {
		requested = h.indexFile
	}

	path := filepath.Join(h.dir, requested)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		path = filepath.Join(h.dir, h.indexFile)
	}

	http.ServeFile(w, r, path)
}
