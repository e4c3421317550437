package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/julienschmidt/httprouter"
)

// PreviewHandler serves a finished build from outDir. Extension-less paths
// resolve to "<path>.html" the same way the build names documents.
func PreviewHandler(outDir string) http.Handler {
	r := httprouter.New()
	serve := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		servePreview(w, req, outDir, ps.ByName("filepath"))
	}
	r.GET("/*filepath", serve)
	r.HEAD("/*filepath", serve)
	return r
}

func servePreview(w http.ResponseWriter, req *http.Request, outDir, requested string) {
	clean := path.Clean("/" + requested)

	var candidates []string
	switch {
	case clean == "/":
		candidates = []string{"index.html"}
	case path.Ext(clean) != "":
		candidates = []string{clean}
	default:
		candidates = []string{clean + ".html", path.Join(clean, "index.html")}
	}

	for _, candidate := range candidates {
		file := filepath.Join(outDir, filepath.FromSlash(candidate))
		if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
			http.ServeFile(w, req, file)
			return
		}
	}

	notFound, err := os.ReadFile(filepath.Join(outDir, "404.html"))
	if err != nil {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(notFound)
}
