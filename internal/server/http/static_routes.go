package httpserver

import (
	"net/http"
	"os"
	"path/filepath"
)

// RegisterStaticRoutes serves the frontend from dir at "/". Unknown paths
// without an extension fall back to index.html so client-side routes work.
func RegisterStaticRoutes(mux *http.ServeMux, dir string) {
	if mux == nil {
		return
	}
	if dir == "" {
		dir = "."
	}
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Cache-Control", "no-cache")
		}
		if filepath.Ext(r.URL.Path) == "" && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.Clean(r.URL.Path))); os.IsNotExist(err) {
				http.ServeFile(w, r, index)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}
