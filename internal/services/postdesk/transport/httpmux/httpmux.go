// Package httpmux mounts postdesk routes and static assets on a root mux.
package httpmux

import (
	"io/fs"
	"net/http"

	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
)

// MountStatic mounts static asset serving under the static prefix.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, wrap func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if wrap != nil {
		staticHandler = wrap(staticHandler)
	}
	rootMux.Handle("GET "+routepath.StaticPrefix, staticHandler)
}

// CacheStatic sets a short public cache lifetime on static responses.
func CacheStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=300")
		next.ServeHTTP(w, r)
	})
}
