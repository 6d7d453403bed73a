package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wskoly/virtual-tryon/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	modelsHandler := handlers.NewModelsHandler(s.config, s.repo)
	categoriesHandler := handlers.NewCategoriesHandler(s.config, s.repo)
	uploadHandler := handlers.NewUploadHandler(s.config, s.repo)

	s.router.Get("/api/health", handlers.HealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/categories", categoriesHandler.List)
		r.Get("/models", modelsHandler.List)
		r.Post("/upload", uploadHandler.Upload)
		r.Delete("/models/{uuid}", modelsHandler.Delete)
	})

	// File mounts the viewer loads assets from.
	s.fileServer("/models", s.config.Storage.ModelsDir)
	s.fileServer("/static", s.config.Storage.StaticDir)

	s.router.Get("/", s.serveIndex)
}

// fileServer mounts a directory under the given URL prefix.
func (s *Server) fileServer(prefix, dir string) {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	s.router.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})
}

// serveIndex serves a placeholder page when no frontend is deployed.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Virtual Try-On</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Virtual Try-On</h1>
        <p>The viewer frontend is not deployed on this server.</p>
        <p>API is available at <a href="/api/health">/api/health</a></p>
    </div>
</body>
</html>`))
}
