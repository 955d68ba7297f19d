package http

import (
	"net/http"

	"github.com/jmllr/vidvault/internal/adapter/http/middleware"
)

type Server struct {
	mux      *http.ServeMux
	handlers *Handlers
}

// NewServer wires routes for ingestion, listing, streaming and static
// thumbnail serving. thumbDir is exposed read-only under /thumb/.
func NewServer(assets AssetService, thumbDir string, maxBytes int64) *Server {
	mux := http.NewServeMux()
	handlers := NewHandlers(assets, maxBytes)

	s := &Server{
		mux:      mux,
		handlers: handlers,
	}

	s.registerRoutes(thumbDir)

	return s
}

func (s *Server) registerRoutes(thumbDir string) {
	s.mux.HandleFunc("POST /api/videos/upload", s.handlers.Upload())
	s.mux.HandleFunc("GET /api/videos", s.handlers.List())
	s.mux.HandleFunc("GET /api/videos/{id}/stream", s.handlers.Stream())

	s.mux.Handle("GET /thumb/", http.StripPrefix("/thumb/", http.FileServer(http.Dir(thumbDir))))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.CORS(s.mux).ServeHTTP(w, r)
}
