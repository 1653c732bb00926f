package http

import (
	"Relink-Backend/internal/campaign"
	"Relink-Backend/internal/repository"
	"Relink-Backend/internal/service"
	"Relink-Backend/internal/visitor"
	"net/http"

	"go.uber.org/zap"
)

// Server wires the redirect handler into an HTTP handler tree.
type Server struct {
	redirectHandler *RedirectHandler
	log             *zap.Logger
}

// NewServer creates the HTTP server wiring.
func NewServer(
	storage repository.Storage,
	resolver *service.Resolver,
	injector *campaign.Injector,
	recorder *visitor.Recorder,
	homepage string,
	log *zap.Logger,
) *Server {
	return &Server{
		redirectHandler: NewRedirectHandler(resolver, injector, recorder, storage, homepage, log),
		log:             log,
	}
}

// SetupRoutes configures the routes. The whole surface is the catch-all
// redirect route; everything else this service needs lives behind it.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.redirectHandler.HandleRedirect)
	return s.withRecovery(mux)
}

// withRecovery converts handler panics into a 500 "Error" response, but only
// when nothing has been written yet; after that the failure is log-only.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracked := &trackingWriter{ResponseWriter: w}

		defer func() {
			if p := recover(); p != nil {
				s.log.Error("panic in request handler",
					zap.String("path", r.URL.Path), zap.Any("panic", p))
				if !tracked.wrote {
					http.Error(tracked, "Error", http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(tracked, r)
	})
}

// trackingWriter remembers whether a response has started.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(statusCode int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}
