package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kaiyuanli/playroom/backend/internal/events"
	sessionHandler "github.com/kaiyuanli/playroom/backend/internal/handler/session"
	"github.com/kaiyuanli/playroom/backend/internal/metrics"
	middlewarePkg "github.com/kaiyuanli/playroom/backend/internal/middleware"
	sessionservice "github.com/kaiyuanli/playroom/backend/internal/service/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(sessionSvc *sessionservice.Service, hub *events.Hub, m *metrics.Metrics, allowedOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigin))
	r.Use(middlewarePkg.EchoRequestID)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.New(sessionSvc).RegisterRoutes(api)
	})

	if hub != nil {
		r.Get("/ws", hub.ServeWS)
	}

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
