package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gatherhub/server/internal/api/handlers"
	"github.com/gatherhub/server/internal/api/middleware"
	"github.com/gatherhub/server/internal/config"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/metrics"
	"github.com/gatherhub/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewRouter assembles the HTTP surface: event routes, liveness/readiness,
// and the metrics endpoint, wrapped in the shared middleware chain.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, version string) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	eventsService := events.NewService(repo.Events())
	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)

	mux := http.NewServeMux()
	handle := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, middleware.Metrics(pattern, handler))
	}

	// "/{$}" matches only the root path; anything unregistered 404s.
	handle("/{$}", methodMux(map[string]http.Handler{
		http.MethodGet: handlers.Root(),
	}))
	handle("/healthz", handlers.Healthz(version))
	handle("/readyz", handlers.Readyz(pool))
	handle("/metrics", metrics.Handler())

	handle("/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: http.HandlerFunc(eventsHandler.Create),
	}))
	handle("/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodDelete: http.HandlerFunc(eventsHandler.Delete),
	}))
	handle("/events/{id}/rsvp", methodMux(map[string]http.Handler{
		http.MethodPatch: http.HandlerFunc(eventsHandler.RSVP),
	}))
	handle("/events/{id}/calendar.ics", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.Calendar),
	}))

	var handler http.Handler = mux
	handler = middleware.RequestSize(middleware.DefaultMaxBodySize)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler, nil
}

func methodMux(byMethod map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := byMethod[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(byMethod))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(byMethod map[string]http.Handler) string {
	methods := make([]string, 0, len(byMethod))
	for method := range byMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
