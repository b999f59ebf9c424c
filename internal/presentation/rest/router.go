package rest

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bibbank/bib/pkg/auth"
	"github.com/bibbank/bib/pkg/observability"
)

// RouterConfig wires the HTTP surface of accountingd.
type RouterConfig struct {
	Health  *HealthHandler
	Journal *JournalHandler
	Metrics http.Handler
	JWT     *auth.JWTService
	Logger  *slog.Logger
}

// NewRouter mounts probes and metrics at the root and the journal queries
// under /v1, which require a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	r.Get("/healthz", cfg.Health.liveness)
	r.Get("/readyz", cfg.Health.readiness)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(bearerAuth(cfg.JWT))
		r.Get("/journal-entries", cfg.Journal.byTransaction)
		r.Get("/offices/{officeID}/journal-entries", cfg.Journal.byOffice)
		r.Get("/gl-accounts/{glAccountID}/journal-entries", cfg.Journal.byGLAccount)
	})

	return r
}

func bearerAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			l := logger.With("request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(ww, r.WithContext(observability.ContextWithLogger(r.Context(), l)))
			l.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
