package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/czechplus-backend/internal/config"
	"github.com/heartmarshall/czechplus-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/czechplus-backend/internal/transport/middleware"
	"github.com/heartmarshall/czechplus-backend/internal/transport/rest"
)

const maxBodyBytes = 1 << 20

// NewRouter registers every route. Health endpoints bypass rate limiting;
// the GraphQL endpoint is limited per client and gets fresh dataloaders per
// request.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	limiter *middleware.RateLimiter,
	health *rest.HealthHandler,
	gql http.Handler,
	repos *dataloader.Repos,
) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("/graphql", middleware.Chain(
		limiter.Limit(cfg.Server.RateLimit),
		dataloader.Middleware(repos),
	)(http.MaxBytesHandler(gql, maxBodyBytes)))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
