package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// HealthService is the service name reported on the gRPC health endpoint.
const HealthService = "visiting-cards"

type HealthHandler struct {
	db     *repository.DB
	cards  *cards.Service
	logger *slog.Logger
}

func NewHealthHandler(db *repository.DB, svc *cards.Service, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, cards: svc, logger: logger}
}

// Home handles GET /.
func (h *HealthHandler) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Visiting Card backend running"})
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	if h.db != nil {
		if err := PingDB(r.Context(), h.db, h.logger, 2*time.Second); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	code := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			code = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, code, map[string]any{"status": statusStr(code), "checks": checks})
}

// Count handles GET /api/debug/count.
func (h *HealthHandler) Count(w http.ResponseWriter, r *http.Request) {
	counts, err := h.cards.Counts(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	dialect := ""
	if h.db != nil {
		dialect = h.db.Dialect()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"db":           dialect,
		"collection":   "cards",
		"total_docs":   counts.Total,
		"active_docs":  counts.Active,
		"deleted_docs": counts.Deleted,
	})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

// NewGRPCHealth returns a gRPC health server reporting SERVING for the overall server and
// HealthService.
func NewGRPCHealth() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(HealthService, healthpb.HealthCheckResponse_SERVING)
	return hs
}

// WatchDB flips HealthService between SERVING and NOT_SERVING as database pings succeed or
// fail, until ctx is done.
func WatchDB(ctx context.Context, hs *health.Server, db *repository.DB, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_SERVING
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		next := healthpb.HealthCheckResponse_SERVING
		if err := PingDB(ctx, db, logger, interval/2); err != nil {
			next = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if next != last {
			logger.Warn("health status changed", "service", HealthService, "status", next.String())
			hs.SetServingStatus(HealthService, next)
			last = next
		}
	}
}
