package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

// Pinger is a dependency checked by /healthz.
type Pinger func(ctx context.Context) error

// OpsModule serves /healthz and, when enabled, expvar metrics.
type OpsModule struct {
	Guards  Guards
	Checks  map[string]Pinger
	Metrics bool
}

func NewOpsModule(g Guards, checks map[string]Pinger, metrics bool) *OpsModule {
	return &OpsModule{Guards: g, Checks: checks, Metrics: metrics}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.health)
	if m.Metrics {
		rl := m.Guards.Limit(120, time.Minute, middleware.KeyByIP())
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
}

func (m *OpsModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(m.Checks))
	for name, ping := range m.Checks {
		if err := ping(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	if status != http.StatusOK {
		response.Error[any](c, status, "unhealthy", checks)
		return
	}
	response.Success(c, status, checks, "ok", nil)
}
