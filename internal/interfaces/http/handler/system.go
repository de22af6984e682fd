package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockdash/backend/internal/infrastructure/logger"
	"github.com/stockdash/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler serves health and build information
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	storage   string
	pinger    Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. pinger may be nil when the
// store has nothing to ping (memory driver).
func NewSystemHandler(name, version, storage string, pinger Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		storage:   storage,
		pinger:    pinger,
		startTime: time.Now(),
	}
}

// HealthResponse is the health probe body
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Uptime  string `json:"uptime"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
}

// Health answers 200 when the store is reachable and 503 otherwise
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:  "ok",
		Storage: h.storage,
		Uptime:  h.uptime(),
	}
	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			logger.L(c.Request.Context()).Warn("Health check failed", zap.Error(err))
			resp.Status = "unavailable"
			c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp, Error: "Storage unavailable"})
			return
		}
	}
	h.Success(c, resp)
}

// Info returns basic build and runtime information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    h.uptime(),
	})
}

func (h *SystemHandler) uptime() string {
	return time.Since(h.startTime).Round(time.Second).String()
}
