package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/link2cory/echo-hello-world/internal/middleware"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// HealthHandler exposes a "system" endpoint that load balancers and uptime
// monitors use to verify the service is alive. The service has no external
// dependencies, so being able to answer is the whole check.
type HealthHandler struct {
	Handler
	startedAt time.Time
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler:   NewHandler(s),
		startedAt: time.Now(),
	}
}

// CheckHealth returns 200 with status, timestamp, environment and uptime.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"service":     h.server.Config.Observability.ServiceName,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.server.LoggerService.RecordEvent("HealthCheckError", map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	logger.Debug().Msg("health check passed")
	return nil
}
