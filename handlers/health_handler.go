package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pallavigowda6789-tech/attendance-system/database"
)

// GET /health — ใช้กับ load balancer / uptime probe
func Health(c echo.Context) error {
	dbStatus := "up"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
