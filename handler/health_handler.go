package handler

import (
	"context"
	"net/http"
	"time"

	"vidtube-api/common"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  Pings the database and reports the status of the server
// @Tags         health
// @Produce      json
// @Success      200  {object}  common.Response{data=map[string]string}
// @Failure      500  {object}  common.Response
// @Router       /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) *common.AppError {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return common.Internal("database is unreachable", err)
	}
	common.JSON(w, http.StatusOK, map[string]string{"status": "ok"}, "API is healthy and running")
	return nil
}
