package controllers

import (
	"context"
	"net/http"

	"github.com/carebridge/caregiver-service/internal/app"
	"github.com/carebridge/caregiver-service/internal/dtos"
	"github.com/carebridge/caregiver-service/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// Probe the registry; the pairing cache is in-process and cannot fail.
	if err := c.app.DB.Ping(context.Background()); err != nil {
		utils.Logger.WithError(err).Error("caregiver-service unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "OK", dtos.HealthCheckResponse{Status: "OK"})
}
