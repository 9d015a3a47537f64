package handler

import (
	"net/http"
	"office-graph-api/common"
	"office-graph-api/model"
)

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  get the status of server
// @Tags         health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "API is healthy and running"})
}

// Ping godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  model.MessageResponse
// @Router       /ping [get]
func Ping(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "pong"})
}
