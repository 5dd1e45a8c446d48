package handlers

import (
	"net/http"

	"github.com/issafronov/playlistrelay/internal/app/models"
)

// Ping сообщает, что процесс жив. Внешний API не опрашивается.
func (h *Handler) Ping(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, http.StatusOK, models.StatusResponse{Status: "ok"})
}
