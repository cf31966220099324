package handler

import (
	"net/http"

	"github.com/bidhub-api/internal/application/admin"
)

// Notifier raises user-facing toasts.
type Notifier interface {
	Success(message, title string) uint64
	Info(message, title string) uint64
	Error(message, title string) uint64
}

// AdminHandler exposes the admin bootstrap.
type AdminHandler struct {
	svc    admin.Service
	notify Notifier
}

func NewAdminHandler(svc admin.Service, notify Notifier) *AdminHandler {
	return &AdminHandler{svc: svc, notify: notify}
}

func (h *AdminHandler) InitAdmin(w http.ResponseWriter, r *http.Request) {
	out := h.svc.InitAdmin(r.Context())
	status, body := InitAdminResponse(out)
	if h.notify != nil {
		switch out.Kind {
		case admin.KindCreated:
			h.notify.Success(out.Message(), "Admin")
		case admin.KindExists:
			h.notify.Info(out.Message(), "Admin")
		default:
			h.notify.Error(out.Message(), "Admin")
		}
	}
	writeJSON(w, status, body)
}

// InitAdminResponse renders an Outcome as its HTTP status and body.
func InitAdminResponse(out admin.Outcome) (int, InitAdminEnvelope) {
	switch out.Kind {
	case admin.KindExists:
		return http.StatusOK, InitAdminEnvelope{Message: out.Message(), Exists: true}
	case admin.KindCreated:
		return http.StatusOK, InitAdminEnvelope{Message: out.Message(), Created: true, Email: out.Email}
	default:
		return http.StatusInternalServerError, InitAdminEnvelope{Error: out.Message()}
	}
}
