package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bidhub-api/internal/application/toast"
	"github.com/bidhub-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

const streamHeartbeat = 25 * time.Second

// ToastQueue is the part of the notification queue exposed over HTTP.
type ToastQueue interface {
	Enqueue(opts toast.Options) uint64
	Dismiss(id uint64)
	List() []toast.Toast
	Subscribe() <-chan toast.Event
	Unsubscribe(ch <-chan toast.Event)
}

type createToastRequest struct {
	Title    string         `json:"title"`
	Message  string         `json:"message" validate:"required"`
	Type     toast.Severity `json:"type"`
	Duration *int           `json:"duration"`
}

// ToastHandler exposes the process-wide toast queue.
type ToastHandler struct {
	queue ToastQueue
}

func NewToastHandler(queue ToastQueue) *ToastHandler {
	return &ToastHandler{queue: queue}
}

func (h *ToastHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ToastListEnvelope{Data: h.queue.List()})
}

func (h *ToastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createToastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id := h.queue.Enqueue(toast.Options{
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Duration: req.Duration,
	})
	writeJSON(w, http.StatusCreated, ToastCreatedEnvelope{ID: id})
}

// Dismiss hides a toast. Unknown ids are tolerated.
func (h *ToastHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid toast id")
		return
	}
	h.queue.Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}

// Stream sends the current snapshot, then every queue change, as Server-Sent Events.
func (h *ToastHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	events := h.queue.Subscribe()
	defer h.queue.Unsubscribe(events)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", h.queue.List()); err != nil {
		return
	}
	flusher.Flush()

	logger := hlog.FromRequest(r)
	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			if err := writeEvent(w, string(ev.Type), ev.Toast); err != nil {
				logger.Debug().Err(err).Msg("toast stream closed")
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
