package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bidhub-api/internal/application/session"
	"github.com/bidhub-api/internal/pkg/validate"
	"github.com/bidhub-api/internal/transport/http/middleware"
	"github.com/rs/zerolog/hlog"
)

// SessionHandler handles session endpoints.
type SessionHandler struct {
	svc          session.Service
	secureCookie bool
}

func NewSessionHandler(svc session.Service, secureCookie bool) *SessionHandler {
	return &SessionHandler{svc: svc, secureCookie: secureCookie}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		status := httpError(err)
		if status == http.StatusInternalServerError {
			hlog.FromRequest(r).Error().Err(err).Msg("login failed")
			writeError(w, status, "internal server error")
			return
		}
		writeError(w, status, "invalid credentials")
		return
	}
	h.setCookie(w, result.Bearer, result.ExpiresAt)
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, Session: result.Session})
}

func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	cur, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sess, err := h.svc.GetCurrent(r.Context(), cur.SessionID)
	if err != nil {
		writeError(w, httpError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{Session: sess})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cur, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Logout(r.Context(), cur.SessionID); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session_id", cur.SessionID).Msg("logout failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.setCookie(w, "", time.Unix(0, 0))
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

// setCookie writes the session cookie; an empty value clears it.
func (h *SessionHandler) setCookie(w http.ResponseWriter, value string, expires time.Time) {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
