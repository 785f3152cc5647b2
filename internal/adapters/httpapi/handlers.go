package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type handler struct {
	assistant Assistant
	logger    zerolog.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listTools(w http.ResponseWriter, r *http.Request) {
	defs := h.assistant.Tools()
	out := make([]toolDTO, 0, len(defs))
	for _, def := range defs {
		out = append(out, toToolDTO(def))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (h *handler) startSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SessionID string `json:"sessionId"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	conversation, err := h.assistant.StartSession(r.Context(), identityFrom(r.Context()), in.SessionID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionDTO{
		SessionID:      conversation.SessionID,
		Language:       string(conversation.Language),
		ActiveClientID: conversation.ActiveClientID,
	})
}

func (h *handler) postMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	var in struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if err := h.assistant.Authorize(r.Context(), sessionID, identityFrom(r.Context())); err != nil {
		h.writeFailure(w, err)
		return
	}
	resp, err := h.assistant.HandleUserMessage(r.Context(), sessionID, in.Text)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponseDTO(resp))
}

func (h *handler) endSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]
	if err := h.assistant.Authorize(r.Context(), sessionID, identityFrom(r.Context())); err != nil {
		h.writeFailure(w, err)
		return
	}
	if err := h.assistant.EndSession(r.Context(), sessionID); err != nil {
		h.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrScopeViolation):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error().Stack().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: http.StatusText(status), Code: status, Message: message})
}
