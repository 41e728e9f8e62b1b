package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tvalert_go/internal/domain"
	"tvalert_go/internal/infra"
)

// handleWebhook processes one TradingView alert: shape validation, then the
// shared-secret check, then best-effort delivery. The ordering matters: a
// payload that fails validation must never learn whether its secret was
// right, and delivery must never start before authentication.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	// Unexpected failures inside this handler become a generic 500; the
	// process keeps serving.
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("Error processing webhook", slog.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to process alert"})
		}
	}()

	var alert domain.Alert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&alert); err != nil {
		s.rejectShape(w, err)
		return
	}
	if dec.More() {
		s.rejectShape(w, errTrailingContent)
		return
	}
	if err := alert.Validate(); err != nil {
		s.rejectShape(w, err)
		return
	}

	if alert.Secret != s.cfg.Server.WebhookSecret {
		s.logger.Warn("Invalid webhook secret", slog.String("remote", r.RemoteAddr))
		infra.AlertsRejected.WithLabelValues("secret").Inc()
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	// Authenticated: the credential plays no part in delivery.
	alert.Secret = ""

	s.notifier.Send(r.Context(), &alert)

	s.logger.Info("Successfully processed alert",
		slog.String("symbol", alert.Symbol), slog.String("action", string(alert.Action)))
	infra.AlertsAccepted.WithLabelValues(string(alert.Action)).Inc()
	writeJSON(w, http.StatusOK, ackResponse{Success: true, Message: "Alert processed"})
}

// rejectShape logs the validation detail internally and answers with a
// generic message only.
func (s *Server) rejectShape(w http.ResponseWriter, err error) {
	s.logger.Warn("Invalid request data", slog.Any("error", err))
	infra.AlertsRejected.WithLabelValues("shape").Inc()
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request data"})
}
