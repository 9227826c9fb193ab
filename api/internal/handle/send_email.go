package handle

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"palmyst/api/internal/apperr"
	"palmyst/api/internal/models"
)

const sendFailedMessage = "Failed to send email."

type SendEmailRequest struct {
	Email     string           `json:"email"`
	Reading   string           `json:"reading"`
	ReadingID models.ReadingID `json:"readingId"`
}

func (h *Handle) SendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	log := h.logger(r)

	var req SendEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("send-email: bad request body", zap.Error(err))
		writeError(w, err, sendFailedMessage)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, apperr.New(apperr.CodeBadRequest, "Email is required."), sendFailedMessage)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.notifier.Notify(ctx, req.ReadingID, req.Email, req.Reading); err != nil {
		log.Error("send-email: failed", zap.Stringer("reading_id", req.ReadingID), zap.Error(err))
		writeError(w, err, sendFailedMessage)
		return
	}
	writeMessage(w, http.StatusOK, "Email sent successfully!")
}
