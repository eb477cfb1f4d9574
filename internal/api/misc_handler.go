package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/api/shared"
	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/platform/mailer"
	"github.com/dstanton/taskminder/internal/service"
)

// MiscHandler serves the small unauthenticated endpoints: health check,
// productivity tip, and the test-email trigger.
type MiscHandler struct {
	mailer    mailer.Mailer
	validator *validator.Validate
}

// NewMiscHandler creates a new MiscHandler with the given dependencies.
func NewMiscHandler(m mailer.Mailer) *MiscHandler {
	return &MiscHandler{
		mailer:    m,
		validator: validator.New(),
	}
}

// Health handles GET /api/health.
func (h *MiscHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "Todo API is running",
	})
}

// ProductivityTip handles GET /api/productivity-tip.
func (h *MiscHandler) ProductivityTip(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, TipResponse{
		Tip: service.RandomTip(),
	})
}

// SendTestEmail handles POST /api/send-test-email. It dispatches a synthetic
// reminder through the real transport so operators can verify their SMTP
// configuration end to end.
func (h *MiscHandler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var req TestEmailRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	now := time.Now().UTC()
	testTask := &domain.Task{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Text:      "Test Reminder",
		Completed: false,
		CreatedAt: now,
		DueDate:   &now,
	}

	result, err := h.mailer.Send(r.Context(), testTask, req.Email)
	if result != mailer.Delivered {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to send test email. Check email configuration.", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Test email sent successfully",
	})
}
