package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Brownie44l1/bank-marketing-api/internal/model"
)

// maxBodySize bounds the predict request body.
const maxBodySize = 1 << 20

type Handler struct {
	predictor *model.Predictor
	logger    *slog.Logger
}

func NewHandler(predictor *model.Predictor, logger *slog.Logger) *Handler {
	return &Handler{
		predictor: predictor,
		logger:    logger.With("handler", "predict"),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		RespondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		RespondError(w, h.logger, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	rec, err := model.ParseRecord(body)
	if err != nil {
		h.respondInvalid(w, err)
		return
	}

	label, err := h.predictor.Predict(rec)
	if err != nil {
		RespondError(w, h.logger, model.MapHTTPStatus(err), "prediction failed", err)
		return
	}

	RespondJSON(w, http.StatusOK, model.PredictionResponse{Prediction: label})
}

func (h *Handler) respondInvalid(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		RespondJSON(w, http.StatusUnprocessableEntity, map[string][]model.FieldError{"detail": verr.Fields})
		return
	}
	if errors.Is(err, model.ErrMalformedBody) {
		RespondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	RespondError(w, h.logger, model.MapHTTPStatus(err), "invalid request", err)
}
