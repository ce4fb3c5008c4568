package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "almacen/internal/errors"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps the error taxonomy onto HTTP statuses: validation 400,
// missing reference 404, business-rule conflict 409, insufficient stock or
// missing recipe 422, anything else 500.
func WriteError(logger *zap.Logger, w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteJSON(logger, w, http.StatusBadRequest, errorResponse{
			Error:   "VALIDATION_ERROR",
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(logger, w, http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: nfe.Message,
		})
		return
	}

	if ce, ok := apperrors.IsConsistencyError(err); ok {
		WriteJSON(logger, w, http.StatusConflict, errorResponse{
			Error:   "CONSISTENCY_ERROR",
			Message: ce.Message,
		})
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		WriteJSON(logger, w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "INSUFFICIENT_STOCK",
			Message: ise.Error(),
		})
		return
	}

	if nre, ok := apperrors.IsNoRecipeError(err); ok {
		WriteJSON(logger, w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "NO_RECIPE",
			Message: nre.Error(),
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	WriteJSON(logger, w, http.StatusInternalServerError, errorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	})
}
