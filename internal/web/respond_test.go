package web

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "almacen/internal/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			"validation", apperrors.NewValidationError("bad input"),
			http.StatusBadRequest, "VALIDATION_ERROR",
		},
		{
			"not found", apperrors.NewNotFoundError("product not found"),
			http.StatusNotFound, "NOT_FOUND",
		},
		{
			"consistency", apperrors.NewConsistencyError("not sellable"),
			http.StatusConflict, "CONSISTENCY_ERROR",
		},
		{
			"insufficient stock", apperrors.NewInsufficientStockError("Harina", decimal.NewFromInt(10), decimal.NewFromInt(2)),
			http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK",
		},
		{
			"no recipe", apperrors.NewNoRecipeError("Pan"),
			http.StatusUnprocessableEntity, "NO_RECIPE",
		},
		{
			"internal", apperrors.NewInternalError("query failed", stderrors.New("boom")),
			http.StatusInternalServerError, "INTERNAL_ERROR",
		},
		{
			"unknown", stderrors.New("boom"),
			http.StatusInternalServerError, "INTERNAL_ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(zap.NewNop(), rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]interface{}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body["error"])
		})
	}
}

func TestWriteError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(zap.NewNop(), rec, apperrors.NewInternalError("querying balance", stderrors.New("dsn user:secret@tcp")))

	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(zap.NewNop(), rec, http.StatusCreated, map[string]int{"id": 5})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":5}`, rec.Body.String())
}
