package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waggytails/walk-scheduler/internal/httperr"
)

func TestWriteDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		code       string
		wantStatus int
	}{
		{"slot_not_found", http.StatusNotFound},
		{"booking_not_found", http.StatusNotFound},
		{"slot_already_booked", http.StatusConflict},
		{"duplicate_review", http.StatusConflict},
		{"forbidden", http.StatusForbidden},
		{"dog_not_owned", http.StatusForbidden},
		{"invalid_transition", http.StatusBadRequest},
		{"cancellation_window_passed", http.StatusBadRequest},
		{"capacity_exceeded", http.StatusBadRequest},
		{"slot_locked", http.StatusBadRequest},
		{"not_eligible", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeDomainError(c, httperr.ErrBusiness(tt.code))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body httperr.HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteDomainErrorNonBusinessIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writeDomainError(c, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body.Code)
	assert.NotContains(t, body.Message, "pq:", "driver details never leak")
}
