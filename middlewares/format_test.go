package middlewares

import (
	"AyurClinic/models"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrDuplicateEntity, http.StatusConflict},
		{models.ErrSlotUnavailable, http.StatusConflict},
		{models.ErrInvalidStateTransition, http.StatusConflict},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrAccountLocked, http.StatusUnauthorized},
		{models.ErrAccountInactive, http.StatusUnauthorized},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrForbidden, http.StatusForbidden},
		{models.NewValidationError("date", "must be in the future"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		WriteError(c, tt.err)
		if w.Code != tt.wantStatus {
			t.Errorf("WriteError(%v) status = %d, want %d", tt.err, w.Code, tt.wantStatus)
		}
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteError(c, fmt.Errorf("pq: connection to host db-internal:5432 refused"))
	if strings.Contains(w.Body.String(), "db-internal") {
		t.Error("internal error detail leaked into the response body")
	}
}

func TestWriteErrorIncludesFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteError(c, models.NewValidationError("start_time", "must be a 24-hour HH:MM time"))
	if !strings.Contains(w.Body.String(), "start_time") {
		t.Errorf("field errors missing from body: %s", w.Body.String())
	}
}
