package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("hold: %w", NewConflictError("Slot is not available for booking"))
	if got := KindOf(wrapped); got != KindConflict {
		t.Fatalf("expected conflict, got %s", got)
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected internal for plain errors, got %s", got)
	}
	if IsKind(nil, KindInternal) {
		t.Fatal("nil error must not match any kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		KindValidation:    http.StatusBadRequest,
		KindUnauthorized:  http.StatusUnauthorized,
		KindAuthorization: http.StatusForbidden,
		KindConflict:      http.StatusConflict,
		KindNotFound:      http.StatusNotFound,
		KindInternal:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("mongo: connection refused on 10.0.0.3"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != KindInternal || body.Message != "Something went wrong" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
