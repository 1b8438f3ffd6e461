package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/middleware"
	"slotbook/models"
	"slotbook/services/booking"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

func TestParseFrom(t *testing.T) {
	want := time.Date(2030, 1, 1, 10, 15, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"", time.Time{}, true},
		{"2030-01-01T10:15", want, true},
		{"2030-01-01T10:15:00", want, true},
		{"2030-01-01T10:15:00+05:30", want, true},
		{"2030-01-01", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"soon", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := parseFrom(tc.in)
		if ok != tc.ok || !got.Equal(tc.want) {
			t.Errorf("parseFrom(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

type stubBooking struct {
	booking.BookingService
	confirms int
}

func (s *stubBooking) Confirm(ctx context.Context, userID string, req models.ConfirmRequest) (*models.BookingResult, error) {
	s.confirms++
	return &models.BookingResult{Appointment: &models.Appointment{ID: "appt-1"}}, nil
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(ctx context.Context, req models.ConfirmRequest) error {
	return utils.NewValidationError("Payment has not succeeded")
}

func confirmRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/confirm", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "alice")
		c.Set(middleware.CtxRole, utils.RoleConsumer)
		c.Next()
	}, h.ConfirmHandler)
	return r
}

func postConfirm(r http.Handler, body string) int {
	req := httptest.NewRequest(http.MethodPost, "/confirm", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestConfirmHandlerVerifiesPaymentFirst(t *testing.T) {
	svc := &stubBooking{}
	r := confirmRouter(&BookingHandler{Service: svc, Verifier: rejectingVerifier{}})

	if code := postConfirm(r, `{"slotId":"s1","amount":500,"gatewayOrderId":"o1"}`); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if svc.confirms != 0 {
		t.Fatal("booking must not run when the payment is rejected")
	}
}

func TestConfirmHandler(t *testing.T) {
	svc := &stubBooking{}
	r := confirmRouter(NewBookingHandler(svc, nil))

	if code := postConfirm(r, `{"slotId":`); code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", code)
	}
	if code := postConfirm(r, `{"slotId":"s1","amount":500,"gatewayOrderId":"o1"}`); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if svc.confirms != 1 {
		t.Fatalf("expected one confirm, got %d", svc.confirms)
	}
}
