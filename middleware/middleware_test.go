package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/config"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"userID": id.UserID, "role": id.Role})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, sub, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateToken(sub, role, ttl)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(JWTAuthMiddleware())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", token(t, "u1", utils.RoleConsumer, -time.Minute), http.StatusUnauthorized},
		{"valid", token(t, "u1", utils.RoleConsumer, time.Hour), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(r, tc.header); w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(), RequireRole(utils.RoleProvider, utils.RoleAdmin))

	if w := do(r, token(t, "u1", utils.RoleConsumer, time.Hour)); w.Code != http.StatusForbidden {
		t.Fatalf("consumer should be forbidden, got %d", w.Code)
	}
	if w := do(r, token(t, "p1", utils.RoleProvider, time.Hour)); w.Code != http.StatusOK {
		t.Fatalf("provider should pass, got %d", w.Code)
	}

	bare := newRouter(RequireRole(utils.RoleAdmin))
	if w := do(bare, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing identity should be 401, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2, zap.NewNop()))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("1.1.1.1"); code != http.StatusOK {
			t.Fatalf("request %d rejected early: %d", i, code)
		}
	}
	if code := send("1.1.1.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if code := send("2.2.2.2"); code != http.StatusOK {
		t.Fatalf("other clients must not share the budget, got %d", code)
	}
}
