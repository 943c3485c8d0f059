package gin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/jwt"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func init() {
	gin.SetMode(gin.TestMode)
}

func buildGate(t *testing.T, window time.Duration, max int) *goGate.Gate {
	t.Helper()

	gate, err := goGate.New().
		WithSecret(testSecret).
		WithRateLimit(window, max).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(gate.Close)
	return gate
}

func mintToken(t *testing.T, subject string) string {
	t.Helper()

	manager, err := jwt.NewManager(jwt.Config{
		SigningMethod: jwt.MethodHS256,
		Secret:        testSecret,
		AccessTTL:     time.Minute,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	token, err := manager.Create(subject, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return token
}

func newRouter(gate *goGate.Gate, table *goGate.RouteTable) *gin.Engine {
	r := gin.New()
	r.Use(Admission(gate, table))
	r.GET("/orders", func(c *gin.Context) {
		id, ok := c.Get(IdentityKey)
		if !ok {
			c.String(http.StatusInternalServerError, "identity missing")
			return
		}
		c.String(http.StatusOK, id.(*goGate.Identity).Subject)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestAdmissionAdmitsValidTokenAndExposesIdentity(t *testing.T) {
	gate := buildGate(t, time.Minute, 10)
	router := newRouter(gate, goGate.NewRouteTable())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "user-7"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "user-7" {
		t.Fatalf("expected identity subject in body, got %q", rec.Body.String())
	}
}

func TestAdmissionAbortsWithoutCredentials(t *testing.T) {
	gate := buildGate(t, time.Minute, 10)
	router := newRouter(gate, goGate.NewRouteTable())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdmissionPublicRouteSkipsBothStages(t *testing.T) {
	gate := buildGate(t, time.Minute, 10)
	table := goGate.NewRouteTable().Route(http.MethodGet, "/healthz", goGate.Public)
	router := newRouter(gate, table)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := gate.MetricsSnapshot().Counters[goGate.MetricPublicSkip]; got != 1 {
		t.Fatalf("expected 1 public skip, got %d", got)
	}
}

func TestAdmissionEnforcesQuota(t *testing.T) {
	gate := buildGate(t, time.Minute, 2)
	router := newRouter(gate, goGate.NewRouteTable())
	token := mintToken(t, "user-q")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}
