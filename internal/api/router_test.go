package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"trip-logbook-service/internal/adapters/repositories"
	"trip-logbook-service/internal/adapters/routing"
	"trip-logbook-service/internal/api/dto"
	"trip-logbook-service/internal/api/handlers"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/db"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

const tripBody = `{"currentLocation":"-112,33","pickupLocation":"-110,32","dropoffLocation":"-100,36","currentCycleUsed":"0"}`

func newTestRouter(t *testing.T, checks map[string]handlers.HealthCheck) http.Handler {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := repositories.InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	routes := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: domain.Coordinates{Lon: -112, Lat: 33}, To: domain.Coordinates{Lon: -110, Lat: 32}, Meters: 200000, Seconds: 2 * 3600, Geometry: "dh"},
		{From: domain.Coordinates{Lon: -110, Lat: 32}, To: domain.Coordinates{Lon: -100, Lat: 36}, Meters: 1800000, Seconds: 18 * 3600, Geometry: "tr"},
	})

	return NewRouter(RouterDeps{
		Routes:         routes,
		Store:          repositories.NewSqliteLogbookStore(conn),
		Rules:          domain.Property70Hour8Day(),
		JWTSecret:      testSecret,
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		HealthChecks:   checks,
	})
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookie)
	return nil
}

func TestCalculateTripAnonymousSession(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/calculate-trip/", strings.NewReader(tripBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Errorf("missing %s header", requestIDHeader)
	}

	var res dto.CalculateTripResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rd := res.RouteData
	if rd.TotalDrivingHours != 20 || rd.RequiredDays != 2 || !rd.FullyScheduled {
		t.Errorf("unexpected route data %+v", rd)
	}
	if rd.DeadheadMiles != 124.3 || rd.TransportMiles != 1118.5 {
		t.Errorf("miles = %v / %v", rd.DeadheadMiles, rd.TransportMiles)
	}
	if len(rd.RouteGeometry) != 2 || rd.RouteGeometry[0] != "dh" {
		t.Errorf("geometry = %v", rd.RouteGeometry)
	}
	if len(res.LogbookEvents) != 2 || res.LogbookEvents[0].Events[0].Status != "OFF_DUTY" {
		t.Fatalf("logbook = %+v", res.LogbookEvents)
	}

	cookie := sessionCookieFrom(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate-trip/", strings.NewReader(tripBody))
	req.AddCookie(cookie)
	rec = do(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second trip status = %d", rec.Code)
	}

	res = dto.CalculateTripResponse{}
	json.NewDecoder(rec.Body).Decode(&res)
	if len(res.LogbookEvents) != 4 || res.LogbookEvents[3].Day != 4 {
		t.Fatalf("second trip should continue history, got %d days", len(res.LogbookEvents))
	}
	if res.RouteData.RequiredDays != 2 {
		t.Errorf("required days = %d, want 2", res.RouteData.RequiredDays)
	}
}

func TestCalculateTripValidation(t *testing.T) {
	h := newTestRouter(t, nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad json", `{`, "invalid json body"},
		{"missing pickup", `{"currentLocation":"-112,33","dropoffLocation":"-100,36"}`, "'pickupLocation'"},
		{"negative cycle", `{"currentLocation":"-112,33","pickupLocation":"-110,32","dropoffLocation":"-100,36","currentCycleUsed":-1}`, "currentCycleUsed"},
		{"unparseable location", `{"currentLocation":"nowhere","pickupLocation":"-110,32","dropoffLocation":"-100,36"}`, "Coordinate parsing error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(h, httptest.NewRequest(http.MethodPost, "/api/calculate-trip/", strings.NewReader(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var body map[string]string
			json.NewDecoder(rec.Body).Decode(&body)
			if !strings.Contains(body["message"], tc.want) {
				t.Errorf("message = %q, want it to contain %q", body["message"], tc.want)
			}
		})
	}
}

func TestCalculateTripUnknownRoute(t *testing.T) {
	h := newTestRouter(t, nil)

	body := `{"currentLocation":"1,1","pickupLocation":"2,2","dropoffLocation":"3,3"}`
	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/calculate-trip/", strings.NewReader(body)))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestCalculateTripMethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/calculate-trip/", nil))
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("status = %d allow=%q", rec.Code, rec.Header().Get("Allow"))
	}
}

func TestBearerTokenOwnsLogbook(t *testing.T) {
	h := newTestRouter(t, nil)
	token := signToken(t, jwt.MapClaims{"sub": "driver-7", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate-trip/", strings.NewReader(tripBody))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := do(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			t.Errorf("authenticated request should not get a session cookie")
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/api/logbook/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = do(h, req)

	var lb dto.LogbookResponse
	json.NewDecoder(rec.Body).Decode(&lb)
	if rec.Code != http.StatusOK || len(lb.LogbookEvents) != 2 {
		t.Fatalf("status = %d days = %d", rec.Code, len(lb.LogbookEvents))
	}

	// A different anonymous caller sees nothing.
	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/logbook/", nil))
	lb = dto.LogbookResponse{}
	json.NewDecoder(rec.Body).Decode(&lb)
	if len(lb.LogbookEvents) != 0 {
		t.Fatalf("anonymous caller saw %d days", len(lb.LogbookEvents))
	}
}

func TestInvalidBearerTokens(t *testing.T) {
	h := newTestRouter(t, nil)

	other, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("other"))
	cases := map[string]string{
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not-a-jwt",
		"wrong secret": "Bearer " + other,
		"expired":      "Bearer " + signToken(t, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()}),
		"missing sub":  "Bearer " + signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/logbook/", nil)
			req.Header.Set("Authorization", header)

			rec := do(h, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Errorf("missing WWW-Authenticate header")
			}
		})
	}
}

func TestDeleteLogbook(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/calculate-trip/", strings.NewReader(tripBody)))
	cookie := sessionCookieFrom(t, rec)

	req := httptest.NewRequest(http.MethodDelete, "/api/logbook/", nil)
	req.AddCookie(cookie)
	if rec := do(h, req); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/logbook/", nil)
	req.AddCookie(cookie)
	rec = do(h, req)

	var lb dto.LogbookResponse
	json.NewDecoder(rec.Body).Decode(&lb)
	if len(lb.LogbookEvents) != 0 {
		t.Fatalf("logbook not cleared: %d days", len(lb.LogbookEvents))
	}
}

func TestSessionCookieReplacedWhenMalformed(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logbook/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "../../etc"})
	rec := do(h, req)

	if c := sessionCookieFrom(t, rec); c.Value == "../../etc" || c.MaxAge != 3600 {
		t.Fatalf("cookie = %+v", c)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/calculate-trip/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := do(h, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, map[string]handlers.HealthCheck{
		"db": func(context.Context) error { return nil },
	})

	rec := do(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	h = newTestRouter(t, map[string]handlers.HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	rec = do(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if rec.Code != http.StatusServiceUnavailable || body["status"] != "degraded" || body["redis"] != "connection refused" {
		t.Fatalf("status = %d body = %v", rec.Code, body)
	}
}
