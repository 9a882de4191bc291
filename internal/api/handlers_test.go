package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zapponejosh/tanggalan/internal/config"
	"github.com/zapponejosh/tanggalan/internal/metrics"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv sets up a complete test environment with config, metrics and router
type testEnv struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	handlers *Handlers
	router   http.Handler
}

// fixedNow is 2022-01-01 12:00 in +0700, i.e. 28 Jumadilawal 1955.
var fixedNow = time.Date(2022, time.January, 1, 5, 0, 0, 0, time.UTC)

// setupTest creates a fresh test environment
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	cfg := &config.Config{
		Port:            8080,
		Env:             config.EnvDevelopment,
		ShutdownTimeout: time.Second,
		APIKey:          "metrics-key",
		LogLevel:        "error",
		LogFormat:       "text",
		DefaultOffset:   "+0700",
		MaxRangeDays:    90,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, reg)

	handlers := NewHandlers(cfg, m)
	handlers.now = func() time.Time { return fixedNow }

	return &testEnv{
		cfg:      cfg,
		metrics:  m,
		handlers: handlers,
		router:   SetupRoutes(handlers, cfg, m, logger),
	}
}

// do sends a request through the full router
func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// makeRequest is a helper to make HTTP requests with optional API key
func makeRequest(method, path string, body interface{}, apiKey string) *http.Request {
	var bodyReader io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	return req
}

// dataResponse is Response with a typed payload
type dataResponse[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *ErrorInfo `json:"error"`
}

// parseResponse parses JSON response
func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, rr.Body.String())
	}
}

// expectError checks status and error code of a failed request
func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, status, rr.Body.String())
	}

	var resp Response
	parseResponse(t, rr, &resp)
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != code {
		t.Errorf("Error = %+v, want code %q", resp.Error, code)
	}
}

// =============================================================================
// MIDDLEWARE TESTS
// =============================================================================

func TestAuthMiddleware(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name       string
		apiKey     string
		wantStatus int
	}{
		{"valid key", "metrics-key", http.StatusOK},
		{"missing key", "", http.StatusUnauthorized},
		{"invalid key", "not-the-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest("GET", "/metrics", nil, tt.apiKey))
			if rr.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddleware_NoKeyConfigured(t *testing.T) {
	cfg := &config.Config{}
	handler := AuthMiddleware(cfg, slog.Default())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("GET", "/metrics", nil, ""))

	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/health", nil, ""))
	id := rr.Header().Get("X-Request-ID")
	if len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a UUID", id)
	}

	req := makeRequest("GET", "/health", nil, "")
	req.Header.Set("X-Request-ID", "upstream-id")
	rr = env.do(req)
	if got := rr.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want %q", got, "upstream-id")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("GET", "/", nil, ""))

	expectError(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("OPTIONS", "/api/v1/parse", nil, ""))
	if rr.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	env := setupTest(t)

	env.do(makeRequest("GET", "/api/v1/dates/2022-01-01", nil, ""))
	env.do(makeRequest("GET", "/api/v1/dates/2025-01-01", nil, ""))
	env.do(makeRequest("GET", "/nowhere", nil, ""))

	got := testutil.ToFloat64(env.metrics.RequestCounter.WithLabelValues("/api/v1/dates/{date}", "200"))
	if got != 2 {
		t.Errorf("requests_total{route=/api/v1/dates/{date}} = %v, want 2", got)
	}
	got = testutil.ToFloat64(env.metrics.RequestCounter.WithLabelValues("unmatched", "404"))
	if got != 1 {
		t.Errorf("requests_total{route=unmatched} = %v, want 1", got)
	}
}

// =============================================================================
// CALENDAR HANDLER TESTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/health", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp dataResponse[map[string]string]
	parseResponse(t, rr, &resp)
	if resp.Data["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Data["status"])
	}
}

func TestGetToday(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/api/v1/today", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp dataResponse[DateResponse]
	parseResponse(t, rr, &resp)
	if resp.Data.Text != "Setu Pahing, 28 Jumadilawal 1955 Ja, Bedhug" {
		t.Errorf("Text = %q", resp.Data.Text)
	}
	if resp.Data.Time != "2022-01-01T12:00:00+07:00" {
		t.Errorf("Time = %q", resp.Data.Time)
	}
}

func TestGetToday_OffsetHeader(t *testing.T) {
	env := setupTest(t)

	// 05:00 UTC is still 31 December in -0700.
	req := makeRequest("GET", "/api/v1/today", nil, "")
	req.Header.Set("X-UTC-Offset", "-0700")

	var resp dataResponse[DateResponse]
	parseResponse(t, env.do(req), &resp)
	if resp.Data.Gregorian != "2021-12-31" || resp.Data.Day != 27 {
		t.Errorf("got %s / day %d, want 2021-12-31 / day 27", resp.Data.Gregorian, resp.Data.Day)
	}

	req = makeRequest("GET", "/api/v1/today", nil, "")
	req.Header.Set("X-UTC-Offset", "UTC+7")
	expectError(t, env.do(req), http.StatusBadRequest, "INVALID_OFFSET")
}

func TestGetDate(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
		want DateResponse
	}{
		{
			name: "anchor",
			path: "/api/v1/dates/2022-01-01",
			want: DateResponse{Day: 28, Month: "Jumadilawal", MonthNumber: 5, Year: 1955, Taun: "Alip",
				Kabisat: true, Weton: "Setu Pahing", Neptu: 18, Wuku: "Marakeh", Mongso: "Kapitu", Wektu: "Bedhug"},
		},
		{
			name: "1 Rejeb 1958",
			path: "/api/v1/dates/2025-01-01?time=04:00:00",
			want: DateResponse{Day: 1, Month: "Rejeb", MonthNumber: 7, Year: 1958, Taun: "Je",
				Weton: "Rebo Pon", Neptu: 14, Wuku: "Bala", Mongso: "Kapitu", Wektu: "Fajar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest("GET", tt.path, nil, ""))
			if rr.Code != http.StatusOK {
				t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
			}

			var resp dataResponse[DateResponse]
			parseResponse(t, rr, &resp)
			got := resp.Data
			if got.Day != tt.want.Day || got.Month != tt.want.Month || got.MonthNumber != tt.want.MonthNumber ||
				got.Year != tt.want.Year || got.Taun != tt.want.Taun || got.Kabisat != tt.want.Kabisat {
				t.Errorf("date = %d %s(%d) %d %s kabisat=%v", got.Day, got.Month, got.MonthNumber, got.Year, got.Taun, got.Kabisat)
			}
			if got.Weton != tt.want.Weton || got.Neptu != tt.want.Neptu || got.Wuku != tt.want.Wuku ||
				got.Mongso != tt.want.Mongso || got.Wektu != tt.want.Wektu {
				t.Errorf("cycles = %s %d %s %s %s", got.Weton, got.Neptu, got.Wuku, got.Mongso, got.Wektu)
			}
		})
	}
}

func TestGetDate_Pattern(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/api/v1/dates/2022-01-01?pattern=D+P%2C+d+M+yyyy+Z", nil, ""))

	var resp dataResponse[DateResponse]
	parseResponse(t, rr, &resp)
	if resp.Data.Formatted != "Setu Pahing, 28 Jumadilawal 1955 +0700" {
		t.Errorf("Formatted = %q", resp.Data.Formatted)
	}

	got := testutil.ToFloat64(env.metrics.Conversions.WithLabelValues("format", metrics.ResultOK))
	if got != 1 {
		t.Errorf("conversions_total{format,ok} = %v, want 1", got)
	}
}

func TestGetDate_PatternWithInvalidUTF8(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/api/v1/dates/2022-01-01?pattern=d+%FF+M", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	// encoding/json replaces the invalid byte with U+FFFD.
	var resp dataResponse[DateResponse]
	parseResponse(t, rr, &resp)
	if resp.Data.Formatted != "28 \uFFFD Jumadilawal" {
		t.Errorf("Formatted = %q", resp.Data.Formatted)
	}
}

func TestGetDate_Invalid(t *testing.T) {
	env := setupTest(t)

	expectError(t, env.do(makeRequest("GET", "/api/v1/dates/2022-13-01", nil, "")), http.StatusBadRequest, "BAD_REQUEST")
	expectError(t, env.do(makeRequest("GET", "/api/v1/dates/2022-01-01?time=25:00:00", nil, "")), http.StatusBadRequest, "BAD_REQUEST")
}

func TestGetRange(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/api/v1/dates?start=2021-12-30&end=2022-01-02", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp dataResponse[RangeResponse]
	parseResponse(t, rr, &resp)
	if len(resp.Data.Days) != 4 {
		t.Fatalf("len(Days) = %d, want 4", len(resp.Data.Days))
	}

	wantWeton := []string{"Kemis Kliwon", "Jemuah Legi", "Setu Pahing", "Minggu Pon"}
	for i, d := range resp.Data.Days {
		if d.Weton != wantWeton[i] {
			t.Errorf("Days[%d].Weton = %q, want %q", i, d.Weton, wantWeton[i])
		}
	}
	if resp.Data.Days[3].Wuku != "Tambir" {
		t.Errorf("Days[3].Wuku = %q, want Tambir", resp.Data.Days[3].Wuku)
	}
}

func TestGetRange_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing end", "/api/v1/dates?start=2022-01-01"},
		{"bad start", "/api/v1/dates?start=01-01-2022&end=2022-01-02"},
		{"reversed", "/api/v1/dates?start=2022-02-01&end=2022-01-01"},
		{"too long", "/api/v1/dates?start=2022-01-01&end=2022-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, env.do(makeRequest("GET", tt.path, nil, "")), http.StatusBadRequest, "BAD_REQUEST")
		})
	}
}

func TestParse(t *testing.T) {
	env := setupTest(t)

	body := ParseRequest{
		Text:    "28 Jumadilawal 1955 12:00:00 +0700",
		Pattern: "d M yyyy HH:MM:SS Z",
	}
	rr := env.do(makeRequest("POST", "/api/v1/parse", body, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp dataResponse[DateResponse]
	parseResponse(t, rr, &resp)
	instant, err := time.Parse(time.RFC3339, resp.Data.Time)
	if err != nil {
		t.Fatalf("parse Time %q: %v", resp.Data.Time, err)
	}
	if !instant.Equal(time.Date(2022, time.January, 1, 5, 0, 0, 0, time.UTC)) {
		t.Errorf("Time = %s, want 2022-01-01T05:00:00Z", instant.UTC())
	}
}

func TestParse_BodyOffset(t *testing.T) {
	env := setupTest(t)

	body := ParseRequest{Text: "1 Sura 1955 08:00", Pattern: "d M yyyy HH:MM", Offset: "+0000"}

	var resp dataResponse[DateResponse]
	parseResponse(t, env.do(makeRequest("POST", "/api/v1/parse", body, "")), &resp)
	if resp.Data.Time != "2021-08-09T08:00:00Z" && resp.Data.Time != "2021-08-09T08:00:00+00:00" {
		t.Errorf("Time = %q, want 2021-08-09 08:00 UTC", resp.Data.Time)
	}
}

func TestParse_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{"wrong pasaran", ParseRequest{Text: "28 Jumadilawal 1955 Legi", Pattern: "d M yyyy P"},
			http.StatusUnprocessableEntity, "PASARAN_MISMATCH"},
		{"wrong dina", ParseRequest{Text: "Minggu 28 Jumadilawal 1955", Pattern: "D d M yyyy"},
			http.StatusUnprocessableEntity, "FIELD_MISMATCH"},
		{"no match", ParseRequest{Text: "28 Jumadilawal", Pattern: "d M yyyy"},
			http.StatusBadRequest, "FORMAT_MISMATCH"},
		{"missing year", ParseRequest{Text: "28 Jumadilawal", Pattern: "d M"},
			http.StatusBadRequest, "MISSING_FIELD"},
		{"unknown month", ParseRequest{Text: "28 January 1955", Pattern: "d M yyyy"},
			http.StatusBadRequest, "UNKNOWN_MONTH"},
		{"day past month", ParseRequest{Text: "30 Sapar 1955", Pattern: "d M yyyy"},
			http.StatusBadRequest, "OUT_OF_RANGE"},
		{"year too large", ParseRequest{Text: "1 Sura 1000000000000", Pattern: "d M yyyy"},
			http.StatusBadRequest, "OUT_OF_RANGE"},
		{"missing text", ParseRequest{Pattern: "d M yyyy"},
			http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad offset", ParseRequest{Text: "1 Sura 1955", Pattern: "d M yyyy", Offset: "+7"},
			http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not json", "just a string", http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest("POST", "/api/v1/parse", tt.body, ""))
			expectError(t, rr, tt.wantStatus, tt.wantCode)
		})
	}

	got := testutil.ToFloat64(env.metrics.Conversions.WithLabelValues("parse", metrics.ResultError))
	if got != 7 {
		t.Errorf("conversions_total{parse,error} = %v, want 7", got)
	}
}

func TestParse_PasaranMessage(t *testing.T) {
	env := setupTest(t)

	body := ParseRequest{Text: "28 Jumadilawal 1955 Legi", Pattern: "d M yyyy P"}
	rr := env.do(makeRequest("POST", "/api/v1/parse", body, ""))

	var resp Response
	parseResponse(t, rr, &resp)
	if resp.Error == nil || !strings.Contains(resp.Error.Message, "Pahing") {
		t.Errorf("Error = %+v, want a message naming Pahing", resp.Error)
	}
}

func TestNextWeton(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		query    string
		wantDate string
		wantDays int
	}{
		{"date=2022-01-01&weton=Senen+Legi", "2022-01-10", 9},
		{"date=2022-01-01&weton=setu+pahing", "2022-02-05", 35},
		{"weton=Minggu+Pon", "2022-01-02", 1}, // from fixedNow
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := env.do(makeRequest("GET", "/api/v1/weton/next?"+tt.query, nil, ""))
			if rr.Code != http.StatusOK {
				t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
			}

			var resp dataResponse[WetonResponse]
			parseResponse(t, rr, &resp)
			if resp.Data.Next.Gregorian != tt.wantDate {
				t.Errorf("Next = %s, want %s", resp.Data.Next.Gregorian, tt.wantDate)
			}
			if resp.Data.DaysAway != tt.wantDays {
				t.Errorf("DaysAway = %d, want %d", resp.Data.DaysAway, tt.wantDays)
			}
		})
	}
}

func TestNextWeton_Invalid(t *testing.T) {
	env := setupTest(t)

	expectError(t, env.do(makeRequest("GET", "/api/v1/weton/next", nil, "")), http.StatusBadRequest, "BAD_REQUEST")
	expectError(t, env.do(makeRequest("GET", "/api/v1/weton/next?weton=Setu", nil, "")), http.StatusBadRequest, "INVALID_WETON")
	expectError(t, env.do(makeRequest("GET", "/api/v1/weton/next?weton=Setu+Monday", nil, "")), http.StatusBadRequest, "INVALID_WETON")
	expectError(t, env.do(makeRequest("GET", "/api/v1/weton/next?date=yesterday&weton=Setu+Pon", nil, "")), http.StatusBadRequest, "BAD_REQUEST")
}

func TestGetYear(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/api/v1/years/1955", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp dataResponse[YearResponse]
	parseResponse(t, rr, &resp)
	y := resp.Data
	if y.Taun != "Alip" || !y.Kabisat || y.Days != 355 || y.NewYear != "2021-08-09" {
		t.Errorf("year = %+v", y)
	}
	if len(y.Months) != 12 {
		t.Fatalf("len(Months) = %d, want 12", len(y.Months))
	}
	if y.Months[4].Name != "Jumadilawal" || y.Months[4].Starts != "2021-12-05" {
		t.Errorf("Months[4] = %+v, want Jumadilawal starting 2021-12-05", y.Months[4])
	}
	if y.Months[11].Days != 30 {
		t.Errorf("Besar has %d days, want 30", y.Months[11].Days)
	}
}

func TestGetYear_Invalid(t *testing.T) {
	env := setupTest(t)

	expectError(t, env.do(makeRequest("GET", "/api/v1/years/abc", nil, "")), http.StatusBadRequest, "BAD_REQUEST")
	expectError(t, env.do(makeRequest("GET", "/api/v1/years/20000", nil, "")), http.StatusBadRequest, "OUT_OF_RANGE")
}

func TestGetWektu(t *testing.T) {
	env := setupTest(t)

	rr := env.do(makeRequest("GET", "/api/v1/wektu", nil, ""))

	var resp dataResponse[[]string]
	parseResponse(t, rr, &resp)
	if len(resp.Data) != 16 {
		t.Fatalf("len(wektu) = %d, want 16", len(resp.Data))
	}
	if resp.Data[0] != "Lingsir Wengi" || resp.Data[15] != "Tengah Wengi" {
		t.Errorf("wektu = %v", resp.Data)
	}
}

func TestNotFound(t *testing.T) {
	env := setupTest(t)

	expectError(t, env.do(makeRequest("GET", "/api/v2/today", nil, "")), http.StatusNotFound, "NOT_FOUND")
	expectError(t, env.do(makeRequest("DELETE", "/api/v1/today", nil, "")), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
}
