package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testDataset(t *testing.T) *networth.Dataset {
	t.Helper()
	d := networth.NewDataset()
	for _, c := range []networth.Column{
		{ID: "stocks", Name: "Brokerage", Category: networth.Equity},
		{ID: "card", Name: "Visa", Category: networth.Liability},
	} {
		if err := d.Declare(c); err != nil {
			t.Fatalf("Declare(%v) unexpected error: %v", c, err)
		}
	}
	put := func(on date.Date, stocks, card int64) {
		r := networth.NewRecord(on).
			Set("stocks", decimal.NewFromInt(stocks)).
			Set("card", decimal.NewFromInt(card))
		if err := d.Put(r, networth.Reject); err != nil {
			t.Fatalf("Put(%v) unexpected error: %v", on, err)
		}
	}
	put(date.New(2023, 12, 31), 90_000, 1_000)
	put(date.New(2024, 1, 31), 100_000, 2_000)
	put(date.New(2024, 2, 29), 110_000, 1_000)
	return d
}

func testServer(t *testing.T, load Loader) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := New(load, networth.DefaultConfig(), log)
	s.Today = func() date.Date { return date.New(2024, 3, 1) }
	return s.Handler()
}

// do serves a request and decodes the JSON response.
func do(t *testing.T, h http.Handler, method, target, body string) (int, any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var v any
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, target, w.Body.String(), err)
	}
	return w.Code, v
}

func get(t *testing.T, v any, path string) any {
	t.Helper()
	got, err := jsonpath.Get(path, v)
	if err != nil {
		t.Fatalf("jsonpath.Get(%q) unexpected error: %v", path, err)
	}
	return got
}

func TestHealth(t *testing.T) {
	h := testServer(t, func() (*networth.Dataset, error) { return networth.NewDataset(), nil })
	code, v := do(t, h, http.MethodGet, "/health", "")
	if code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", code)
	}
	if got := get(t, v, "$.status"); got != "ok" {
		t.Errorf("status = %v, want ok", got)
	}
}

func TestReport(t *testing.T) {
	d := testDataset(t)
	h := testServer(t, func() (*networth.Dataset, error) { return d, nil })

	tests := []struct {
		target string
		path   string
		want   any
	}{
		{"/api/v1/report", "$.current.netWorth.amount", 109000.0},
		{"/api/v1/report", "$.current.netWorth.currency", "USD"},
		{"/api/v1/report?currency=eur", "$.current.netWorth.currency", "EUR"},
		{"/api/v1/report?period=yearly", "$.config.period", "yearly"},
		{"/api/v1/report?year=2023", "$.current.date", "2023-12-31"},
		{"/api/v1/report?horizon=240", "$.compound.horizon", 240.0},
		{"/api/v1/report?growth=5", "$.config.growth", 5.0},
		{"/api/v1/report?scope=view", "$.config.scope", "view"},
	}
	for _, tt := range tests {
		t.Run(tt.target+tt.path, func(t *testing.T) {
			code, v := do(t, h, http.MethodGet, tt.target, "")
			if code != http.StatusOK {
				t.Fatalf("GET %s = %d, want 200: %v", tt.target, code, v)
			}
			if got := get(t, v, tt.path); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestReport_Errors(t *testing.T) {
	d := testDataset(t)
	h := testServer(t, func() (*networth.Dataset, error) { return d, nil })

	tests := []struct {
		target   string
		wantCode int
		wantErr  string
	}{
		{"/api/v1/report?period=weekly", http.StatusBadRequest, "INVALID_PARAM"},
		{"/api/v1/report?horizon=0", http.StatusBadRequest, "INVALID_PARAM"},
		{"/api/v1/report?year=1999", http.StatusNotFound, "NO_DATA"},
		{"/api/v1/unknown", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			code, v := do(t, h, http.MethodGet, tt.target, "")
			if code != tt.wantCode {
				t.Errorf("GET %s = %d, want %d", tt.target, code, tt.wantCode)
			}
			if got := get(t, v, "$.error.code"); got != tt.wantErr {
				t.Errorf("error code = %v, want %v", got, tt.wantErr)
			}
		})
	}

	failing := testServer(t, func() (*networth.Dataset, error) { return nil, errors.New("disk on fire") })
	code, v := do(t, failing, http.MethodGet, "/api/v1/report", "")
	if code != http.StatusInternalServerError {
		t.Errorf("GET /api/v1/report with a failing loader = %d, want 500", code)
	}
	if got := get(t, v, "$.error.code"); got != "DATASET_LOAD_ERROR" {
		t.Errorf("error code = %v, want DATASET_LOAD_ERROR", got)
	}
}

func TestAccounts(t *testing.T) {
	d := testDataset(t)
	h := testServer(t, func() (*networth.Dataset, error) { return d, nil })
	code, v := do(t, h, http.MethodGet, "/api/v1/accounts", "")
	if code != http.StatusOK {
		t.Fatalf("GET /api/v1/accounts = %d, want 200", code)
	}
	if got := get(t, v, "$.count"); got != 2.0 {
		t.Errorf("count = %v, want 2", got)
	}
	if got := get(t, v, "$.accounts[1].category"); got != "liability" {
		t.Errorf("accounts[1].category = %v, want liability", got)
	}
	if got := get(t, v, "$.latest.date"); got != "2024-02-29" {
		t.Errorf("latest.date = %v, want 2024-02-29", got)
	}
	if got := get(t, v, "$.netWorth.amount"); got != 109000.0 {
		t.Errorf("netWorth.amount = %v, want 109000", got)
	}
}

func TestAccounts_AsOf(t *testing.T) {
	d := testDataset(t)
	h := testServer(t, func() (*networth.Dataset, error) { return d, nil })
	tests := []struct {
		on           string
		wantDate     string
		wantNetWorth float64
	}{
		{"2024-01-31", "2024-01-31", 98000},
		{"2024-02-15", "2024-01-31", 98000},
		{"2023-12-31", "2023-12-31", 89000},
		{"2030-01-01", "2024-02-29", 109000},
	}
	for _, tt := range tests {
		t.Run(tt.on, func(t *testing.T) {
			code, v := do(t, h, http.MethodGet, "/api/v1/accounts?date="+tt.on, "")
			if code != http.StatusOK {
				t.Fatalf("GET /api/v1/accounts?date=%s = %d, want 200", tt.on, code)
			}
			if got := get(t, v, "$.latest.date"); got != tt.wantDate {
				t.Errorf("latest.date = %v, want %s", got, tt.wantDate)
			}
			if got := get(t, v, "$.netWorth.amount"); got != tt.wantNetWorth {
				t.Errorf("netWorth.amount = %v, want %v", got, tt.wantNetWorth)
			}
		})
	}

	code, v := do(t, h, http.MethodGet, "/api/v1/accounts?date=2020-01-01", "")
	if code != http.StatusOK {
		t.Fatalf("GET /api/v1/accounts before the first snapshot = %d, want 200", code)
	}
	if m, _ := v.(map[string]any); m["latest"] != nil {
		t.Errorf("latest = %v, want none before the first snapshot", m["latest"])
	}
	if code, _ := do(t, h, http.MethodGet, "/api/v1/accounts?date=soon", ""); code != http.StatusBadRequest {
		t.Errorf("GET /api/v1/accounts?date=soon = %d, want 400", code)
	}
}

func TestAnalyze(t *testing.T) {
	h := testServer(t, func() (*networth.Dataset, error) { return nil, errors.New("must not be called") })

	body := `{
		"columns": [
			{"id": "a", "name": "Savings", "category": "cash"},
			{"id": "b", "name": "Loan", "category": "liability"}
		],
		"records": [
			{"date": "2024-02-29", "values": {"a": 1200, "b": 200}},
			{"date": "2024-01-31", "values": {"a": 1000, "b": 300}}
		],
		"config": {"currency": "EUR", "period": "quarterly"}
	}`
	code, v := do(t, h, http.MethodPost, "/api/v1/analyze", body)
	if code != http.StatusOK {
		t.Fatalf("POST /api/v1/analyze = %d, want 200: %v", code, v)
	}
	checks := map[string]any{
		"$.current.netWorth.amount":   1000.0,
		"$.current.netWorth.currency": "EUR",
		"$.current.label":             "Q1 '24",
		"$.config.growth":             7.0,
	}
	for path, want := range checks {
		if got := get(t, v, path); got != want {
			t.Errorf("%s = %v, want %v", path, got, want)
		}
	}
}

func TestAnalyze_MissingCategory(t *testing.T) {
	h := testServer(t, func() (*networth.Dataset, error) { return nil, errors.New("must not be called") })
	body := `{
		"columns": [{"id": "a", "name": "Savings"}, {"id": "m", "name": "Mortgage"}],
		"records": [{"date": "2024-02-29", "values": {"a": 5000, "m": 3000}}]
	}`
	code, v := do(t, h, http.MethodPost, "/api/v1/analyze", body)
	if code != http.StatusOK {
		t.Fatalf("POST /api/v1/analyze = %d, want 200: %v", code, v)
	}
	if got := get(t, v, "$.current.netWorth.amount"); got != 2000.0 {
		t.Errorf("current.netWorth.amount = %v, want 2000 with the mortgage as a liability", got)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	h := testServer(t, nil)
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"not json", `{`, "INVALID_BODY"},
		{"unknown account", `{"columns": [], "records": [{"date": "2024-01-31", "values": {"x": 1}}]}`, "INVALID_DATASET"},
		{"duplicate date", `{"columns": [{"id": "a", "name": "A", "category": "cash"}], "records": [{"date": "2024-01-31", "values": {"a": 1}}, {"date": "2024-01-31", "values": {"a": 2}}]}`, "INVALID_DATASET"},
		{"invalid config", `{"config": {"horizon": 5000}}`, "INVALID_PARAM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, v := do(t, h, http.MethodPost, "/api/v1/analyze", tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("POST /api/v1/analyze = %d, want 400", code)
			}
			if got := get(t, v, "$.error.code"); got != tt.wantErr {
				t.Errorf("error code = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := testServer(t, func() (*networth.Dataset, error) { return networth.NewDataset(), nil })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
