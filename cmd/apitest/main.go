package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/tanggalan/internal/api"
)

// =============================================================================
// Response Types
// =============================================================================

type APIResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *api.ErrorInfo `json:"error,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Tanggalan API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testToday()
	tr.testKnownDates()
	tr.testDateRange()
	tr.testParse()
	tr.testWeton()
	tr.testYears()
	tr.testEdgeCases()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	// Test without offset
	resp, err := tr.get("/api/v1/today")
	if err != nil {
		tr.recordError("Today (default offset)", err.Error())
		return
	}

	var data api.DateResponse
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Today (default offset)", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today (%s): %s", data.Gregorian, data.Text))
	tr.printDateDetail(&data)

	// Test with offset header
	req, _ := http.NewRequest("GET", tr.baseURL+"/api/v1/today", nil)
	req.Header.Set("X-UTC-Offset", "-0500")
	httpResp, err := tr.client.Do(req)
	if err != nil {
		tr.recordError("Today (-0500)", err.Error())
		return
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == 200 {
		tr.recordSuccess("Today with X-UTC-Offset header works")
	} else {
		tr.recordError("Today (-0500)", fmt.Sprintf("HTTP %d", httpResp.StatusCode))
	}
}

func (tr *TestRunner) testKnownDates() {
	tr.printSection("Known Dates")

	testCases := []struct {
		date     string
		expected string // D P, d M yyyy Ja, T, Wuku W
	}{
		{"2022-01-01", "Setu Pahing, 28 Jumadilawal 1955 Ja, Alip, Wuku Marakeh"},
		{"2025-01-01", "Rebo Pon, 1 Rejeb 1958 Ja, Je, Wuku Bala"},
		{"2021-08-09", "Senen Pahing, 1 Sura 1955 Ja, Alip, Wuku Kulawu"},
		{"2021-08-08", "Minggu Legi, 30 Besar 1954 Ja, Jimakir, Wuku Kulawu"},
		{"1945-08-17", "Jemuah Legi, 9 Pasa 1876 Ja, Ehe, Wuku Manahil"},
		{"2000-01-01", "Setu Legi, 24 Pasa 1932 Ja, Ehe, Wuku Sungsang"},
		{"1633-07-08", "Jemuah Legi, 5 Sura 1555 Ja, Alip, Wuku Kulawu"},
	}

	pattern := "D+P%2C+d+M+yyyy+Ja%2C+T%2C+Wuku+W"
	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/dates/%s?pattern=%s", tc.date, pattern))
		if err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var data api.DateResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if data.Formatted == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s: %s", tc.date, data.Formatted))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected '%s', got '%s'", tc.expected, data.Formatted))
		}

		if tr.verbose {
			tr.printDateDetail(&data)
		}
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	// Test a full weton cycle
	resp, err := tr.get("/api/v1/dates?start=2022-01-01&end=2022-02-04")
	if err != nil {
		tr.recordError("Range (35 days)", err.Error())
		return
	}

	var rangeData api.RangeResponse
	if err := tr.parseDataAs(resp, &rangeData); err != nil {
		tr.recordError("Range (35 days)", err.Error())
		return
	}

	seen := make(map[string]bool)
	for _, d := range rangeData.Days {
		seen[d.Weton] = true
	}
	if len(rangeData.Days) == 35 && len(seen) == 35 {
		tr.recordSuccess("35 day range covers every weton once")
	} else {
		tr.recordError("Range (35 days)", fmt.Sprintf("Expected 35 distinct wetons, got %d days / %d wetons", len(rangeData.Days), len(seen)))
	}

	// Test range limit
	resp2, _ := tr.getRaw("/api/v1/dates?start=2025-01-01&end=2025-12-31")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Range limit enforced")
	} else {
		tr.recordError("Range limit", "Should reject ranges over MAX_RANGE_DAYS")
	}

	// Test invalid range (end before start)
	resp3, _ := tr.getRaw("/api/v1/dates?start=2025-12-31&end=2025-01-01")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Invalid range rejected (end before start)")
	} else {
		tr.recordError("Invalid range", "Should reject end < start")
	}
}

func (tr *TestRunner) testParse() {
	tr.printSection("Parse")

	resp, err := tr.post("/api/v1/parse", api.ParseRequest{
		Text:    "28 Jumadilawal 1955 12:00:00 +0700",
		Pattern: "d M yyyy HH:MM:SS Z",
	})
	if err != nil {
		tr.recordError("Parse with offset", err.Error())
	} else {
		var data api.DateResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError("Parse with offset", err.Error())
		} else if t, _ := time.Parse(time.RFC3339, data.Time); t.UTC().Format(time.RFC3339) == "2022-01-01T05:00:00Z" {
			tr.recordSuccess("28 Jumadilawal 1955 12:00:00 +0700 is 2022-01-01T05:00:00Z")
		} else {
			tr.recordError("Parse with offset", fmt.Sprintf("got %s", data.Time))
		}
	}

	status, apiResp, err := tr.postRaw("/api/v1/parse", api.ParseRequest{
		Text:    "28 Jumadilawal 1955 Legi",
		Pattern: "d M yyyy P",
	})
	switch {
	case err != nil:
		tr.recordError("Pasaran mismatch", err.Error())
	case status == http.StatusUnprocessableEntity && apiResp.Error != nil && strings.Contains(apiResp.Error.Message, "Pahing"):
		tr.recordSuccess(fmt.Sprintf("Wrong pasaran rejected: %s", apiResp.Error.Message))
	default:
		tr.recordError("Pasaran mismatch", fmt.Sprintf("HTTP %d", status))
	}
}

func (tr *TestRunner) testWeton() {
	tr.printSection("Next Weton")

	testCases := []struct {
		weton    string
		expected string
	}{
		{"Senen+Legi", "2022-01-10"},
		{"Setu+Pahing", "2022-02-05"},
	}

	for _, tc := range testCases {
		resp, err := tr.get("/api/v1/weton/next?date=2022-01-01&weton=" + tc.weton)
		if err != nil {
			tr.recordError(tc.weton, err.Error())
			continue
		}

		var data api.WetonResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(tc.weton, err.Error())
			continue
		}

		if data.Next.Gregorian == tc.expected {
			tr.recordSuccess(fmt.Sprintf("Next %s after 2022-01-01: %s (+%d)", data.Next.Weton, data.Next.Gregorian, data.DaysAway))
		} else {
			tr.recordError(tc.weton, fmt.Sprintf("Expected %s, got %s", tc.expected, data.Next.Gregorian))
		}
	}
}

func (tr *TestRunner) testYears() {
	tr.printSection("Years")

	for _, year := range []int{1955, 1956} {
		resp, err := tr.get(fmt.Sprintf("/api/v1/years/%d", year))
		if err != nil {
			tr.recordError(fmt.Sprint(year), err.Error())
			continue
		}

		var data api.YearResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(fmt.Sprint(year), err.Error())
			continue
		}

		if data.Kabisat == (year == 1955) {
			tr.recordSuccess(fmt.Sprintf("%d %s: %d days, 1 Sura on %s", data.Year, data.Taun, data.Days, data.NewYear))
		} else {
			tr.recordError(fmt.Sprint(year), fmt.Sprintf("Unexpected kabisat=%v", data.Kabisat))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	// Invalid date format
	resp, _ := tr.getRaw("/api/v1/dates/invalid")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Invalid date format rejected")
	} else {
		tr.recordError("Invalid date", "Should return 400")
	}

	// Invalid weton
	resp2, _ := tr.getRaw("/api/v1/weton/next?weton=Monday+Legi")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Unknown weton rejected")
	} else {
		tr.recordError("Invalid weton", "Should return 400")
	}

	// Missing parameters for range
	resp3, _ := tr.getRaw("/api/v1/dates?start=2025-01-01")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Missing end parameter rejected")
	} else {
		tr.recordError("Missing param", "Should reject missing end")
	}

	// Gregorian leap day
	if _, err := tr.get("/api/v1/dates/2024-02-29"); err != nil {
		tr.recordError("Leap day", err.Error())
	} else {
		tr.recordSuccess("Leap day (2024-02-29) handled")
	}

	// Far past date
	if _, err := tr.get("/api/v1/dates/0001-01-01"); err != nil {
		tr.recordError("Year 1", err.Error())
	} else {
		tr.recordSuccess("Year 1 handled")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decode(resp.Body)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) post(path string, body interface{}) (*APIResponse, error) {
	_, apiResp, err := tr.postRaw(path, body)
	if err != nil {
		return nil, err
	}
	if !apiResp.Success {
		return nil, apiError(apiResp)
	}
	return apiResp, nil
}

func (tr *TestRunner) postRaw(path string, body interface{}) (int, *APIResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal error: %w", err)
	}

	resp, err := tr.client.Post(tr.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return 0, nil, fmt.Errorf("parse error: %w", err)
	}
	return resp.StatusCode, &apiResp, nil
}

func decode(r io.Reader) (*APIResponse, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		return nil, apiError(&apiResp)
	}

	return &apiResp, nil
}

func apiError(resp *APIResponse) error {
	errMsg := "unknown error"
	if resp.Error != nil {
		errMsg = resp.Error.Message
	}
	return fmt.Errorf("API error: %s", errMsg)
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDateDetail(d *api.DateResponse) {
	if d == nil {
		return
	}
	fmt.Printf("    Taun:   %s (kabisat: %v)\n", d.Taun, d.Kabisat)
	fmt.Printf("    Neptu:  %d\n", d.Neptu)
	fmt.Printf("    Wuku:   %s\n", d.Wuku)
	fmt.Printf("    Mongso: %s\n", d.Mongso)
	fmt.Printf("    Wektu:  %s\n", d.Wektu)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show calendar details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
