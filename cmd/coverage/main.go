package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/tanggalan/internal/api"
)

// This tool walks every day of a span of Gregorian years through a running
// API: each date is converted, the Javanese text is parsed back, and the two
// must agree. Results are grouped by Javanese month.

// roundTripPattern is what each converted date is rendered with and parsed back from.
const roundTripPattern = "D P, d M yyyy"

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *api.ErrorInfo `json:"error,omitempty"`
}

// TestResult holds the result for a single date
type TestResult struct {
	Date    string `json:"date"`
	Success bool   `json:"success"`
	Period  string `json:"period"` // Javanese month and year, e.g. "Rejeb 1958"
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
}

// PeriodStats tracks statistics for each Javanese month
type PeriodStats struct {
	Period      string   `json:"period"`
	TotalDays   int      `json:"total_days"`
	SuccessDays int      `json:"success_days"`
	FailedDays  int      `json:"failed_days"`
	FailedDates []string `json:"failed_dates,omitempty"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 4, "Number of years to test")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Tanggalan API - Full Coverage Test")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Total Years: %d\n", *years)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	// Test all dates
	results := testAllDates(client, *baseURL, *startYear, endYear, *verbose)

	// Analyze results
	analysis := analyzeResults(results)

	// Print summary
	printSummary(analysis, *startYear, endYear)

	// Print failures by period
	printFailuresByPeriod(analysis)

	// Output to file if requested
	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	// Exit with error code if there were failures
	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func testAllDates(client *http.Client, baseURL string, startYear, endYear int, verbose bool) []TestResult {
	var results []TestResult

	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	tested := 0
	failed := 0
	lastProgress := -1

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		dateStr := current.Format("2006-01-02")
		result := testDate(client, baseURL, dateStr)
		results = append(results, result)

		tested++
		if !result.Success {
			failed++
		}

		// Show progress
		progress := (tested * 100) / totalDays
		if progress != lastProgress && progress%5 == 0 {
			fmt.Printf("  Progress: %d%% (%d/%d) - Failures: %d\n", progress, tested, totalDays, failed)
			lastProgress = progress
		}

		if verbose {
			status := "✓"
			if !result.Success {
				status = "✗"
			}
			fmt.Printf("  %s %s: %s\n", status, dateStr, result.Text)
			if !result.Success {
				fmt.Printf("      Error: %s\n", result.Error)
			}
		}
	}

	fmt.Println()
	return results
}

func testDate(client *http.Client, baseURL, dateStr string) TestResult {
	result := TestResult{Date: dateStr}

	var converted api.DateResponse
	path := fmt.Sprintf("%s/api/v1/dates/%s?pattern=%s", baseURL, dateStr, url.QueryEscape(roundTripPattern))
	resp, err := client.Get(path)
	if err != nil {
		result.Error = fmt.Sprintf("Connection error: %v", err)
		return result
	}
	if err := decodeData(resp, &converted); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Period = fmt.Sprintf("%s %d", converted.Month, converted.Year)
	result.Text = converted.Formatted

	if msg := checkInvariants(converted); msg != "" {
		result.Error = msg
		return result
	}

	body, _ := json.Marshal(api.ParseRequest{Text: converted.Formatted, Pattern: roundTripPattern})
	resp, err = client.Post(baseURL+"/api/v1/parse", "application/json", bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Sprintf("Connection error: %v", err)
		return result
	}

	var parsed api.DateResponse
	if err := decodeData(resp, &parsed); err != nil {
		result.Error = "Parse back failed: " + err.Error()
		return result
	}

	if parsed.Gregorian != dateStr {
		result.Error = fmt.Sprintf("Round trip gave %s", parsed.Gregorian)
		return result
	}

	result.Success = true
	return result
}

// checkInvariants returns a description of the first broken invariant, if any.
func checkInvariants(d api.DateResponse) string {
	switch {
	case d.Day < 1 || d.Day > 30:
		return fmt.Sprintf("Day %d outside 1..30", d.Day)
	case d.Day == 30 && d.MonthNumber%2 == 0 && !(d.MonthNumber == 12 && d.Kabisat):
		return fmt.Sprintf("Day 30 in a 29 day month (%s)", d.Month)
	case d.Neptu < 7 || d.Neptu > 18:
		return fmt.Sprintf("Neptu %d outside 7..18", d.Neptu)
	case d.Weton != d.Dina+" "+d.Pasaran:
		return fmt.Sprintf("Weton %q does not match %s %s", d.Weton, d.Dina, d.Pasaran)
	}
	return ""
}

func decodeData(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("Read error: %v", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("Parse error: %v", err)
	}

	if !apiResp.Success {
		errMsg := "Unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("%s", errMsg)
	}

	// Parse the successful response
	dataBytes, _ := json.Marshal(apiResp.Data)
	if err := json.Unmarshal(dataBytes, target); err != nil {
		return fmt.Errorf("Data parse error: %v", err)
	}
	return nil
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int
	TotalSuccess int
	TotalFailed  int
	ByPeriod     map[string]*PeriodStats
	ByYear       map[int]*YearStats
	AllFailures  []TestResult
}

type YearStats struct {
	Year        int
	TotalDays   int
	SuccessDays int
	FailedDays  int
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByPeriod: make(map[string]*PeriodStats),
		ByYear:   make(map[int]*YearStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		// Parse date for year stats
		date, _ := time.Parse("2006-01-02", r.Date)
		year := date.Year()

		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		analysis.ByYear[year].TotalDays++

		// Period stats
		period := r.Period
		if period == "" {
			period = "(conversion failed)"
		}
		if _, ok := analysis.ByPeriod[period]; !ok {
			analysis.ByPeriod[period] = &PeriodStats{Period: period}
		}
		analysis.ByPeriod[period].TotalDays++

		if r.Success {
			analysis.TotalSuccess++
			analysis.ByYear[year].SuccessDays++
			analysis.ByPeriod[period].SuccessDays++
		} else {
			analysis.TotalFailed++
			analysis.ByYear[year].FailedDays++
			analysis.ByPeriod[period].FailedDays++
			analysis.ByPeriod[period].FailedDates = append(analysis.ByPeriod[period].FailedDates, r.Date)
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	// By year
	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		if stats, ok := analysis.ByYear[year]; ok {
			status := "✓"
			if stats.FailedDays > 0 {
				status = "✗"
			}
			fmt.Printf("  %s %d: %d/%d days (%.1f%% success)\n",
				status, year, stats.SuccessDays, stats.TotalDays,
				float64(stats.SuccessDays)/float64(stats.TotalDays)*100)
		}
	}
	fmt.Println()
}

func printFailuresByPeriod(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY JAVANESE MONTH")
	fmt.Println("================================================================")

	// Sort periods by failure count
	var periods []*PeriodStats
	for _, stats := range analysis.ByPeriod {
		if stats.FailedDays > 0 {
			periods = append(periods, stats)
		}
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].FailedDays > periods[j].FailedDays
	})

	for _, stats := range periods {
		fmt.Printf("\n%s: %d failures\n", stats.Period, stats.FailedDays)
		// Show up to 5 example dates
		for i, date := range stats.FailedDates {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(stats.FailedDates)-5)
				break
			}
			fmt.Printf("  - %s\n", date)
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string                  `json:"generated_at"`
		Summary     map[string]interface{}  `json:"summary"`
		ByPeriod    map[string]*PeriodStats `json:"by_period"`
		Failures    []TestResult            `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]interface{}{
			"total_days":    analysis.TotalDays,
			"total_success": analysis.TotalSuccess,
			"total_failed":  analysis.TotalFailed,
			"success_rate":  fmt.Sprintf("%.2f%%", float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100),
		},
		ByPeriod: analysis.ByPeriod,
		Failures: analysis.AllFailures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
