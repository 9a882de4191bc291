package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/tanggalan/internal/calendar"
	"github.com/zapponejosh/tanggalan/internal/config"
	"github.com/zapponejosh/tanggalan/internal/logger"
	"github.com/zapponejosh/tanggalan/internal/metrics"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"

	// offsetHeader selects the fixed zone for a request.
	offsetHeader = "X-UTC-Offset"

	maxBodyBytes = 4 << 10
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	validate *Validator
	now      func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config, m *metrics.Metrics) *Handlers {
	return &Handlers{
		cfg:      cfg,
		metrics:  m,
		validate: NewValidator(),
		now:      time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}

	jd := calendar.Convert(h.now().In(loc))
	h.metrics.ObserveConversion("convert", nil)

	WriteSuccess(w, newDateResponse(jd))
}

// GetDate handles GET /api/v1/dates/{YYYY-MM-DD}?time=HH:MM:SS&pattern=...
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}

	// Extract date from path
	dateStr := chi.URLParam(r, "date")
	clock := r.URL.Query().Get("time")
	if clock == "" {
		clock = "12:00:00"
	}

	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, dateStr+" "+clock, loc)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date or time: %s %s. Use YYYY-MM-DD and HH:MM:SS", dateStr, clock))
		return
	}

	jd := calendar.Convert(t)
	h.metrics.ObserveConversion("convert", nil)

	resp := newDateResponse(jd)
	if pattern := r.URL.Query().Get("pattern"); pattern != "" {
		resp.Formatted = jd.Format(pattern)
		h.metrics.ObserveConversion("format", nil)
	}

	WriteSuccess(w, resp)
}

// GetRange handles GET /api/v1/dates?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := parseDay(startStr, loc)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := parseDay(endStr, loc)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if startDate.After(endDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Limit range to prevent abuse
	daysDiff := int(endDate.Sub(startDate).Hours()/24) + 1
	if daysDiff > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	days := make([]DateResponse, 0, daysDiff)
	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		days = append(days, newDateResponse(calendar.Convert(current)))
	}
	h.metrics.Conversions.WithLabelValues("convert", metrics.ResultOK).Add(float64(len(days)))

	WriteSuccess(w, RangeResponse{
		Start: startStr,
		End:   endStr,
		Days:  days,
	})
}

// Parse handles POST /api/v1/parse
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.validate.Validate(req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
		return
	}

	loc := h.cfg.Location()
	if req.Offset != "" {
		minutes, _ := calendar.ParseOffset(req.Offset) // checked by the validator
		loc = calendar.FixedZone(minutes)
	}

	jd, err := calendar.ParseInLocation(req.Text, req.Pattern, loc)
	h.metrics.ObserveConversion("parse", err)
	if err != nil {
		writeEngineError(ctx, w, err,
			slog.String("text", req.Text),
			slog.String("pattern", req.Pattern))
		return
	}

	WriteSuccess(w, newDateResponse(jd))
}

// NextWeton handles GET /api/v1/weton/next?date=YYYY-MM-DD&weton=Setu+Pahing
func (h *Handlers) NextWeton(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.location(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("weton")
	if name == "" {
		WriteBadRequest(w, "weton parameter is required")
		return
	}

	from := h.now().In(loc)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		t, err := parseDay(dateStr, loc)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
			return
		}
		from = t
	}

	jd := calendar.Convert(from)
	next, err := jd.NextWeton(name)
	h.metrics.ObserveConversion("weton", err)
	if err != nil {
		writeEngineError(r.Context(), w, err, slog.String("weton", name))
		return
	}

	WriteSuccess(w, WetonResponse{
		From:     newDateResponse(jd),
		Next:     newDateResponse(next),
		DaysAway: daysBetween(jd.Time(), next.Time()),
	})
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}

	// Keep 1 Sura inside the years time.Time can format.
	if year < 0 || year > 9999 {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Year %d is outside 0..9999", year), "OUT_OF_RANGE")
		return
	}

	WriteSuccess(w, newYearResponse(year))
}

// GetWektu handles GET /api/v1/wektu
func (h *Handlers) GetWektu(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, calendar.WektuLabels())
}

// location resolves the request's zone from the X-UTC-Offset header,
// falling back to the configured default. It writes the error response
// itself when the header is malformed.
func (h *Handlers) location(w http.ResponseWriter, r *http.Request) (*time.Location, bool) {
	header := r.Header.Get(offsetHeader)
	if header == "" {
		return h.cfg.Location(), true
	}

	minutes, err := calendar.ParseOffset(header)
	if err != nil {
		logger.Warn(r.Context(), "bad offset header", slog.String("value", header))
		WriteCalendarError(w, err)
		return nil, false
	}
	return calendar.FixedZone(minutes), true
}

// writeEngineError writes err from the calendar package. Rejected input is
// only worth a debug line; anything else is logged as an error.
func writeEngineError(ctx context.Context, w http.ResponseWriter, err error, args ...any) {
	if calendar.IsParseError(err) {
		logger.Debug(ctx, "input rejected", append(args, slog.Any("error", err))...)
	} else {
		logger.Error(ctx, "calendar operation failed", err, args...)
	}
	WriteCalendarError(w, err)
}

// parseDay reads YYYY-MM-DD as noon in loc.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
