package api

import (
	"time"

	"github.com/zapponejosh/tanggalan/internal/calendar"
)

// DateResponse is the JSON form of a Javanese date.
type DateResponse struct {
	Gregorian   string `json:"gregorian"` // YYYY-MM-DD in the request's zone
	Time        string `json:"time"`      // RFC 3339 instant
	Day         int    `json:"day"`
	Month       string `json:"month"`
	MonthNumber int    `json:"month_number"`
	Year        int    `json:"year"`
	Taun        string `json:"taun"`
	Kabisat     bool   `json:"kabisat"`
	Dina        string `json:"dina"`
	Pasaran     string `json:"pasaran"`
	Weton       string `json:"weton"`
	Neptu       int    `json:"neptu"`
	Wuku        string `json:"wuku"`
	Mongso      string `json:"mongso"`
	Wektu       string `json:"wektu"`
	Text        string `json:"text"`
	Formatted   string `json:"formatted,omitempty"`
}

func newDateResponse(jd calendar.JavaneseDate) DateResponse {
	t := jd.Time()
	return DateResponse{
		Gregorian:   t.Format(dateLayout),
		Time:        t.Format(time.RFC3339),
		Day:         jd.Day(),
		Month:       jd.Month().String(),
		MonthNumber: int(jd.Month()) + 1,
		Year:        jd.Year(),
		Taun:        jd.Taun().String(),
		Kabisat:     jd.IsKabisat(),
		Dina:        jd.Dina().String(),
		Pasaran:     jd.Pasaran().String(),
		Weton:       jd.Weton().String(),
		Neptu:       jd.Neptu(),
		Wuku:        jd.Wuku().String(),
		Mongso:      jd.Mongso().String(),
		Wektu:       jd.Wektu(),
		Text:        jd.String(),
	}
}

// RangeResponse lists consecutive days.
type RangeResponse struct {
	Start string         `json:"start"`
	End   string         `json:"end"`
	Days  []DateResponse `json:"days"`
}

// WetonResponse is the result of a next-weton search.
type WetonResponse struct {
	From     DateResponse `json:"from"`
	Next     DateResponse `json:"next"`
	DaysAway int          `json:"days_away"`
}

// YearResponse describes one Javanese year.
type YearResponse struct {
	Year    int             `json:"year"`
	Taun    string          `json:"taun"`
	Kabisat bool            `json:"kabisat"`
	Days    int             `json:"days"`
	NewYear string          `json:"new_year"` // Gregorian date of 1 Sura
	Months  []MonthResponse `json:"months"`
}

// MonthResponse describes one month of a Javanese year.
type MonthResponse struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Days   int    `json:"days"`
	Starts string `json:"starts"`
}

func newYearResponse(year int) YearResponse {
	resp := YearResponse{
		Year:    year,
		Taun:    calendar.TaunOf(year).String(),
		Kabisat: calendar.IsKabisat(year),
		Days:    calendar.DaysInYear(year),
		NewYear: calendar.NewYear(year).Format(dateLayout),
	}
	for m := calendar.Sura; m <= calendar.Besar; m++ {
		resp.Months = append(resp.Months, MonthResponse{
			Number: int(m) + 1,
			Name:   m.String(),
			Days:   calendar.DaysInMonth(year, m),
			Starts: calendar.ToGregorian(year, m, 1).Format(dateLayout),
		})
	}
	return resp
}

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Text    string `json:"text" validate:"required,max=256"`
	Pattern string `json:"pattern" validate:"required,max=128"`
	Offset  string `json:"offset" validate:"omitempty,utc_offset"`
}
