// Package calendar converts between Gregorian dates and the Javanese calendar.
//
// A Javanese date layers several independent cycles over one solar day:
// the eight-year windu with its lunar months (wulan), the five-day pasaran,
// the seven-day week (dina), the thirty-week wuku, the solar mongso seasons
// and the sixteen wektu periods of the day. All of them are computed from a
// single anchor date, so conversions are pure functions that are safe for
// concurrent use.
//
//	jd := calendar.Convert(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
//	jd.Format("D P, d M yyyy") // "Setu Pahing, 28 Jumadilawal 1955"
package calendar

import "time"

const secondsPerDay = 24 * 60 * 60

// Convert computes every Javanese calendar field for t. The calendar date is
// taken in t's own location; the time of day only affects Wektu.
func Convert(t time.Time) JavaneseDate {
	total := daysFromAnchor(t)

	dina := Dina(noon(t).Weekday())
	pasaran := Pasaran(mod(1+total, 5))

	// Wuku weeks start on Minggu; the anchor falls in Marakeh (17).
	wuku := Wuku(mod(17+floorDiv(total+6, 7), len(wukuNames)))

	year, taun, dayOfYear := resolveYear(anchor.dayOfYear + total)
	wulan, day := resolveMonth(dayOfYear, anchor.windu[taun] == kabisatDays)

	return JavaneseDate{
		t: t,
		f: fields{
			day:     day,
			dina:    dina,
			pasaran: pasaran,
			wulan:   wulan,
			year:    year,
			taun:    taun,
			wuku:    wuku,
			neptu:   dina.Neptu() + pasaran.Neptu(),
			mongso:  mongsoOf(t.Month(), t.Day()),
			wektu:   wektuOf(t.Hour(), t.Minute()),
		},
	}
}

// noon returns t's calendar date at 12:00 UTC, so day arithmetic never
// crosses a DST or midnight boundary.
func noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// daysFromAnchor returns the signed number of days between the anchor and
// t's calendar date. Unix seconds are used because time.Duration saturates
// after about 292 years.
func daysFromAnchor(t time.Time) int {
	return int((noon(t).Unix() - anchor.solar.Unix()) / secondsPerDay)
}

// resolveYear turns a day count relative to 1 Sura of the anchor year into
// a Javanese year, its windu position and the 1-based day inside it.
// Whole windus are skipped first so the walk never exceeds eight steps.
func resolveYear(day int) (year int, taun Taun, dayOfYear int) {
	cycles := floorDiv(day-1, winduDays)
	day -= cycles * winduDays
	year = anchor.year + cycles*len(anchor.windu)

	for i := 0; i < len(anchor.windu); i++ {
		if day <= anchor.windu[i] {
			return year, Taun(i), day
		}
		day -= anchor.windu[i]
		year++
	}
	panic("calendar: windu walk did not converge")
}

// monthLengths returns the twelve month lengths; only Besar varies.
func monthLengths(kabisat bool) [12]int {
	l := [12]int{30, 29, 30, 29, 30, 29, 30, 29, 30, 29, 30, 29}
	if kabisat {
		l[Besar] = 30
	}
	return l
}

func resolveMonth(dayOfYear int, kabisat bool) (Wulan, int) {
	lengths := monthLengths(kabisat)
	for i, l := range lengths {
		if dayOfYear <= l {
			return Wulan(i), dayOfYear
		}
		dayOfYear -= l
	}
	panic("calendar: day outside of year")
}

// DaysInMonth returns the number of days of month in the Javanese year.
func DaysInMonth(year int, month Wulan) int {
	if month < Sura || month > Besar {
		return 0
	}
	return monthLengths(IsKabisat(year))[month]
}
