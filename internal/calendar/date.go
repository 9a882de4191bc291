package calendar

import (
	"fmt"
	"time"
)

// fields holds the raw indices computed by Convert.
type fields struct {
	day     int
	dina    Dina
	pasaran Pasaran
	wulan   Wulan
	year    int
	taun    Taun
	wuku    Wuku
	neptu   int
	mongso  Mongso
	wektu   string
}

// JavaneseDate is a solar instant together with its Javanese calendar fields.
// It is an immutable value; create one with Convert, Date or Parse.
type JavaneseDate struct {
	t time.Time
	f fields
}

// Time returns the solar instant the date was computed from.
func (d JavaneseDate) Time() time.Time { return d.t }

// Day returns the day of the Javanese month (1-30).
func (d JavaneseDate) Day() int { return d.f.day }

// Month returns the Javanese month.
func (d JavaneseDate) Month() Wulan { return d.f.wulan }

// Year returns the Javanese year number.
func (d JavaneseDate) Year() int { return d.f.year }

// Taun returns the windu year name.
func (d JavaneseDate) Taun() Taun { return d.f.taun }

// Dina returns the day of the seven-day week.
func (d JavaneseDate) Dina() Dina { return d.f.dina }

// Pasaran returns the day of the five-day market week.
func (d JavaneseDate) Pasaran() Pasaran { return d.f.pasaran }

// Weton returns the dina and pasaran pair.
func (d JavaneseDate) Weton() Weton { return Weton{Dina: d.f.dina, Pasaran: d.f.pasaran} }

// Neptu returns the combined dina and pasaran weight.
func (d JavaneseDate) Neptu() int { return d.f.neptu }

// Wuku returns the wuku week.
func (d JavaneseDate) Wuku() Wuku { return d.f.wuku }

// Mongso returns the solar season.
func (d JavaneseDate) Mongso() Mongso { return d.f.mongso }

// Wektu returns the traditional name for the time of day.
func (d JavaneseDate) Wektu() string { return d.f.wektu }

func (d JavaneseDate) Hour() int   { return d.t.Hour() }
func (d JavaneseDate) Minute() int { return d.t.Minute() }
func (d JavaneseDate) Second() int { return d.t.Second() }

// IsKabisat reports whether the date's Javanese year has 355 days.
func (d JavaneseDate) IsKabisat() bool { return IsKabisat(d.f.year) }

// String returns the date as "Setu Pahing, 28 Jumadilawal 1955 Ja, Bedhug".
func (d JavaneseDate) String() string {
	return fmt.Sprintf("%s %s, %d %s %d Ja, %s",
		d.f.dina, d.f.pasaran, d.f.day, d.f.wulan, d.f.year, d.f.wektu)
}
