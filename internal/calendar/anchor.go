package calendar

import "time"

// anchorPoint ties one solar date to a known position in the Javanese calendar.
// Every calculation in this package is relative to it.
type anchorPoint struct {
	solar     time.Time // held at noon UTC
	year      int       // Javanese year at solar
	dayOfYear int       // 1-based day of year at solar
	windu     [8]int    // year lengths, indexed by (year - anchor year) mod 8
}

// 1 January 2022 is 28 Jumadilawal 1955 (Alip), the 146th day of that year.
var anchor = anchorPoint{
	solar:     time.Date(2022, time.January, 1, 12, 0, 0, 0, time.UTC),
	year:      1955,
	dayOfYear: 146,
	windu:     [8]int{355, 354, 355, 354, 354, 354, 354, 355},
}

// MinYear and MaxYear are the Javanese years holding 1 January 1 and
// 31 December 9999. Date and Parse reject years outside them.
const (
	MinYear = -128
	MaxYear = 10178
)

const (
	wastuDays   = 354
	kabisatDays = 355
)

// winduDays is the length of one full eight-year cycle.
var winduDays = anchor.cycleDays()

func (a anchorPoint) cycleDays() int {
	n := 0
	for _, l := range a.windu {
		n += l
	}
	return n
}

// winduIndex returns the position of year inside the windu cycle.
func winduIndex(year int) int {
	return mod(year-anchor.year, len(anchor.windu))
}

// IsKabisat reports whether the Javanese year is a leap (355-day) year.
func IsKabisat(year int) bool {
	return anchor.windu[winduIndex(year)] == kabisatDays
}

// DaysInYear returns 355 for kabisat years and 354 otherwise.
func DaysInYear(year int) int {
	return anchor.windu[winduIndex(year)]
}

// TaunOf returns the windu year name of the Javanese year.
func TaunOf(year int) Taun {
	return Taun(winduIndex(year))
}

func mod(a, b int) int {
	return (a%b + b) % b
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
