package calendar

import (
	"fmt"
	"time"
)

// standardMonths holds the lengths of Sura through Sela, which are the same
// in every year. Besar is never a month "before" another one.
var standardMonths = [11]int{30, 29, 30, 29, 30, 29, 30, 29, 30, 29, 30}

// daysBeforeYear returns the signed number of days from 1 Sura of the anchor
// year to 1 Sura of year.
func daysBeforeYear(year int) int {
	n := year - anchor.year
	cycles := floorDiv(n, len(anchor.windu))
	days := cycles * winduDays
	for i := 0; i < n-cycles*len(anchor.windu); i++ {
		days += anchor.windu[i]
	}
	return days
}

// ToGregorian returns the solar date, at noon UTC, of the given Javanese day.
// The input is not validated: day 30 of a 29-day month is the first day of
// the following month, and years far outside MinYear..MaxYear overflow.
func ToGregorian(year int, month Wulan, day int) time.Time {
	total := daysBeforeYear(year)
	for i := 0; i < int(month) && i < len(standardMonths); i++ {
		total += standardMonths[i]
	}
	total += day
	return anchor.solar.AddDate(0, 0, total-anchor.dayOfYear)
}

// NewYear returns the solar date of 1 Sura of the Javanese year.
func NewYear(year int) time.Time {
	return ToGregorian(year, Sura, 1)
}

// Date returns the Javanese date for day of month in year, at the given
// wall-clock time in loc. A nil loc means time.Local.
func Date(year int, month Wulan, day, hour, min, sec int, loc *time.Location) (JavaneseDate, error) {
	if err := validate(year, month, day, hour, min, sec); err != nil {
		return JavaneseDate{}, err
	}
	if loc == nil {
		loc = time.Local
	}

	y, m, d := ToGregorian(year, month, day).Date()
	return Convert(time.Date(y, m, d, hour, min, sec, 0, loc)), nil
}

func validate(year int, month Wulan, day, hour, min, sec int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d is not between %d and %d", ErrOutOfRange, year, MinYear, MaxYear)
	}
	if month < Sura || month > Besar {
		return fmt.Errorf("%w: month %d is not between 1 and 12", ErrOutOfRange, int(month)+1)
	}
	if n := DaysInMonth(year, month); day < 1 || day > n {
		return fmt.Errorf("%w: %s %d has %d days, got %d", ErrOutOfRange, month, year, n, day)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 {
		return fmt.Errorf("%w: time %02d:%02d:%02d", ErrOutOfRange, hour, min, sec)
	}
	return nil
}
