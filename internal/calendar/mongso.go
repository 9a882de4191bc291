package calendar

import "time"

// mongsoRanges lists inclusive solar date ranges keyed as month*100+day.
// Kapitu spans the new year and is handled separately.
var mongsoRanges = []struct {
	from, to int
	mongso   Mongso
}{
	{622, 801, Kasa},
	{802, 824, Karo},
	{825, 917, Katelu},
	{918, 1012, Kapat},
	{1013, 1108, Kalima},
	{1109, 1221, Kanem},
	{203, 229, Kawolu},
	{301, 325, Kasanga},
	{326, 418, Kasadasa},
	{419, 511, Desta},
	{512, 621, Sada},
}

func mongsoOf(month time.Month, day int) Mongso {
	v := int(month)*100 + day
	if v >= 1222 || v <= 202 {
		return Kapitu
	}
	for _, r := range mongsoRanges {
		if v >= r.from && v <= r.to {
			return r.mongso
		}
	}
	return Kapitu
}

// MongsoStart returns the first solar month and day of m.
func MongsoStart(m Mongso) (time.Month, int) {
	if m == Kapitu {
		return time.December, 22
	}
	for _, r := range mongsoRanges {
		if r.mongso == m {
			return time.Month(r.from / 100), r.from % 100
		}
	}
	return 0, 0
}
