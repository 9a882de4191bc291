package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zapponejosh/tanggalan/internal/calendar"
)

// This script prints the Javanese calendar that overlaps a Gregorian year:
// key dates first, then every day grouped by Javanese month.

func main() {
	year := flag.Int("year", 2025, "Gregorian year to generate dates for")
	pattern := flag.String("pattern", "D P, d M yyyy, W", "Pattern used for each day")
	offset := flag.String("offset", "+0700", "UTC offset of the printed dates")
	keyOnly := flag.Bool("key", false, "Only print key dates")
	flag.Parse()

	minutes, err := calendar.ParseOffset(*offset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -offset: %v\n", err)
		os.Exit(2)
	}
	loc := calendar.FixedZone(minutes)

	start := time.Date(*year, time.January, 1, 12, 0, 0, 0, loc)
	end := time.Date(*year, time.December, 31, 12, 0, 0, 0, loc)

	fmt.Printf("=== Javanese Calendar for %d ===\n\n", *year)

	// ==========================================================================
	// KEY DATES
	// ==========================================================================
	first := calendar.Convert(start)
	last := calendar.Convert(end)

	fmt.Println("Key Dates:")
	for y := first.Year(); y <= last.Year(); y++ {
		sura := calendar.NewYear(y)
		if sura.Year() != *year {
			continue
		}
		kind := "wastu"
		if calendar.IsKabisat(y) {
			kind = "kabisat"
		}
		fmt.Printf("  1 Sura %d (%s, %s, %d days): %s\n",
			y, calendar.TaunOf(y), kind, calendar.DaysInYear(y), formatDate(sura))
	}
	for m := calendar.Kasa; m <= calendar.Sada; m++ {
		month, day := calendar.MongsoStart(m)
		fmt.Printf("  Mongso %-9s %s\n", m.String()+":", formatDate(time.Date(*year, month, day, 0, 0, 0, 0, loc)))
	}
	fmt.Println()

	if *keyOnly {
		return
	}

	// ==========================================================================
	// DAYS BY JAVANESE MONTH
	// ==========================================================================
	type monthKey struct {
		year  int
		month calendar.Wulan
	}

	var current monthKey
	counts := make(map[monthKey]int)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		jd := calendar.Convert(d)

		key := monthKey{jd.Year(), jd.Month()}
		if key != current {
			current = key
			fmt.Printf("\n%s %d (%d days)\n", key.month, key.year, calendar.DaysInMonth(key.year, key.month))
		}
		counts[key]++

		fmt.Printf("  %s  %s\n", formatDate(d), jd.Format(*pattern))
	}

	fmt.Println()
	fmt.Printf("Summary: %d days across %d Javanese months\n", int(end.Sub(start).Hours()/24)+1, len(counts))
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
