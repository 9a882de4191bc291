package calendar

import (
	"strconv"
	"strings"
)

// Dina is a day of the seven-day week. Minggu (Sunday) is 0, matching time.Weekday.
type Dina int

const (
	Minggu Dina = iota
	Senen
	Selasa
	Rebo
	Kemis
	Jemuah
	Setu
)

// Pasaran is a day of the five-day market week.
type Pasaran int

const (
	Legi Pasaran = iota
	Pahing
	Pon
	Wage
	Kliwon
)

// Wulan is a month of the Javanese lunar year.
type Wulan int

const (
	Sura Wulan = iota
	Sapar
	Mulud
	BakdaMulud
	Jumadilawal
	Jumadilakir
	Rejeb
	Ruwah
	Pasa
	Sawal
	Sela
	Besar
)

// Taun is the position of a year inside the eight-year windu cycle.
type Taun int

const (
	Alip Taun = iota
	Ehe
	Jimawal
	Je
	Dal
	Be
	Wawu
	Jimakir
)

// Wuku is one of the thirty named weeks of the wuku cycle.
type Wuku int

// Mongso is a season of the solar pranata mangsa calendar.
type Mongso int

const (
	Kasa Mongso = iota
	Karo
	Katelu
	Kapat
	Kalima
	Kanem
	Kapitu
	Kawolu
	Kasanga
	Kasadasa
	Desta
	Sada
)

var (
	dinaNames    = []string{"Minggu", "Senen", "Selasa", "Rebo", "Kemis", "Jemuah", "Setu"}
	pasaranNames = []string{"Legi", "Pahing", "Pon", "Wage", "Kliwon"}
	wulanNames   = []string{
		"Sura", "Sapar", "Mulud", "Bakda Mulud", "Jumadilawal", "Jumadilakir",
		"Rejeb", "Ruwah", "Pasa", "Sawal", "Sela", "Besar",
	}
	taunNames = []string{"Alip", "Ehe", "Jimawal", "Je", "Dal", "Be", "Wawu", "Jimakir"}
	wukuNames = []string{
		"Sinta", "Landep", "Wukir", "Kurantil", "Tolu",
		"Gumbreg", "Warigalit", "Warigagung", "Julungwangi", "Sungsang",
		"Galungan", "Kuningan", "Langkir", "Mandasiya", "Julungpujut",
		"Pahang", "Kuruwelut", "Marakeh", "Tambir", "Medangkungan",
		"Maktal", "Wuye", "Manahil", "Prangbakat", "Bala",
		"Wugu", "Wayang", "Kulawu", "Dukut", "Watugunung",
	}
	mongsoNames = []string{
		"Kasa", "Karo", "Katelu", "Kapat", "Kalima", "Kanem",
		"Kapitu", "Kawolu", "Kasanga", "Kasadasa", "Desta", "Sada",
	}

	// Neptu weights, indexed by Dina and Pasaran.
	dinaNeptu    = []int{5, 4, 3, 7, 8, 6, 9}
	pasaranNeptu = []int{5, 9, 7, 4, 8}
)

func (d Dina) String() string    { return nameOf(dinaNames, int(d), "Dina") }
func (p Pasaran) String() string { return nameOf(pasaranNames, int(p), "Pasaran") }
func (w Wulan) String() string   { return nameOf(wulanNames, int(w), "Wulan") }
func (t Taun) String() string    { return nameOf(taunNames, int(t), "Taun") }
func (w Wuku) String() string    { return nameOf(wukuNames, int(w), "Wuku") }
func (m Mongso) String() string  { return nameOf(mongsoNames, int(m), "Mongso") }

// Neptu returns the numeric weight of the day.
func (d Dina) Neptu() int { return dinaNeptu[d] }

// Neptu returns the numeric weight of the market day.
func (p Pasaran) Neptu() int { return pasaranNeptu[p] }

// ParseDina looks up a day name, ignoring case and surrounding space.
func ParseDina(name string) (Dina, bool) {
	i, ok := lookupName(dinaNames, name)
	return Dina(i), ok
}

// ParsePasaran looks up a market-day name, ignoring case and surrounding space.
func ParsePasaran(name string) (Pasaran, bool) {
	i, ok := lookupName(pasaranNames, name)
	return Pasaran(i), ok
}

// ParseWulan looks up a month name, ignoring case and surrounding space.
func ParseWulan(name string) (Wulan, bool) {
	i, ok := lookupName(wulanNames, name)
	return Wulan(i), ok
}

func nameOf(names []string, i int, kind string) string {
	if i < 0 || i >= len(names) {
		return "%!" + kind + "(" + strconv.Itoa(i) + ")"
	}
	return names[i]
}

func lookupName(names []string, name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return -1, false
}
