package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Weton is a day of the 35-day cycle formed by dina and pasaran.
type Weton struct {
	Dina    Dina
	Pasaran Pasaran
}

// ParseWeton reads a weton written as "<dina> <pasaran>", e.g. "Setu Pahing".
// Names are matched without regard to case.
func ParseWeton(name string) (Weton, error) {
	parts := strings.Fields(name)
	if len(parts) != 2 {
		return Weton{}, fmt.Errorf("%w: %q, want \"<dina> <pasaran>\"", ErrInvalidWeton, name)
	}

	dina, ok := ParseDina(parts[0])
	if !ok {
		return Weton{}, fmt.Errorf("%w: unknown dina %q", ErrInvalidWeton, parts[0])
	}
	pasaran, ok := ParsePasaran(parts[1])
	if !ok {
		return Weton{}, fmt.Errorf("%w: unknown pasaran %q", ErrInvalidWeton, parts[1])
	}
	return Weton{Dina: dina, Pasaran: pasaran}, nil
}

func (w Weton) String() string {
	return w.Dina.String() + " " + w.Pasaran.String()
}

// Neptu returns the combined weight of the weton.
func (w Weton) Neptu() int {
	return w.Dina.Neptu() + w.Pasaran.Neptu()
}

// NextWeton returns the first day strictly after d whose weton is name.
func (d JavaneseDate) NextWeton(name string) (JavaneseDate, error) {
	w, err := ParseWeton(name)
	if err != nil {
		return JavaneseDate{}, err
	}
	return d.Next(w), nil
}

// Next returns the first day strictly after d that falls on w, at most 35
// days later. The result is at noon in d's location.
func (d JavaneseDate) Next(w Weton) JavaneseDate {
	x := (int(w.Dina) - int(d.f.dina)) % 7
	if x <= 0 {
		x += 7
	}
	// 5 and 7 are coprime, so this runs at most four times.
	for (int(d.f.pasaran)+x)%5 != int(w.Pasaran) {
		x += 7
	}

	y, m, day := d.t.Date()
	return Convert(time.Date(y, m, day+x, 12, 0, 0, 0, d.t.Location()))
}
