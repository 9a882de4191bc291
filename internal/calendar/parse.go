package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parsedValue collects the raw fields read from a string.
type parsedValue struct {
	year, month, day     int
	hour, minute, second int
	offset               int
	hasOffset            bool
	claims               []claim
}

// claim is a name or number in the input that must agree with the date.
type claim struct {
	token string
	raw   string
}

var claimFields = map[string]string{
	"P":  "pasaran",
	"D":  "dina",
	"T":  "taun",
	"W":  "wuku",
	"N":  "neptu",
	"MS": "mongso",
	"WK": "wektu",
}

// Parse reads a Javanese date from value using pattern (see Format for the
// tokens). The pattern must contain a year, a month and a day. Unless a Z
// offset is present the time of day is taken in time.Local.
//
// Names such as the pasaran are not needed to find the date; when present
// they are checked against it.
func Parse(value, pattern string) (JavaneseDate, error) {
	return ParseInLocation(value, pattern, time.Local)
}

// ParseInLocation is like Parse but interprets the time of day in loc when
// the value carries no Z offset.
func ParseInLocation(value, pattern string, loc *time.Location) (JavaneseDate, error) {
	cp := compile(pattern)
	if err := cp.requireDate(pattern); err != nil {
		return JavaneseDate{}, err
	}
	if cp.reErr != nil {
		return JavaneseDate{}, fmt.Errorf("%w: pattern %q: %v", ErrFormatMismatch, pattern, cp.reErr)
	}

	m := cp.re.FindStringSubmatch(value)
	if m == nil {
		return JavaneseDate{}, fmt.Errorf("%w: %q does not match %q", ErrFormatMismatch, value, pattern)
	}

	var v parsedValue
	for i, tok := range cp.groups {
		if err := tokens[tok].parse(&v, m[i+1]); err != nil {
			return JavaneseDate{}, err
		}
	}

	if v.hasOffset {
		loc = FixedZone(v.offset)
	}
	d, err := Date(v.year, Wulan(v.month), v.day, v.hour, v.minute, v.second, loc)
	if err != nil {
		return JavaneseDate{}, err
	}
	if err := v.check(d); err != nil {
		return JavaneseDate{}, err
	}
	return d, nil
}

// requireDate reports the date fields pattern has no token for.
func (cp *compiledPattern) requireDate(pattern string) error {
	var missing []string
	if !cp.hasToken("yyyy") {
		missing = append(missing, "year")
	}
	if !cp.hasToken("mm", "m", "M") {
		missing = append(missing, "month")
	}
	if !cp.hasToken("dd", "d") {
		missing = append(missing, "day")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: pattern %q has no %s", ErrMissingField, pattern, strings.Join(missing, ", "))
	}
	return nil
}

// check verifies the claims against d, the pasaran first.
func (v *parsedValue) check(d JavaneseDate) error {
	for _, c := range v.claims {
		if c.token != "P" {
			continue
		}
		if want := d.Pasaran().String(); !strings.EqualFold(want, strings.TrimSpace(c.raw)) {
			return fmt.Errorf("%w: %d %s %d falls on %s, not %s",
				ErrPasaranMismatch, d.Day(), d.Month(), d.Year(), want, c.raw)
		}
	}

	for _, c := range v.claims {
		if c.token == "P" {
			continue
		}
		want := tokens[c.token].format(d)
		if c.token == "N" {
			n, _ := strconv.Atoi(c.raw)
			if n == d.Neptu() {
				continue
			}
		} else if strings.EqualFold(want, strings.TrimSpace(c.raw)) {
			continue
		}
		return fmt.Errorf("%w: %s of %d %s %d is %s, not %s",
			ErrFieldMismatch, claimFields[c.token], d.Day(), d.Month(), d.Year(), want, c.raw)
	}
	return nil
}

func claimOf(tok string) func(*parsedValue, string) error {
	return func(v *parsedValue, raw string) error {
		v.claims = append(v.claims, claim{token: tok, raw: raw})
		return nil
	}
}

func (v *parsedValue) setYear(raw string) error {
	n, err := atoi(raw, "year")
	v.year = n
	return err
}

func (v *parsedValue) setMonth(raw string) error {
	n, err := atoi(raw, "month")
	v.month = n - 1
	return err
}

func (v *parsedValue) setMonthName(raw string) error {
	w, ok := ParseWulan(raw)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMonthName, strings.TrimSpace(raw))
	}
	v.month = int(w)
	return nil
}

func (v *parsedValue) setDay(raw string) error {
	n, err := atoi(raw, "day")
	v.day = n
	return err
}

func (v *parsedValue) setHour(raw string) (err error) {
	v.hour, err = atoi(raw, "hour")
	return err
}

func (v *parsedValue) setMinute(raw string) (err error) {
	v.minute, err = atoi(raw, "minute")
	return err
}

func (v *parsedValue) setSecond(raw string) (err error) {
	v.second, err = atoi(raw, "second")
	return err
}

func (v *parsedValue) setOffset(raw string) error {
	minutes, err := ParseOffset(raw)
	if err != nil {
		return err
	}
	v.offset, v.hasOffset = minutes, true
	return nil
}

func atoi(raw, field string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrOutOfRange, field, raw)
	}
	return n, nil
}
