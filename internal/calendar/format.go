package calendar

import "strings"

// Format renders d according to pattern. Recognised tokens are replaced only
// when they form a whole word; every other part of the pattern is copied as is.
//
//	yyyy  year              D   dina          HH  hour (00-23)
//	mm m  month number      P   pasaran       MM  minute
//	M     month name        T   windu year    SS  second
//	dd d  day of month      W   wuku          Z   UTC offset, ±HHMM
//	N     neptu             MS  mongso        WK  wektu
func (d JavaneseDate) Format(pattern string) string {
	cp := compile(pattern)

	var b strings.Builder
	for _, s := range cp.segments {
		if !s.token {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(tokens[s.text].format(d))
	}
	return b.String()
}
