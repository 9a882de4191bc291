package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// token is one word of the pattern vocabulary.
type token struct {
	expr   string // capture group matched when parsing
	format func(JavaneseDate) string
	parse  func(*parsedValue, string) error
}

const (
	nameExpr  = `([A-Za-z]+)`
	namesExpr = `([A-Za-z]+(?: [A-Za-z]+)*)`
)

var tokens = map[string]token{
	"yyyy": {`(-?\d{4,})`, func(d JavaneseDate) string { return pad(d.f.year, 4) }, (*parsedValue).setYear},
	"mm":   {`(\d{2})`, func(d JavaneseDate) string { return pad(int(d.f.wulan)+1, 2) }, (*parsedValue).setMonth},
	"m":    {`(\d{1,2})`, func(d JavaneseDate) string { return strconv.Itoa(int(d.f.wulan) + 1) }, (*parsedValue).setMonth},
	"M":    {namesExpr, func(d JavaneseDate) string { return d.f.wulan.String() }, (*parsedValue).setMonthName},
	"dd":   {`(\d{2})`, func(d JavaneseDate) string { return pad(d.f.day, 2) }, (*parsedValue).setDay},
	"d":    {`(\d{1,2})`, func(d JavaneseDate) string { return strconv.Itoa(d.f.day) }, (*parsedValue).setDay},
	"P":    {nameExpr, func(d JavaneseDate) string { return d.f.pasaran.String() }, claimOf("P")},
	"D":    {nameExpr, func(d JavaneseDate) string { return d.f.dina.String() }, claimOf("D")},
	"T":    {nameExpr, func(d JavaneseDate) string { return d.f.taun.String() }, claimOf("T")},
	"W":    {nameExpr, func(d JavaneseDate) string { return d.f.wuku.String() }, claimOf("W")},
	"N":    {`(\d{1,2})`, func(d JavaneseDate) string { return strconv.Itoa(d.f.neptu) }, claimOf("N")},
	"MS":   {nameExpr, func(d JavaneseDate) string { return d.f.mongso.String() }, claimOf("MS")},
	"WK":   {namesExpr, func(d JavaneseDate) string { return d.f.wektu }, claimOf("WK")},
	"HH":   {`(\d{2})`, func(d JavaneseDate) string { return pad(d.t.Hour(), 2) }, (*parsedValue).setHour},
	"MM":   {`(\d{2})`, func(d JavaneseDate) string { return pad(d.t.Minute(), 2) }, (*parsedValue).setMinute},
	"SS":   {`(\d{2})`, func(d JavaneseDate) string { return pad(d.t.Second(), 2) }, (*parsedValue).setSecond},
	"Z":    {`([+-]\d{4})`, func(d JavaneseDate) string { return FormatOffset(offsetOf(d.t)) }, (*parsedValue).setOffset},
}

// segment is a run of pattern text: either a token or literal text.
type segment struct {
	text  string
	token bool
}

// compiledPattern is the reusable form of a pattern string.
type compiledPattern struct {
	segments []segment
	re       *regexp.Regexp
	reErr    error
	groups   []string // token of each capture group, in order
}

// maxCachedPatterns bounds the cache; patterns beyond it are compiled per call.
const maxCachedPatterns = 512

var (
	patternCache   sync.Map // string -> *compiledPattern
	cachedPatterns atomic.Int32
)

func compile(pattern string) *compiledPattern {
	if cp, ok := patternCache.Load(pattern); ok {
		return cp.(*compiledPattern)
	}

	cp := newCompiledPattern(pattern)
	if cachedPatterns.Load() < maxCachedPatterns {
		if _, loaded := patternCache.LoadOrStore(pattern, cp); !loaded {
			cachedPatterns.Add(1)
		}
	}
	return cp
}

func newCompiledPattern(pattern string) *compiledPattern {
	cp := &compiledPattern{}

	var expr strings.Builder
	expr.WriteString("^")
	for _, word := range splitWords(pattern) {
		tok, ok := tokens[word]
		if !ok {
			cp.appendLiteral(word)
			expr.WriteString(regexp.QuoteMeta(word))
			continue
		}
		cp.segments = append(cp.segments, segment{text: word, token: true})
		cp.groups = append(cp.groups, word)
		expr.WriteString(tok.expr)
	}
	expr.WriteString("$")

	// Quoted literals can still be rejected, e.g. invalid UTF-8. Format does
	// not need the regexp, so the error is kept for Parse.
	cp.re, cp.reErr = regexp.Compile(expr.String())
	return cp
}

func (cp *compiledPattern) appendLiteral(text string) {
	if n := len(cp.segments); n > 0 && !cp.segments[n-1].token {
		cp.segments[n-1].text += text
		return
	}
	cp.segments = append(cp.segments, segment{text: text})
}

// hasToken reports whether any of names appears as a token in the pattern.
func (cp *compiledPattern) hasToken(names ...string) bool {
	for _, g := range cp.groups {
		for _, n := range names {
			if g == n {
				return true
			}
		}
	}
	return false
}

// splitWords cuts s into alternating runs of word and non-word bytes. Word
// bytes are ASCII letters, digits and '_', the same set regexp's \b uses, so
// a token only matches when it is a whole word.
func splitWords(s string) []string {
	var words []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isWordByte(s[i]) != isWordByte(s[i-1]) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return words
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// pad zero-pads the absolute value of n to width digits.
func pad(n, width int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	if neg {
		s = "-" + s
	}
	return s
}
