package calendar

import "errors"

// Errors returned by Parse, Date and NextWeton. They are always wrapped with
// the offending input, so match them with errors.Is.
var (
	// ErrFormatMismatch is returned when a value does not match its pattern.
	ErrFormatMismatch = errors.New("value does not match pattern")

	// ErrMissingField is returned when a pattern lacks a year, month or day token.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownMonthName is returned when a month name is not a Javanese month.
	ErrUnknownMonthName = errors.New("unknown month name")

	// ErrInvalidWeton is returned when a weton is not "<dina> <pasaran>".
	ErrInvalidWeton = errors.New("invalid weton name")

	// ErrPasaranMismatch is returned when a parsed pasaran disagrees with the date.
	ErrPasaranMismatch = errors.New("pasaran mismatch")

	// ErrFieldMismatch is returned when any other parsed name (dina, taun,
	// wuku, mongso, wektu, neptu) disagrees with the date.
	ErrFieldMismatch = errors.New("field mismatch")

	// ErrOutOfRange is returned for months, days or times that do not exist.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidOffset is returned for a UTC offset not written as ±HHMM.
	ErrInvalidOffset = errors.New("invalid UTC offset")
)

// IsParseError reports whether err was caused by the caller's input, such as
// a date string, a weton name or an offset, rather than by the package.
func IsParseError(err error) bool {
	for _, target := range []error{
		ErrFormatMismatch, ErrMissingField, ErrUnknownMonthName,
		ErrInvalidWeton, ErrPasaranMismatch, ErrFieldMismatch, ErrOutOfRange, ErrInvalidOffset,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
