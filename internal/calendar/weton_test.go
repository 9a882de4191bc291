package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeton(t *testing.T) {
	w, err := ParseWeton("  senen   LEGI ")
	require.NoError(t, err)
	assert.Equal(t, Weton{Dina: Senen, Pasaran: Legi}, w)
	assert.Equal(t, "Senen Legi", w.String())
	assert.Equal(t, 9, w.Neptu())

	for _, bad := range []string{"", "Senen", "Senen Legi Pon", "Monday Legi", "Senen Monday"} {
		_, err := ParseWeton(bad)
		assert.ErrorIs(t, err, ErrInvalidWeton, bad)
		assert.True(t, IsParseError(err), bad)
	}
}

func TestNextWeton(t *testing.T) {
	jd := Convert(time.Date(2022, time.January, 1, 8, 0, 0, 0, time.UTC))

	tests := []struct {
		weton string
		want  time.Time
	}{
		{"Senen Legi", day(2022, time.January, 10)},
		{"Setu Pahing", day(2022, time.February, 5)},
		{"Minggu Pon", day(2022, time.January, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.weton, func(t *testing.T) {
			next, err := jd.NextWeton(tt.weton)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next.Time())
			assert.Equal(t, tt.weton, next.Weton().String())
		})
	}

	_, err := jd.NextWeton("Setu")
	assert.ErrorIs(t, err, ErrInvalidWeton)
}

func TestNext_AllWetons(t *testing.T) {
	start := Convert(day(2024, time.March, 3))
	for d := Minggu; d <= Setu; d++ {
		for p := Legi; p <= Kliwon; p++ {
			w := Weton{Dina: d, Pasaran: p}
			next := start.Next(w)

			gap := int(next.Time().Sub(start.Time()).Hours() / 24)
			assert.Greater(t, gap, 0, w.String())
			assert.LessOrEqual(t, gap, 35, w.String())
			assert.Equal(t, w, next.Weton())
		}
	}
}

func TestNext_KeepsLocation(t *testing.T) {
	loc := FixedZone(7 * 60)
	jd := Convert(time.Date(2022, time.January, 1, 23, 0, 0, 0, loc))

	next := jd.Next(Weton{Dina: Minggu, Pasaran: Pon})
	assert.Equal(t, loc, next.Time().Location())
	assert.Equal(t, time.Date(2022, time.January, 2, 12, 0, 0, 0, loc), next.Time())
}
