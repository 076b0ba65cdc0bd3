package datekit

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func tokyo(t *testing.T) *Classifier {
	t.Helper()
	c, err := LoadClassifier("Asia/Tokyo")
	require.NoError(t, err)
	return c
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-01")
	require.NoError(t, err)
	require.Equal(t, Date{Year: 2025, Month: time.December, Day: 1}, d)
	require.Equal(t, "2025-12-01", d.String())

	for _, bad := range []string{"", "2025-13-01", "2025-12-32", "12/01/2025", "2025-12-1"} {
		_, err := ParseDate(bad)
		require.Truef(t, errors.Is(err, ErrInvalidDate), "input %q: got %v", bad, err)
	}
}

func TestDate_JSONRoundTripAsString(t *testing.T) {
	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{D: MustParseDate("2025-12-24")})
	require.NoError(t, err)
	require.JSONEq(t, `{"d":"2025-12-24"}`, string(b))

	var out struct {
		D Date `json:"d"`
	}
	require.Error(t, json.Unmarshal([]byte(`{"d":"nope"}`), &out))
}

func TestDate_CompareAndAdd(t *testing.T) {
	a := MustParseDate("2025-12-31")
	b := a.AddDays(1)
	require.Equal(t, "2026-01-01", b.String())
	require.True(t, a.Before(b))
	require.True(t, b.After(a))
	require.Equal(t, 0, a.Compare(MustParseDate("2025-12-31")))
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(2025, time.December, 25)
	require.Equal(t, 25, w.Len())
	days := w.Days()
	require.Len(t, days, 25)
	require.Equal(t, "2025-12-01", days[0].String())
	require.Equal(t, "2025-12-25", days[24].String())
	for i := 1; i < len(days); i++ {
		require.True(t, days[i-1].Before(days[i]))
	}

	require.Equal(t, 28, MonthWindow(2026, time.February, 0).Len())
	require.Equal(t, 31, MonthWindow(2025, time.December, 99).Len())
}

func TestNewRange_RejectsInverted(t *testing.T) {
	_, err := NewRange(MustParseDate("2025-12-03"), MustParseDate("2025-12-01"))
	require.ErrorIs(t, err, ErrInvalidDate)

	r, err := NewRange(MustParseDate("2025-12-01"), MustParseDate("2025-12-03"))
	require.NoError(t, err)
	require.True(t, r.Contains(MustParseDate("2025-12-02")))
	require.False(t, r.Contains(MustParseDate("2025-12-04")))
}

func TestClassify_UsesFixedZone(t *testing.T) {
	c := tokyo(t)
	// 2025-12-01T16:00Z is already Dec 2 in Tokyo.
	now := time.Date(2025, time.December, 1, 16, 0, 0, 0, time.UTC)

	require.Equal(t, PhasePast, c.Classify(MustParseDate("2025-12-01"), now))
	require.Equal(t, PhaseToday, c.Classify(MustParseDate("2025-12-02"), now))
	require.Equal(t, PhaseFuture, c.Classify(MustParseDate("2025-12-03"), now))

	// Same instant expressed in another zone gives the same answer.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	require.Equal(t, PhaseToday, c.Classify(MustParseDate("2025-12-02"), now.In(ny)))

	// A UTC classifier disagrees, which is the point of pinning the zone.
	require.Equal(t, PhaseToday, NewClassifier(nil).Classify(MustParseDate("2025-12-01"), now))
}

func TestDaysUntil(t *testing.T) {
	c := tokyo(t)
	now := time.Date(2025, time.December, 10, 23, 59, 0, 0, c.Location())

	require.Equal(t, 0, c.DaysUntil(MustParseDate("2025-12-10"), now))
	require.Equal(t, 15, c.DaysUntil(MustParseDate("2025-12-25"), now))
	require.Equal(t, -9, c.DaysUntil(MustParseDate("2025-12-01"), now))
	require.Equal(t, 22, c.DaysUntil(MustParseDate("2026-01-01"), now))
}

func TestDaysUntil_AgreesWithClassify(t *testing.T) {
	c := tokyo(t)
	now := time.Date(2025, time.December, 12, 3, 0, 0, 0, time.UTC)
	for _, d := range MonthWindow(2025, time.December, 25).Days() {
		n := c.DaysUntil(d, now)
		switch c.Classify(d, now) {
		case PhasePast:
			require.Negative(t, n, d.String())
		case PhaseToday:
			require.Zero(t, n, d.String())
		case PhaseFuture:
			require.Positive(t, n, d.String())
		}
	}
}

func TestFormatLabel(t *testing.T) {
	d := MustParseDate("2025-12-05")
	require.Equal(t, "12月5日", FormatLabel(d, language.Japanese))
	require.Equal(t, "December 5", FormatLabel(d, language.English))
	require.Equal(t, "December 5", FormatLabel(d, language.Und))
}
