package datekit

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
)

// Phase is the position of a day relative to "today".
type Phase string

const (
	PhasePast   Phase = "past"
	PhaseToday  Phase = "today"
	PhaseFuture Phase = "future"
)

// Classifier maps dates to phases in one explicit location. It is immutable
// and safe for concurrent use.
type Classifier struct {
	loc *time.Location
}

// NewClassifier binds a classifier to loc. A nil loc means UTC.
func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{loc: loc}
}

// LoadClassifier resolves an IANA zone name (e.g. "Asia/Tokyo").
func LoadClassifier(zone string) (*Classifier, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", zone, err)
	}
	return NewClassifier(loc), nil
}

// Location returns the zone the classifier evaluates in.
func (c *Classifier) Location() *time.Location { return c.loc }

// Today is the calendar day of now in the classifier's zone.
func (c *Classifier) Today(now time.Time) Date { return FromTime(now.In(c.loc)) }

// Classify compares d with today at day granularity.
func (c *Classifier) Classify(d Date, now time.Time) Phase {
	switch d.Compare(c.Today(now)) {
	case -1:
		return PhasePast
	case 0:
		return PhaseToday
	}
	return PhaseFuture
}

// DaysUntil is the signed number of days from today to d: 0 today, negative
// for past days. The difference between the two midnights is rounded up.
func (c *Classifier) DaysUntil(d Date, now time.Time) int {
	today := c.Today(now)
	diff := d.In(time.UTC).Sub(today.In(time.UTC))
	return int(math.Ceil(diff.Hours() / 24))
}

// FormatLabel renders d for display. Japanese and Chinese get "12月25日";
// every other locale gets "December 25".
func FormatLabel(d Date, locale language.Tag) string {
	base, _ := locale.Base()
	switch base.String() {
	case "ja", "zh":
		return fmt.Sprintf("%d月%d日", int(d.Month), d.Day)
	}
	return d.In(time.UTC).Format("January 2")
}
