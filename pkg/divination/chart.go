package divination

import (
	"time"
	"unicode/utf16"

	"github.com/m-mizutani/omnifind/pkg/model"
)

// Chart holds every value derived from an Input before any text is rendered
type Chart struct {
	Hour, Day, Month int
	TimeValid        bool

	HourBranch int
	ItemWeight int

	Upper, Lower Trigram
	MovingLine   int // 1..6
	Ti, Yong     Trigram

	Relation        Relation
	BaseProbability int
	Cycle           CycleState
	Probability     int

	Direction model.Direction
	location  locationProfile
}

// Option configures Plot and Calculate
type Option func(*options)

type options struct {
	loc *time.Location
}

// WithLocation sets the time zone a lost time without offset is read in.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{loc: time.Local}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseLostTime reads an ISO local datetime in loc, or an RFC 3339 time
// converted to loc
func ParseLostTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cycle is the 1-based modulo ((x-1) mod n) + 1 with floored mod, so that a
// multiple of n maps to n rather than 0.
func cycle(x, n int) int {
	return ((x-1)%n+n)%n + 1
}

// itemWeight counts UTF-16 code units, the unit a browser reports as length
func itemWeight(name string) int {
	return len(utf16.Encode([]rune(name)))
}

// Plot derives the chart for input. An unparseable lost time is read as hour
// 0 on January 1st.
func Plot(input model.Input, opts ...Option) Chart {
	o := newOptions(opts)

	c := Chart{
		Hour:      0,
		Day:       1,
		Month:     1,
		Direction: input.Direction.Normalize(),
	}
	if t, ok := ParseLostTime(input.LostTime, o.loc); ok {
		c.Hour, c.Day, c.Month = t.Hour(), t.Day(), int(t.Month())
		c.TimeValid = true
	}

	c.HourBranch = HourBranch(c.Hour)
	c.ItemWeight = itemWeight(input.ItemName)

	c.Upper = Trigram(cycle(c.ItemWeight+c.Hour+c.Month, 8))
	c.Lower = Trigram(cycle(c.ItemWeight+c.Hour+c.Day+c.Month, 8))
	c.MovingLine = cycle(c.ItemWeight+c.Hour+c.Day+c.Month+c.HourBranch+1, 6)

	if c.UpperMoving() {
		c.Ti, c.Yong = c.Lower, c.Upper
	} else {
		c.Ti, c.Yong = c.Upper, c.Lower
	}

	c.Relation = Classify(c.Ti.Element(), c.Yong.Element())
	c.BaseProbability = c.Relation.BaseProbability()

	c.Cycle = CycleState((c.Month + c.Day + c.HourBranch + 1 - 2) % 6)
	c.Probability = c.Cycle.adjust(c.BaseProbability)

	c.location = classifyLocation(input.LostLocation)
	return c
}

// UpperMoving reports whether the moving line sits in the upper trigram
func (c Chart) UpperMoving() bool {
	return c.MovingLine > 3
}

// YinLine reports whether the moving line is a yin (even) line
func (c Chart) YinLine() bool {
	return c.MovingLine%2 == 0
}

// Location returns the bucket and element of the lost location
func (c Chart) Location() (LocationKind, Element) {
	return c.location.kind, c.location.element
}
