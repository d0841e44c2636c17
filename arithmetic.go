package utc

import (
	"github.com/davejbax/go-utc/internal/calendar"
	"github.com/davejbax/go-utc/internal/civil"
	"math"
	"time"
)

// Add returns t+d. d may be negative.
func (t Timestamp) Add(d time.Duration) Timestamp {
	days, rest := splitDays(int64(d))
	return New(t.jdn+days, t.nsOfDay+rest)
}

// SubDuration returns t-d
func (t Timestamp) SubDuration(d time.Duration) Timestamp {
	// Negating d would overflow for math.MinInt64
	days, rest := splitDays(int64(d))
	return New(t.jdn-days, t.nsOfDay-rest)
}

// AddDays returns t moved by n whole days, keeping the time of day
func (t Timestamp) AddDays(n int64) Timestamp {
	return Timestamp{jdn: t.jdn + n, nsOfDay: t.nsOfDay}
}

// Sub returns the duration t-u, so that u.Add(t.Sub(u)) == t. When t and u are more than about 292 years apart the
// result saturates at the largest or smallest [time.Duration], like [time.Time.Sub]; use [Timestamp.Diff] for an
// exact difference at any distance.
func (t Timestamp) Sub(u Timestamp) time.Duration {
	days, rest := t.Diff(u)

	if days >= 0 {
		if days > math.MaxInt64/NanosPerDay {
			return math.MaxInt64
		}

		whole := days * NanosPerDay
		if int64(rest) > math.MaxInt64-whole {
			return math.MaxInt64
		}

		return time.Duration(whole + int64(rest))
	}

	// days*NanosPerDay + rest == (days+1)*NanosPerDay - (NanosPerDay-rest)
	days++
	if days < math.MinInt64/NanosPerDay {
		return math.MinInt64
	}

	whole := days * NanosPerDay
	short := NanosPerDay - int64(rest)
	if whole < math.MinInt64+short {
		return math.MinInt64
	}

	return time.Duration(whole - short)
}

// Diff returns t-u exactly, as whole days and a remainder in [0, NanosPerDay), so that
// u.AddDays(days).Add(rest) == t
func (t Timestamp) Diff(u Timestamp) (days int64, rest time.Duration) {
	days = t.jdn - u.jdn
	ns := t.nsOfDay - u.nsOfDay
	if ns < 0 {
		days--
		ns += NanosPerDay
	}

	return days, time.Duration(ns)
}

// Truncate drops the fraction of a second
func (t Timestamp) Truncate() Timestamp {
	if t.nsOfDay%civil.NanosPerSecond == 0 {
		return t
	}

	return New(t.jdn, t.nsOfDay/civil.NanosPerSecond*civil.NanosPerSecond)
}

// Round rounds to the nearest second; half a second rounds up. Rounding up from the last second of a day moves to
// midnight of the next.
func (t Timestamp) Round() Timestamp {
	rest := t.nsOfDay % civil.NanosPerSecond
	if rest == 0 {
		return t
	}

	if rest >= civil.NanosPerSecond/2 {
		return New(t.jdn, t.nsOfDay-rest+civil.NanosPerSecond)
	}

	return New(t.jdn, t.nsOfDay-rest)
}

// BeginOfDay returns midnight at the start of t's day
func (t Timestamp) BeginOfDay() Timestamp {
	return New(t.jdn, 0)
}

// EndOfDay returns the last nanosecond of t's day
func (t Timestamp) EndOfDay() Timestamp {
	return New(t.jdn, lastNanoOfDay)
}

func (t Timestamp) addSeconds(sec int64) Timestamp {
	days := calendar.FloorDiv(sec, civil.SecondsPerDay)
	rest := sec - days*civil.SecondsPerDay

	return New(t.jdn+days, t.nsOfDay+rest*civil.NanosPerSecond)
}

// splitDays splits ns into whole days and a remainder in [0, NanosPerDay), so that adding either to a Timestamp
// cannot overflow
func splitDays(ns int64) (days, rest int64) {
	days = calendar.FloorDiv(ns, NanosPerDay)
	return days, ns - days*NanosPerDay
}
