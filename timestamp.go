// Package utc provides Timestamp, a point in time in UTC with nanosecond resolution.
//
// A Timestamp is a Julian Day Number together with the nanoseconds elapsed since midnight of that day. Dates follow
// the proleptic Gregorian calendar in astronomical year numbering (1 BC is year 0), and every day is exactly 86,400
// seconds long: there are no leap seconds. Timestamps are immutable values, safe to share between goroutines.
package utc

import (
	"github.com/davejbax/go-utc/internal/calendar"
	"github.com/davejbax/go-utc/internal/civil"
	"github.com/davejbax/go-utc/internal/iso8601"
	"github.com/davejbax/go-utc/internal/record"
	"math"
	"sync"
	"time"
)

var (
	// ErrInvalidDate indicates a year, month and day that do not exist in the proleptic Gregorian calendar
	ErrInvalidDate = calendar.ErrInvalidDate

	// ErrParse indicates text that is not an ISO-8601 date-time. Errors matching it are of type [*ParseError].
	ErrParse = iso8601.ErrParse

	// ErrOutOfRange indicates a timestamp or offset that a fixed-size encoding cannot represent
	ErrOutOfRange = record.ErrOutOfRange

	// ErrUnspecified indicates an encoded date-time that records the absence of a date-time
	ErrUnspecified = record.ErrUnspecified
)

// ParseError describes where reading ISO-8601 text failed
type ParseError = iso8601.ParseError

const (
	// NanosPerDay is the length of every day
	NanosPerDay = civil.NanosPerDay

	unixEpochJDN  = 2440588
	lastNanoOfDay = NanosPerDay - 1
)

// Timestamp is an instant in UTC. The zero value is midnight at the start of Julian Day 0, -4713-11-24T00:00:00Z.
//
// Two Timestamps are equal exactly when they name the same instant, so Timestamp can be compared with == and used as
// a map key.
type Timestamp struct {
	jdn int64

	// Always in [0, NanosPerDay)
	nsOfDay int64
}

// New returns the instant nsOfDay nanoseconds after midnight at the start of Julian Day jdn. nsOfDay may be negative
// or longer than a day; whole days are carried into the day number.
func New(jdn, nsOfDay int64) Timestamp {
	if nsOfDay < 0 || nsOfDay >= NanosPerDay {
		carry := calendar.FloorDiv(nsOfDay, NanosPerDay)
		jdn += carry
		nsOfDay -= carry * NanosPerDay
	}

	return Timestamp{jdn: jdn, nsOfDay: nsOfDay}
}

// Date returns the Timestamp for a date and clock time in UTC. The clock fields are not range checked: 24:00:00 is
// midnight of the following day, and a negative minute counts back from the hour. [ErrInvalidDate] is returned when
// month is not in 1-12 or day is not a day of that month.
func Date(year, month, day, hour, min, sec, nsec int) (Timestamp, error) {
	jdn, err := calendar.DateToJDN(year, month, day)
	if err != nil {
		return Timestamp{}, err
	}

	return New(jdn, civil.FromCivil(hour, min, sec, nsec)), nil
}

// DateOffset is like [Date], but the date and clock time are local to a zone offsetSeconds east of UTC
func DateOffset(year, month, day, hour, min, sec, nsec, offsetSeconds int) (Timestamp, error) {
	t, err := Date(year, month, day, hour, min, sec, nsec)
	if err != nil {
		return Timestamp{}, err
	}

	return t.addSeconds(-int64(offsetSeconds)), nil
}

var unixEpoch = sync.OnceValue(func() Timestamp {
	return New(unixEpochJDN, 0)
})

// UnixEpoch returns 1970-01-01T00:00:00Z
func UnixEpoch() Timestamp {
	return unixEpoch()
}

// FromUnix returns the instant sec seconds and nsec nanoseconds after the Unix epoch. Either may be negative.
func FromUnix(sec, nsec int64) Timestamp {
	return FromEpochSeconds(UnixEpoch(), sec).Add(time.Duration(nsec))
}

// FromEpochSeconds returns the instant sec seconds after epoch
func FromEpochSeconds(epoch Timestamp, sec int64) Timestamp {
	return epoch.addSeconds(sec)
}

// FromJulianDate returns the instant for a Julian Date, counted in days (and fractions of a day) from the start of
// Julian Day 0. Precision is limited by float64: around a microsecond for present-day dates.
func FromJulianDate(jd float64) Timestamp {
	days := math.Floor(jd)

	return New(int64(days), int64(math.Round((jd-days)*float64(NanosPerDay))))
}

// FromTime returns the instant of t
func FromTime(t time.Time) Timestamp {
	return FromUnix(t.Unix(), int64(t.Nanosecond()))
}

// Now returns the current instant
func Now() Timestamp {
	return FromTime(time.Now())
}

// JDN returns the Julian Day Number of the day containing t
func (t Timestamp) JDN() int64 {
	return t.jdn
}

// NanosOfDay returns the nanoseconds elapsed since midnight, in [0, NanosPerDay)
func (t Timestamp) NanosOfDay() int64 {
	return t.nsOfDay
}

// IsZero reports whether t is the zero Timestamp
func (t Timestamp) IsZero() bool {
	return t == Timestamp{}
}

func (t Timestamp) Date() (year, month, day int) {
	return calendar.JDNToDate(t.jdn)
}

func (t Timestamp) Clock() (hour, min, sec int) {
	hour, min, sec, _ = civil.ToCivil(t.nsOfDay)
	return hour, min, sec
}

func (t Timestamp) Year() int {
	year, _, _ := t.Date()
	return year
}

func (t Timestamp) Month() int {
	_, month, _ := t.Date()
	return month
}

func (t Timestamp) Day() int {
	_, _, day := t.Date()
	return day
}

func (t Timestamp) Hour() int {
	hour, _, _ := t.Clock()
	return hour
}

func (t Timestamp) Minute() int {
	_, min, _ := t.Clock()
	return min
}

func (t Timestamp) Second() int {
	_, _, sec := t.Clock()
	return sec
}

func (t Timestamp) Nanosecond() int {
	return int(t.nsOfDay % civil.NanosPerSecond)
}

// DayOfWeek returns the day of the week, from 1 (Sunday) to 7 (Saturday)
func (t Timestamp) DayOfWeek() int {
	return calendar.DayOfWeek(t.jdn)
}

// DayOfYear returns the day of the year, from 1 to 366
func (t Timestamp) DayOfYear() int {
	return calendar.DayOfYear(t.jdn)
}

// JulianDate returns the Julian Date of t: the day number plus the elapsed fraction of the day. It is for display
// and export only, since a float64 cannot hold every Timestamp exactly.
func (t Timestamp) JulianDate() float64 {
	return float64(t.jdn) + float64(t.nsOfDay)/float64(NanosPerDay)
}

// Unix returns the number of whole seconds since the Unix epoch, rounded towards negative infinity
func (t Timestamp) Unix() int64 {
	return (t.jdn-unixEpochJDN)*civil.SecondsPerDay + t.nsOfDay/civil.NanosPerSecond
}

// Time converts t to a [time.Time] in UTC
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Unix(), int64(t.Nanosecond())).UTC()
}

// Compare returns -1 if t is before u, +1 if t is after u, and 0 if they are the same instant
func (t Timestamp) Compare(u Timestamp) int {
	switch {
	case t.jdn < u.jdn:
		return -1
	case t.jdn > u.jdn:
		return 1
	case t.nsOfDay < u.nsOfDay:
		return -1
	case t.nsOfDay > u.nsOfDay:
		return 1
	}

	return 0
}

func (t Timestamp) Equal(u Timestamp) bool {
	return t == u
}

func (t Timestamp) Before(u Timestamp) bool {
	return t.Compare(u) < 0
}

func (t Timestamp) After(u Timestamp) bool {
	return t.Compare(u) > 0
}

// Hash returns a hash of t. Equal Timestamps have equal hashes.
func (t Timestamp) Hash() uint64 {
	// Fibonacci hashing spreads every bit of the day number over the word
	return uint64(t.jdn)*0x9E3779B97F4A7C15 ^ uint64(t.nsOfDay)
}
