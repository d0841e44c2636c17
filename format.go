package utc

import (
	"fmt"
	"github.com/davejbax/go-utc/internal/iso8601"
)

// Layout chooses the characters written between the components of ISO-8601 text. A zero byte writes nothing.
type Layout struct {
	// DateSeparator goes between year, month and day
	DateSeparator byte

	// DateTimeSeparator goes between the date and the time of day
	DateTimeSeparator byte

	// TimeSeparator goes between hours, minutes and seconds, and within an offset
	TimeSeparator byte

	// DecimalMark introduces the fraction of a second. When reading with a zero DecimalMark, digits directly after
	// the seconds are the fraction.
	DecimalMark byte

	// Zone is written after the time to designate UTC, e.g. 'Z'. It is replaced by a numeric offset in
	// [Timestamp.FormatOffset].
	Zone byte
}

var (
	// ISO8601 is the extended format, e.g. 2021-11-17T09:05:12.94603Z
	ISO8601 = Layout{DateSeparator: '-', DateTimeSeparator: 'T', TimeSeparator: ':', DecimalMark: '.', Zone: 'Z'}

	// ISO8601Basic is the basic format, e.g. 20211117T090512.94603Z
	ISO8601Basic = Layout{DateTimeSeparator: 'T', DecimalMark: '.', Zone: 'Z'}
)

func (l Layout) separators() iso8601.Separators {
	return iso8601.Separators{
		Date:     l.DateSeparator,
		DateTime: l.DateTimeSeparator,
		Time:     l.TimeSeparator,
		Decimal:  l.DecimalMark,
	}
}

// AppendFormat appends the text of t in layout l to b
func (t Timestamp) AppendFormat(b []byte, l Layout) []byte {
	b = iso8601.AppendDateTime(b, t.jdn, t.nsOfDay, l.separators())
	if l.Zone != 0 {
		b = append(b, l.Zone)
	}

	return b
}

// Format returns the text of t in layout l. Years are written with at least four digits; text with a longer year
// cannot be read back by [Parse].
func (t Timestamp) Format(l Layout) string {
	return string(t.AppendFormat(make([]byte, 0, 32), l))
}

// FormatOffset returns the local date and time in a zone offsetSeconds east of UTC, followed by the offset, e.g.
// 2021-11-17T10:35:12+01:30. Offsets are whole minutes: seconds are dropped.
func (t Timestamp) FormatOffset(l Layout, offsetSeconds int) string {
	offsetSeconds -= offsetSeconds % 60
	local := t.addSeconds(int64(offsetSeconds))

	b := iso8601.AppendDateTime(make([]byte, 0, 32), local.jdn, local.nsOfDay, l.separators())
	b = iso8601.AppendOffset(b, offsetSeconds, l.TimeSeparator)

	return string(b)
}

// String returns t in the [ISO8601] layout
func (t Timestamp) String() string {
	return t.Format(ISO8601)
}

// Parse reads ISO-8601 text, such as 2021-11-17T09:05:12.94603Z or 20211117T10+01. Separators may be any single
// non-digit character or absent. Trailing components may be left out, and default to the start of the period; an
// offset from UTC is applied. A fraction of a second must be introduced by '.'.
//
// Malformed text fails with a [*ParseError] matching [ErrParse]; a date that does not exist fails with
// [ErrInvalidDate].
func Parse(text string) (Timestamp, error) {
	return ParseLayout(ISO8601, text)
}

// ParseLayout is like [Parse], but the fraction of a second is introduced by the DecimalMark of l. The other fields of
// l are ignored: any separator is accepted.
func ParseLayout(l Layout, text string) (Timestamp, error) {
	result, read, err := iso8601.Read(text, l.DecimalMark)
	if err != nil {
		return Timestamp{}, err
	}

	if read != len(text) {
		return Timestamp{}, &ParseError{Text: text, Offset: read, Reason: fmt.Sprintf("unexpected %q after date-time", text[read])}
	}

	return New(result.JDN, result.NanosOfDay).addSeconds(-int64(result.OffsetSeconds)), nil
}

// MustParse is like [Parse] but panics if the text cannot be parsed. It simplifies safe initialization of global
// variables holding timestamps.
func MustParse(text string) Timestamp {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return t
}
