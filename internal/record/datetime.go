package record

import (
	"errors"
	"fmt"
	"github.com/davejbax/go-utc/internal/iso8601"
	"io"
)

// ErrUnspecified indicates a [LongDateTime] with all digits zero, which records that no date and time is given
var ErrUnspecified = errors.New("date and time not specified")

const (
	// DateTimeSize is the encoded size of a [DateTime] in bytes
	DateTimeSize = 7

	// LongDateTimeSize is the encoded size of a [LongDateTime] in bytes
	LongDateTimeSize = 17

	minOffset = -48
	maxOffset = 52
)

// Fields are the calendar and clock fields of a local date and time
type Fields struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Nanosecond           int
}

// DateTime is a numerical representation of a date and time
//
// ECMA-119 (5th ed.) §10.1.6
type DateTime struct {
	YearsSince1900            uint8
	Month                     uint8
	Day                       uint8
	Hour                      uint8
	Minute                    uint8
	Second                    uint8
	GMTOffsetIn15MinIntervals int8
}

// AsDateTime creates a [DateTime] from local fields and their offset from UTC in 15 minute intervals. Fractions of a
// second are dropped. [ErrOutOfRange] is returned for years outside 1900-2155 or offsets outside -48 to +52.
func AsDateTime(f Fields, offset int) (DateTime, error) {
	if f.Year < 1900 || f.Year > 1900+255 {
		return DateTime{}, fmt.Errorf("%w: year %d cannot be recorded as years since 1900", ErrOutOfRange, f.Year)
	}

	if err := checkOffset(offset); err != nil {
		return DateTime{}, err
	}

	return DateTime{
		YearsSince1900:            uint8(f.Year - 1900),
		Month:                     uint8(f.Month),
		Day:                       uint8(f.Day),
		Hour:                      uint8(f.Hour),
		Minute:                    uint8(f.Minute),
		Second:                    uint8(f.Second),
		GMTOffsetIn15MinIntervals: int8(offset),
	}, nil
}

// Fields returns the local date and time recorded in d
func (d DateTime) Fields() Fields {
	return Fields{
		Year:   int(d.YearsSince1900) + 1900,
		Month:  int(d.Month),
		Day:    int(d.Day),
		Hour:   int(d.Hour),
		Minute: int(d.Minute),
		Second: int(d.Second),
	}
}

// OffsetSeconds returns the offset of d from UTC in seconds
func (d DateTime) OffsetSeconds() int {
	return int(d.GMTOffsetIn15MinIntervals) * 15 * 60
}

// Ensure DateTime implements [io.WriterTo]
var _ io.WriterTo = &DateTime{}

func (d *DateTime) WriteTo(w io.Writer) (int64, error) {
	return pack(w, d)
}

// UnpackDateTime decodes a [DateTime] from exactly [DateTimeSize] bytes. [ErrOutOfRange] is returned for an hour,
// minute or second outside a day, or an offset outside -48 to +52.
func UnpackDateTime(b []byte) (DateTime, error) {
	var d DateTime
	if err := unpack(b, DateTimeSize, &d); err != nil {
		return DateTime{}, err
	}

	if d.Hour > 23 || d.Minute > 59 || d.Second > 59 {
		return DateTime{}, fmt.Errorf("%w: time %02d:%02d:%02d is not a time of day", ErrOutOfRange, d.Hour, d.Minute, d.Second)
	}

	if err := checkOffset(int(d.GMTOffsetIn15MinIntervals)); err != nil {
		return DateTime{}, err
	}

	return d, nil
}

// LongDateTime is a character (digit) representation of date and time
//
// ECMA-119 (5th ed.) §9.4.27.2
type LongDateTime struct {
	YearDigits                [4]uint8
	MonthDigits               [2]uint8
	DayDigits                 [2]uint8
	HourDigits                [2]uint8
	MinuteDigits              [2]uint8
	SecondDigits              [2]uint8
	CentisecondsDigits        [2]uint8
	GMTOffsetIn15MinIntervals int8
}

// ZeroLongDateTime represents the zero-value of the [LongDateTime] type
//
// ECMA-119 (5th ed.) §9.4.27.2
var ZeroLongDateTime = LongDateTime{
	YearDigits:                [4]uint8{'0', '0', '0', '0'},
	MonthDigits:               [2]uint8{'0', '0'},
	DayDigits:                 [2]uint8{'0', '0'},
	HourDigits:                [2]uint8{'0', '0'},
	MinuteDigits:              [2]uint8{'0', '0'},
	SecondDigits:              [2]uint8{'0', '0'},
	CentisecondsDigits:        [2]uint8{'0', '0'},
	GMTOffsetIn15MinIntervals: 0,
}

// AsLongDateTime creates a [LongDateTime] from local fields and their offset from UTC in 15 minute intervals. The
// fraction of a second is truncated to centiseconds. [ErrOutOfRange] is returned for years outside 1-9999 or offsets
// outside -48 to +52.
func AsLongDateTime(f Fields, offset int) (LongDateTime, error) {
	if f.Year < 1 || f.Year > 9999 {
		return LongDateTime{}, fmt.Errorf("%w: year %d does not have four digits", ErrOutOfRange, f.Year)
	}

	if err := checkOffset(offset); err != nil {
		return LongDateTime{}, err
	}

	l := LongDateTime{GMTOffsetIn15MinIntervals: int8(offset)}
	putDigits(l.YearDigits[:], f.Year)
	putDigits(l.MonthDigits[:], f.Month)
	putDigits(l.DayDigits[:], f.Day)
	putDigits(l.HourDigits[:], f.Hour)
	putDigits(l.MinuteDigits[:], f.Minute)
	putDigits(l.SecondDigits[:], f.Second)
	putDigits(l.CentisecondsDigits[:], f.Nanosecond/10_000_000)

	return l, nil
}

// Result reads the digits of l, which form an ISO-8601 date-time in basic format, into an [iso8601.Result].
// [ErrUnspecified] is returned for [ZeroLongDateTime].
func (l LongDateTime) Result() (iso8601.Result, error) {
	if l == ZeroLongDateTime {
		return iso8601.Result{}, ErrUnspecified
	}

	text := make([]byte, 0, LongDateTimeSize)
	text = append(text, l.YearDigits[:]...)
	text = append(text, l.MonthDigits[:]...)
	text = append(text, l.DayDigits[:]...)
	text = append(text, l.HourDigits[:]...)
	text = append(text, l.MinuteDigits[:]...)
	text = append(text, l.SecondDigits[:]...)
	text = append(text, '.')
	text = append(text, l.CentisecondsDigits[:]...)

	// Fields are fixed width, so a non-digit must not be taken for a separator
	for i, c := range text {
		if c != '.' && (c < '0' || c > '9') {
			return iso8601.Result{}, &iso8601.ParseError{Text: string(text), Offset: i, Reason: fmt.Sprintf("expected digit, found %q", c)}
		}
	}

	result, _, err := iso8601.Read(string(text), '.')
	if err != nil {
		return iso8601.Result{}, fmt.Errorf("could not read long date time digits: %w", err)
	}

	result.OffsetSeconds = int(l.GMTOffsetIn15MinIntervals) * 15 * 60

	return result, nil
}

// Ensure LongDateTime implements [io.WriterTo]
var _ io.WriterTo = &LongDateTime{}

func (l *LongDateTime) WriteTo(w io.Writer) (int64, error) {
	return pack(w, l)
}

// UnpackLongDateTime decodes a [LongDateTime] from exactly [LongDateTimeSize] bytes
func UnpackLongDateTime(b []byte) (LongDateTime, error) {
	var l LongDateTime
	if err := unpack(b, LongDateTimeSize, &l); err != nil {
		return LongDateTime{}, err
	}

	return l, nil
}

func checkOffset(offset int) error {
	if offset < minOffset || offset > maxOffset {
		return fmt.Errorf("%w: offset of %d 15 minute intervals is not in the range %d to %d", ErrOutOfRange, offset, minOffset, maxOffset)
	}

	return nil
}

// putDigits writes v into dst as zero-padded decimal digits, keeping the least significant len(dst) digits
func putDigits(dst []uint8, v int) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = uint8('0' + v%10)
		v /= 10
	}
}
