package iso8601

import (
	"github.com/davejbax/go-utc/internal/calendar"
	"github.com/davejbax/go-utc/internal/civil"
	"strconv"
)

// Separators configures the characters written between components. A zero byte writes nothing.
type Separators struct {
	// Date goes between year, month and day
	Date byte

	// DateTime goes between the day and the hour
	DateTime byte

	// Time goes between hour, minute and second, and between the hours and minutes of an offset
	Time byte

	// Decimal introduces the fraction of a second
	Decimal byte
}

// AppendDateTime appends the date and time of day given by jdn and nsOfDay to b. nsOfDay must be normalized.
//
// The year has at least four digits, and a leading '-' when negative. The fraction of a second is only written when
// it is non-zero, with trailing zeros removed.
func AppendDateTime(b []byte, jdn, nsOfDay int64, s Separators) []byte {
	year, month, day := calendar.JDNToDate(jdn)
	hour, minute, second, nanosecond := civil.ToCivil(nsOfDay)

	absYear := uint64(year)
	if year < 0 {
		b = append(b, '-')
		absYear = uint64(-int64(year))
	}

	b = appendPadded(b, absYear, 4)
	b = appendSeparator(b, s.Date)
	b = appendPadded(b, uint64(month), 2)
	b = appendSeparator(b, s.Date)
	b = appendPadded(b, uint64(day), 2)
	b = appendSeparator(b, s.DateTime)
	b = appendPadded(b, uint64(hour), 2)
	b = appendSeparator(b, s.Time)
	b = appendPadded(b, uint64(minute), 2)
	b = appendSeparator(b, s.Time)
	b = appendPadded(b, uint64(second), 2)

	if nanosecond != 0 {
		b = appendSeparator(b, s.Decimal)
		b = appendFraction(b, nanosecond)
	}

	return b
}

// AppendOffset appends an offset from UTC as ±hh[sep]mm. Seconds of the offset are dropped.
func AppendOffset(b []byte, offsetSeconds int, timeSeparator byte) []byte {
	if offsetSeconds < 0 {
		b = append(b, '-')
		offsetSeconds = -offsetSeconds
	} else {
		b = append(b, '+')
	}

	b = appendPadded(b, uint64(offsetSeconds/3600), 2)
	b = appendSeparator(b, timeSeparator)
	b = appendPadded(b, uint64(offsetSeconds%3600/60), 2)

	return b
}

func appendSeparator(b []byte, sep byte) []byte {
	if sep == 0 {
		return b
	}

	return append(b, sep)
}

// appendPadded appends v in decimal, left-padded with zeros to at least width digits
func appendPadded(b []byte, v uint64, width int) []byte {
	var buf [20]byte
	digits := strconv.AppendUint(buf[:0], v, 10)

	for i := len(digits); i < width; i++ {
		b = append(b, '0')
	}

	return append(b, digits...)
}

// appendFraction appends nanosecond as nine digits after the decimal point, minus trailing zeros
func appendFraction(b []byte, nanosecond int) []byte {
	var buf [9]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte('0' + nanosecond%10)
		nanosecond /= 10
	}

	n := len(buf)
	for n > 0 && buf[n-1] == '0' {
		n--
	}

	return append(b, buf[:n]...)
}
