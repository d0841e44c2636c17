// Package iso8601 reads and writes the ISO-8601 date-time representation used by the utc package:
//
//	[-]YYYY[sep]MM[sep]DD[sep]hh[sep]mm[sep]ss[.fraction][Z|±hh[sep]mm]
//
// Every separator is a single arbitrary non-digit character, or nothing at all. Trailing components may be omitted
// ("reduced accuracy"), in which case they default to the start of the period they would otherwise name.
package iso8601

import (
	"errors"
	"fmt"
	"github.com/davejbax/go-utc/internal/calendar"
	"github.com/davejbax/go-utc/internal/civil"
	"unicode/utf8"
)

// ErrParse indicates that text is not in the expected ISO-8601 form. Every [ParseError] matches it with [errors.Is].
var ErrParse = errors.New("malformed ISO-8601 text")

// ParseError describes where in the input text reading failed
type ParseError struct {
	Text   string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q at offset %d: %s", e.Text, e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Result is a date-time read from text, before the offset has been applied
type Result struct {
	JDN int64

	// NanosOfDay is the local clock time. It is not normalized: an hour of 24 yields exactly one day.
	NanosOfDay int64

	// OffsetSeconds is the signed offset of the local time from UTC, e.g. 3600 for '+01:00'
	OffsetSeconds int
}

// Read reads a date-time from the start of text. The fraction of a second must be introduced by decimalMark; if
// decimalMark is zero, fraction digits are expected to follow the seconds directly.
//
// Read returns the number of bytes consumed, which may be less than len(text): reading stops at the first character
// that cannot continue the date-time. Calendar dates that do not exist are reported with [calendar.ErrInvalidDate].
func Read(text string, decimalMark byte) (Result, int, error) {
	r := &reader{text: text, decimalMark: decimalMark}
	res, err := r.read()

	return res, r.pos, err
}

var fieldNames = [...]string{"month", "day", "hour", "minute", "second"}

const firstTimeField = 2

type reader struct {
	text        string
	pos         int
	decimalMark byte
}

func (r *reader) read() (Result, error) {
	sign := 1
	if r.more() && r.peek() == '-' {
		sign = -1
		r.pos++
	}

	year, err := r.digits(4, "year")
	if err != nil {
		return Result{}, err
	}

	// month, day, hour, minute, second
	fields := [len(fieldNames)]int{1, 1, 0, 0, 0}
	nanosecond := 0

	complete := true
	for i := range fields {
		if !r.continues(i >= firstTimeField) {
			complete = false
			break
		}

		if fields[i], err = r.separated(fieldNames[i]); err != nil {
			return Result{}, err
		}
	}

	if complete && r.fractionFollows() {
		if nanosecond, err = r.fraction(); err != nil {
			return Result{}, err
		}
	}

	offset, err := r.offset()
	if err != nil {
		return Result{}, err
	}

	jdn, err := calendar.DateToJDN(sign*year, fields[0], fields[1])
	if err != nil {
		return Result{}, fmt.Errorf("cannot build date from %q: %w", r.text, err)
	}

	return Result{
		JDN:           jdn,
		NanosOfDay:    civil.FromCivil(fields[2], fields[3], fields[4], nanosecond),
		OffsetSeconds: offset,
	}, nil
}

func (r *reader) more() bool {
	return r.pos < len(r.text)
}

func (r *reader) peek() byte {
	return r.text[r.pos]
}

func (r *reader) digitAt(pos int) bool {
	return pos < len(r.text) && isDigit(r.text[pos])
}

func (r *reader) fail(reason string) error {
	return &ParseError{Text: r.text, Offset: r.pos, Reason: reason}
}

// continues reports whether another field follows. 'Z' and '+' always start the offset instead; within the time of
// day, so does '-', whereas in the date it is the usual separator.
func (r *reader) continues(timeOfDay bool) bool {
	if !r.more() {
		return false
	}

	switch r.peek() {
	case 'Z', '+':
		return false
	case '-':
		return !timeOfDay
	}

	return true
}

// digits reads exactly n decimal digits
func (r *reader) digits(n int, field string) (int, error) {
	value := 0
	for i := 0; i < n; i++ {
		if !r.more() {
			return 0, r.fail(fmt.Sprintf("text ends inside %s", field))
		}

		c := r.peek()
		if !isDigit(c) {
			return 0, r.fail(fmt.Sprintf("expected digit in %s, found %q", field, c))
		}

		value = value*10 + int(c-'0')
		r.pos++
	}

	return value, nil
}

// separated reads an optional single non-digit separator followed by two digits. The separator may be any
// character, including a multibyte one such as U+2010.
func (r *reader) separated(field string) (int, error) {
	r.pos += r.separatorSize()

	return r.digits(2, field)
}

func (r *reader) fractionFollows() bool {
	if r.decimalMark == 0 {
		return r.digitAt(r.pos)
	}

	if r.more() && r.peek() == r.decimalMark {
		r.pos++
		return true
	}

	return false
}

// fraction reads a run of at least one digit as a fraction of a second. Digits past the ninth are read but
// truncated, never rounded.
func (r *reader) fraction() (int, error) {
	start := r.pos
	nanosecond := 0

	for r.digitAt(r.pos) {
		if r.pos-start < 9 {
			nanosecond = nanosecond*10 + int(r.peek()-'0')
		}
		r.pos++
	}

	read := r.pos - start
	if read == 0 {
		return 0, r.fail("expected digit in fraction of second")
	}

	for ; read < 9; read++ {
		nanosecond *= 10
	}

	return nanosecond, nil
}

// offset reads 'Z' or ±hh[[sep]mm], returning seconds east of UTC. Anything else is a zero offset, and is left unread.
func (r *reader) offset() (int, error) {
	if !r.more() {
		return 0, nil
	}

	sign := 1
	switch r.peek() {
	case 'Z':
		r.pos++
		return 0, nil
	case '-':
		sign = -1
	case '+':
	default:
		return 0, nil
	}
	r.pos++

	hour, err := r.digits(2, "offset hour")
	if err != nil {
		return 0, err
	}

	minute := 0
	if r.digitAt(r.pos + r.separatorSize()) {
		if minute, err = r.separated("offset minute"); err != nil {
			return 0, err
		}
	}

	return sign * (hour*3600 + minute*60), nil
}

// separatorSize returns the length in bytes of the separator at the cursor, or 0 if there is none
func (r *reader) separatorSize() int {
	if !r.more() || isDigit(r.peek()) {
		return 0
	}

	_, size := utf8.DecodeRuneInString(r.text[r.pos:])
	return size
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
