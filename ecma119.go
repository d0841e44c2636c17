package utc

import (
	"fmt"
	"github.com/davejbax/go-utc/internal/record"
)

// ECMA119DateTime returns the 7-byte date and time of a directory record (ECMA-119 §10.1.6). The fields hold the
// local time in a zone offset 15 minute intervals east of UTC. Fractions of a second are dropped. [ErrOutOfRange] is
// returned for local years outside 1900-2155 or offsets outside -48 to +52.
func (t Timestamp) ECMA119DateTime(offset int) ([]byte, error) {
	dt, err := record.AsDateTime(t.localFields(offset), offset)
	if err != nil {
		return nil, fmt.Errorf("cannot record %s as directory record date and time: %w", t, err)
	}

	return packRecord(&dt)
}

// ECMA119LongDateTime returns the 17-byte digit form of date and time used in volume descriptors (ECMA-119
// §9.4.27.2), with the local time in a zone offset 15 minute intervals east of UTC. The fraction of a second is
// truncated to centiseconds. [ErrOutOfRange] is returned for local years outside 1-9999 or offsets outside -48 to +52.
func (t Timestamp) ECMA119LongDateTime(offset int) ([]byte, error) {
	ldt, err := record.AsLongDateTime(t.localFields(offset), offset)
	if err != nil {
		return nil, fmt.Errorf("cannot record %s as volume date and time: %w", t, err)
	}

	return packRecord(&ldt)
}

// ParseECMA119DateTime reads the 7-byte date and time of a directory record. Clock fields outside a day fail with
// [ErrOutOfRange].
func ParseECMA119DateTime(b []byte) (Timestamp, error) {
	dt, err := record.UnpackDateTime(b)
	if err != nil {
		return Timestamp{}, err
	}

	f := dt.Fields()
	return DateOffset(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, 0, dt.OffsetSeconds())
}

// ParseECMA119LongDateTime reads the 17-byte digit form of date and time. A record of all zero digits, which stands
// for no date and time, fails with [ErrUnspecified].
func ParseECMA119LongDateTime(b []byte) (Timestamp, error) {
	ldt, err := record.UnpackLongDateTime(b)
	if err != nil {
		return Timestamp{}, err
	}

	result, err := ldt.Result()
	if err != nil {
		return Timestamp{}, err
	}

	return New(result.JDN, result.NanosOfDay).addSeconds(-int64(result.OffsetSeconds)), nil
}

func (t Timestamp) localFields(offset int) record.Fields {
	local := t.addSeconds(int64(offset) * 15 * 60)

	year, month, day := local.Date()
	hour, minute, second := local.Clock()

	return record.Fields{
		Year:       year,
		Month:      month,
		Day:        day,
		Hour:       hour,
		Minute:     minute,
		Second:     second,
		Nanosecond: local.Nanosecond(),
	}
}
